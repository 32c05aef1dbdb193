// Package wire defines the event frames a streaming conversation turn
// is encoded into, and the SSE codec both ends share.
package wire

import "encoding/json"

type EventType string

const (
	EventContent       EventType = "content"
	EventToolStart     EventType = "tool_start"
	EventToolExecuting EventType = "tool_executing"
	EventToolResult    EventType = "tool_result"
	EventError         EventType = "error"
)

// Done is the terminal sentinel frame. It is deliberately not JSON so
// it can never be confused with an event. It is sent only on graceful
// completion; a fatal error event ends the stream without it.
const Done = "[DONE]"

// ToolResult is the outcome payload nested in a tool_result event.
type ToolResult struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data,omitempty"`
	Error    string          `json:"error,omitempty"`
	ShowForm string          `json:"showForm,omitempty"`
}

// Event is the discriminated union carried in each SSE data frame.
// Which fields are meaningful depends on Type. Every tool_start for an
// id is followed by exactly one tool_executing and one tool_result for
// that id before the turn terminates.
type Event struct {
	Type EventType `json:"type"`

	// content
	Text string `json:"text,omitempty"`

	// tool_start
	Tool string `json:"tool,omitempty"`

	// tool_start / tool_executing / tool_result
	Id string `json:"id,omitempty"`

	// tool_result
	Result *ToolResult `json:"result,omitempty"`

	// error
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}

func NewContentEvent(text string) Event {
	return Event{Type: EventContent, Text: text}
}

func NewToolStartEvent(tool, id string) Event {
	return Event{Type: EventToolStart, Tool: tool, Id: id}
}

func NewToolExecutingEvent(id string) Event {
	return Event{Type: EventToolExecuting, Id: id}
}

func NewToolResultEvent(id string, result ToolResult) Event {
	return Event{Type: EventToolResult, Id: id, Result: &result}
}

func NewErrorEvent(code, message string) Event {
	return Event{Type: EventError, Code: code, Error: message}
}
