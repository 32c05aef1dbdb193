package client

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/rayiskander2406/vendorportal/wire"
)

type ToolStatus string

const (
	ToolStatusStarted   ToolStatus = "started"
	ToolStatusExecuting ToolStatus = "executing"
	ToolStatusSucceeded ToolStatus = "succeeded"
	ToolStatusFailed    ToolStatus = "failed"
)

type ToolCallView struct {
	Id       string
	Tool     string
	Status   ToolStatus
	Data     json.RawMessage
	Error    string
	ShowForm string
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// State is an immutable snapshot of a conversation for rendering.
type State struct {
	Messages    []Message
	ToolCalls   []ToolCallView
	IsLoading   bool
	ActiveForm  string
	Suggestions []string
	LastError   string
}

// Conversation folds decoded wire events into renderable state. All
// methods are safe to call from the stream-reading goroutine while a
// UI reads snapshots.
type Conversation struct {
	mu sync.Mutex

	messages    []Message
	toolCalls   []ToolCallView
	toolIndex   map[string]int
	isLoading   bool
	activeForm  string
	suggestions []string
	lastError   string

	// per-turn accumulation
	turnText strings.Builder
}

func NewConversation() *Conversation {
	return &Conversation{
		toolIndex:   make(map[string]int),
		suggestions: []string{},
	}
}

// SeedHistory loads a previously recorded transcript. It only applies
// to a fresh conversation with nothing in flight.
func (c *Conversation) SeedHistory(msgs []Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.messages) > 0 || c.isLoading {
		return
	}
	c.messages = append([]Message(nil), msgs...)
}

// BeginTurn records the user message and arms loading state. The
// previous turn's suggestions are cleared immediately; stale chips
// must not survive into a new turn.
func (c *Conversation) BeginTurn(userText string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, Message{Role: "user", Content: userText})
	c.isLoading = true
	c.lastError = ""
	c.suggestions = []string{}
	c.turnText.Reset()
}

// Apply folds one event into state. It reports whether the event was
// a fatal error event, which terminates the turn.
func (c *Conversation) Apply(ev *wire.Event) (fatal bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Type {
	case wire.EventContent:
		c.turnText.WriteString(ev.Text)

	case wire.EventToolStart:
		c.toolIndex[ev.Id] = len(c.toolCalls)
		c.toolCalls = append(c.toolCalls, ToolCallView{
			Id:     ev.Id,
			Tool:   ev.Tool,
			Status: ToolStatusStarted,
		})

	case wire.EventToolExecuting:
		// statuses only move forward; a late or duplicate frame must
		// not regress a settled result
		if idx, ok := c.toolIndex[ev.Id]; ok && c.toolCalls[idx].Status == ToolStatusStarted {
			c.toolCalls[idx].Status = ToolStatusExecuting
		}

	case wire.EventToolResult:
		idx, ok := c.toolIndex[ev.Id]
		if !ok || ev.Result == nil {
			return false
		}
		view := &c.toolCalls[idx]
		if ev.Result.Success {
			view.Status = ToolStatusSucceeded
			view.Data = ev.Result.Data
		} else {
			view.Status = ToolStatusFailed
			view.Error = ev.Result.Error
		}
		if ev.Result.ShowForm != "" {
			view.ShowForm = ev.Result.ShowForm
			// applied at event time so the form survives a turn that
			// ends through the error path; later results overwrite
			c.activeForm = ev.Result.ShowForm
		}

	case wire.EventError:
		msg := ev.Error
		if ev.Code != "" {
			msg = fmt.Sprintf("%s (%s)", ev.Error, ev.Code)
		}
		c.failLocked(msg)
		return true
	}

	return false
}

// FinishTurn runs marker extraction on the turn's final text and
// commits the assistant message. A textual form marker, being strictly
// later in the turn, overrides any structured showForm field.
func (c *Conversation) FinishTurn() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clean, markers := ExtractMarkers(c.turnText.String())

	if markers.HasForm {
		c.activeForm = markers.Form
	}

	if markers.HasSuggestions {
		c.suggestions = markers.Suggestions
	}

	if clean != "" {
		c.messages = append(c.messages, Message{Role: "assistant", Content: clean})
	}

	c.isLoading = false
	c.turnText.Reset()
}

// FailTurn ends the turn through the error path: transport faults,
// timeouts and cancellations all land here.
func (c *Conversation) FailTurn(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failLocked(msg)
}

func (c *Conversation) failLocked(msg string) {
	// keep whatever text already streamed, the user saw it
	if partial := strings.TrimSpace(c.turnText.String()); partial != "" {
		clean, _ := ExtractMarkers(partial)
		if clean != "" {
			c.messages = append(c.messages, Message{Role: "assistant", Content: clean})
		}
	}
	c.turnText.Reset()

	if c.lastError == "" {
		c.lastError = msg
	}
	c.isLoading = false
}

func (c *Conversation) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isLoading
}

// Snapshot copies current state for rendering.
func (c *Conversation) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := State{
		Messages:    append([]Message(nil), c.messages...),
		ToolCalls:   append([]ToolCallView(nil), c.toolCalls...),
		IsLoading:   c.isLoading,
		ActiveForm:  c.activeForm,
		Suggestions: append([]string{}, c.suggestions...),
		LastError:   c.lastError,
	}
	return st
}

// StreamingText exposes the partially accumulated assistant text so a
// UI can render tokens as they arrive. Markers are not stripped here;
// extraction only runs on the final text.
func (c *Conversation) StreamingText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.turnText.String()
}
