package tool

import (
	"context"
	"encoding/json"

	"github.com/rayiskander2406/vendorportal/pkg/schema"
)

type Info struct {
	Name        string
	Description string
	Schema      *schema.Schema
}

// Invoker is the interface for all tools.
type Invoker interface {
	// Info returns the information about the tool.
	Info() Info

	// Invoke executes the tool with the given arguments. Tool faults
	// never surface as errors; they come back as a failed Result so
	// the conversation can continue around them.
	//
	// The arguments is the JSON-encoded string of the arguments.
	Invoke(ctx context.Context, arguments string) *Result
}

// Result is a single tool execution outcome. Data is the structured
// payload on success; Err the human-readable fault otherwise. ShowForm
// optionally names a client form the tool wants rendered.
type Result struct {
	Success  bool            `json:"success"`
	Data     json.RawMessage `json:"data,omitempty"`
	Err      string          `json:"err,omitempty"`
	ShowForm string          `json:"showForm,omitempty"`
}

// Json renders the result as the tool message content fed back to the
// model.
func (r *Result) Json() string {
	o, _ := json.Marshal(r)
	return string(o)
}

func Failure(err error) *Result {
	return &Result{Success: false, Err: err.Error()}
}

// FormShower lets a tool output request a client-side form alongside
// its data.
type FormShower interface {
	FormName() string
}
