package schema

import "github.com/rayiskander2406/vendorportal/pkg/schema"

type ToolParam struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Properties  any      `json:"properties"`
	Required    []string `json:"required"`
}

// NewToolParam reflects InputT into the tool's argument schema.
func NewToolParam[InputT any](name, description string) ToolParam {
	sch := schema.Get[InputT]()
	return ToolParam{
		Name:        name,
		Description: description,
		Properties:  sch.Properties,
		Required:    sch.Required,
	}
}

// ParametersMap renders the argument schema the way chat completion
// APIs expect it.
func (t ToolParam) ParametersMap() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": t.Properties,
		"required":   t.Required,
	}
}
