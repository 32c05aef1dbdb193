package schema

// ToolCall is a fully accumulated tool invocation requested by the
// model. Arguments is the raw JSON object the model produced.
type ToolCall struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type SystemMessageParam struct {
	Content string `json:"content"`
}

type UserMessageParam struct {
	Content string `json:"content"`
}

type AssistantMessageParam struct {
	Content   string     `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// ToolMessageParam carries one tool execution result back to the model,
// correlated by the tool call id.
type ToolMessageParam struct {
	ToolCallId string `json:"tool_call_id"`
	Content    string `json:"content"`
}

// MessageParam is a tagged union over the four message roles. Exactly
// one field is non-nil.
type MessageParam struct {
	System    *SystemMessageParam    `json:"system,omitempty"`
	User      *UserMessageParam      `json:"user,omitempty"`
	Assistant *AssistantMessageParam `json:"assistant,omitempty"`
	Tool      *ToolMessageParam      `json:"tool,omitempty"`
}

func (p *MessageParam) Role() Role {
	switch {
	case p.System != nil:
		return RoleSystem
	case p.User != nil:
		return RoleUser
	case p.Assistant != nil:
		return RoleAssistant
	case p.Tool != nil:
		return RoleTool
	}
	return ""
}

// Content flattens whichever variant is set into plain text.
func (p *MessageParam) Content() string {
	switch {
	case p.System != nil:
		return p.System.Content
	case p.User != nil:
		return p.User.Content
	case p.Assistant != nil:
		return p.Assistant.Content
	case p.Tool != nil:
		return p.Tool.Content
	}
	return ""
}

func NewSystemMessage(content string) MessageParam {
	return MessageParam{System: &SystemMessageParam{Content: content}}
}

func NewUserMessage(content string) MessageParam {
	return MessageParam{User: &UserMessageParam{Content: content}}
}

func NewAssistantMessage(content string, toolCalls []ToolCall) MessageParam {
	return MessageParam{Assistant: &AssistantMessageParam{
		Content:   content,
		ToolCalls: toolCalls,
	}}
}

func NewToolMessage(toolCallId, content string) MessageParam {
	return MessageParam{Tool: &ToolMessageParam{
		ToolCallId: toolCallId,
		Content:    content,
	}}
}
