package schema

// The request sent to the LLM service.
type Request struct {
	Model    string
	Messages []MessageParam

	// -1 means using model defaults
	Temperature float64

	// -1 means using model defaults
	MaxTokens int64
	Tools     []ToolParam
}

func NewRequest(model string, messages []MessageParam) *Request {
	return &Request{
		Model:       model,
		Messages:    messages,
		Temperature: -1,
		MaxTokens:   -1,
	}
}

// The non-streaming response from the LLM service.
type Response struct {
	Id           string
	Model        string
	Content      string
	ToolCalls    []ToolCall
	FinishReason FinishReason
}

// StreamChunk is one increment of a streamed model response. A read
// error is delivered in Err on the last chunk before the channel
// closes.
type StreamChunk struct {
	Content        string
	ToolCallDeltas []ToolCallDelta
	FinishReason   FinishReason

	Err error
}

// ToolCallDelta is a partial tool call. The first delta for an index
// carries Id and Name; later ones only append to Arguments.
type ToolCallDelta struct {
	Index     int64
	Id        string
	Name      string
	Arguments string
}
