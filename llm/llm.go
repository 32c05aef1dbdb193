package llm

import (
	"context"

	"github.com/rayiskander2406/vendorportal/llm/schema"
)

type LLM interface {
	ChatCompletion(ctx context.Context, req *schema.Request) (*schema.Response, error)

	// You should read from the returned channel until it is closed.
	ChatCompletionStream(ctx context.Context, req *schema.Request) <-chan *schema.StreamChunk
}
