package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rayiskander2406/vendorportal/llm"
	"github.com/rayiskander2406/vendorportal/llm/schema"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Anthropic's API has no fire-and-forget default for output length, a
// cap is mandatory on every request.
const defaultMaxTokens = 4096

var _ llm.LLM = (*Anthropic)(nil)

type Anthropic struct {
	client anthropicsdk.Client
}

type Config struct {
	ApiKey  string
	BaseURL string
}

func New(config Config) (*Anthropic, error) {
	if config.ApiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(config.ApiKey)}
	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	return &Anthropic{
		client: anthropicsdk.NewClient(opts...),
	}, nil
}

// toMessageNewParams splits our flat message list the way the API
// wants it: system prompts into the System field, tool results as
// user-role tool_result blocks, tool calls replayed as assistant
// tool_use blocks.
func toMessageNewParams(req *schema.Request) anthropicsdk.MessageNewParams {
	params := anthropicsdk.MessageNewParams{
		Model:     anthropicsdk.Model(req.Model),
		MaxTokens: defaultMaxTokens,
	}

	if req.MaxTokens != -1 {
		params.MaxTokens = req.MaxTokens
	}
	if req.Temperature != -1 {
		params.Temperature = anthropicsdk.Float(req.Temperature)
	}

	for _, msg := range req.Messages {
		switch {
		case msg.System != nil:
			params.System = append(params.System, anthropicsdk.TextBlockParam{
				Text: msg.System.Content,
			})

		case msg.User != nil:
			params.Messages = append(params.Messages,
				anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(msg.User.Content)))

		case msg.Assistant != nil:
			blocks := make([]anthropicsdk.ContentBlockParamUnion, 0, 1+len(msg.Assistant.ToolCalls))
			if msg.Assistant.Content != "" {
				blocks = append(blocks, anthropicsdk.NewTextBlock(msg.Assistant.Content))
			}
			for _, tc := range msg.Assistant.ToolCalls {
				blocks = append(blocks,
					anthropicsdk.NewToolUseBlock(tc.Id, json.RawMessage(tc.Arguments), tc.Name))
			}
			if len(blocks) > 0 {
				params.Messages = append(params.Messages, anthropicsdk.NewAssistantMessage(blocks...))
			}

		case msg.Tool != nil:
			params.Messages = append(params.Messages,
				anthropicsdk.NewUserMessage(
					anthropicsdk.NewToolResultBlock(msg.Tool.ToolCallId, msg.Tool.Content, false)))
		}
	}

	for _, tool := range req.Tools {
		params.Tools = append(params.Tools, anthropicsdk.ToolUnionParam{
			OfTool: &anthropicsdk.ToolParam{
				Name:        tool.Name,
				Description: anthropicsdk.String(tool.Description),
				InputSchema: anthropicsdk.ToolInputSchemaParam{
					Type:       "object",
					Properties: tool.Properties,
					Required:   tool.Required,
				},
			},
		})
	}

	return params
}

func toFinishReason(reason anthropicsdk.StopReason) schema.FinishReason {
	switch reason {
	case anthropicsdk.StopReasonToolUse:
		return schema.FinishReasonToolCalls
	case anthropicsdk.StopReasonMaxTokens:
		return schema.FinishReasonLength
	default:
		return schema.FinishReasonStop
	}
}

func wrapErr(err error) error {
	var apierr *anthropicsdk.Error
	if errors.As(err, &apierr) {
		return llm.NewError(apierr.StatusCode, err)
	}
	return llm.NewError(0, err)
}

func (a *Anthropic) ChatCompletion(ctx context.Context, req *schema.Request) (*schema.Response, error) {
	msg, err := a.client.Messages.New(ctx, toMessageNewParams(req))
	if err != nil {
		return nil, wrapErr(err)
	}

	out := &schema.Response{
		Id:           msg.ID,
		Model:        string(msg.Model),
		FinishReason: toFinishReason(msg.StopReason),
	}

	for _, block := range msg.Content {
		switch b := block.AsAny().(type) {
		case anthropicsdk.TextBlock:
			out.Content += b.Text
		case anthropicsdk.ToolUseBlock:
			out.ToolCalls = append(out.ToolCalls, schema.ToolCall{
				Id:        b.ID,
				Name:      b.Name,
				Arguments: string(b.Input),
			})
		}
	}

	return out, nil
}

func (a *Anthropic) ChatCompletionStream(ctx context.Context, req *schema.Request) <-chan *schema.StreamChunk {
	stream := a.client.Messages.NewStreaming(ctx, toMessageNewParams(req))
	ch := make(chan *schema.StreamChunk, 16) // this should be buffered

	go func() {
		defer func() {
			if p := recover(); p != nil {
				ch <- &schema.StreamChunk{Err: fmt.Errorf("panic: %v", p)}
			}

			stream.Close()
			close(ch)
		}()

		send := func(chunk *schema.StreamChunk) bool {
			select {
			case ch <- chunk:
				return true
			case <-ctx.Done():
				return false
			}
		}

		// content_block index -> identity of the tool call started there
		type blockInfo struct {
			id   string
			name string
		}
		toolBlocks := make(map[int64]blockInfo)

		msg := anthropicsdk.Message{}
		for stream.Next() {
			event := stream.Current()
			if err := msg.Accumulate(event); err != nil {
				ch <- &schema.StreamChunk{Err: wrapErr(err)}
				return
			}

			switch ev := event.AsAny().(type) {
			case anthropicsdk.ContentBlockStartEvent:
				if ev.ContentBlock.Type != "tool_use" {
					continue
				}
				toolBlocks[ev.Index] = blockInfo{
					id:   ev.ContentBlock.ID,
					name: ev.ContentBlock.Name,
				}
				if !send(&schema.StreamChunk{ToolCallDeltas: []schema.ToolCallDelta{{
					Index: ev.Index,
					Id:    ev.ContentBlock.ID,
					Name:  ev.ContentBlock.Name,
				}}}) {
					return
				}

			case anthropicsdk.ContentBlockDeltaEvent:
				switch delta := ev.Delta.AsAny().(type) {
				case anthropicsdk.TextDelta:
					if delta.Text == "" {
						continue
					}
					if !send(&schema.StreamChunk{Content: delta.Text}) {
						return
					}
				case anthropicsdk.InputJSONDelta:
					info, ok := toolBlocks[ev.Index]
					if !ok || delta.PartialJSON == "" {
						continue
					}
					if !send(&schema.StreamChunk{ToolCallDeltas: []schema.ToolCallDelta{{
						Index:     ev.Index,
						Id:        info.id,
						Name:      info.name,
						Arguments: delta.PartialJSON,
					}}}) {
						return
					}
				}

			case anthropicsdk.MessageDeltaEvent:
				if ev.Delta.StopReason != "" {
					if !send(&schema.StreamChunk{
						FinishReason: toFinishReason(ev.Delta.StopReason),
					}) {
						return
					}
				}
			}
		}

		if stream.Err() != nil {
			ch <- &schema.StreamChunk{Err: wrapErr(stream.Err())}
		}
	}()

	return ch
}
