package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/rayiskander2406/vendorportal/llm"
	"github.com/rayiskander2406/vendorportal/llm/schema"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	openaiparam "github.com/openai/openai-go/v3/packages/param"
	"github.com/openai/openai-go/v3/shared"
)

var _ llm.LLM = (*OpenAI)(nil)

type OpenAI struct {
	client *openai.Client
}

type Config struct {
	ApiKey  string
	BaseURL string
}

func New(config Config) (*OpenAI, error) {
	if config.ApiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	if config.BaseURL == "" {
		return nil, fmt.Errorf("api base is required")
	}

	cli := openai.NewClient(
		option.WithAPIKey(config.ApiKey),
		option.WithBaseURL(config.BaseURL),
	)

	return &OpenAI{
		client: &cli,
	}, nil
}

func toMessageParamUnion(param *schema.MessageParam) openai.ChatCompletionMessageParamUnion {
	union := openai.ChatCompletionMessageParamUnion{}

	if p := param.System; p != nil {
		union.OfSystem = &openai.ChatCompletionSystemMessageParam{}
		union.OfSystem.Content.OfString = openaiparam.NewOpt(p.Content)
	}

	if p := param.User; p != nil {
		union.OfUser = &openai.ChatCompletionUserMessageParam{}
		union.OfUser.Content.OfString = openaiparam.NewOpt(p.Content)
	}

	if p := param.Assistant; p != nil {
		union.OfAssistant = &openai.ChatCompletionAssistantMessageParam{}
		if p.Content != "" {
			union.OfAssistant.Content.OfString = openaiparam.NewOpt(p.Content)
		}
		for _, tc := range p.ToolCalls {
			union.OfAssistant.ToolCalls = append(
				union.OfAssistant.ToolCalls,
				openai.ChatCompletionMessageToolCallUnionParam{
					OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
						ID: tc.Id,
						Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
							Name:      tc.Name,
							Arguments: tc.Arguments,
						},
					},
				},
			)
		}
	}

	if p := param.Tool; p != nil {
		union.OfTool = &openai.ChatCompletionToolMessageParam{
			ToolCallID: p.ToolCallId,
		}
		union.OfTool.Content.OfString = openaiparam.NewOpt(p.Content)
	}

	return union
}

func toToolParamUnion(param *schema.ToolParam) openai.ChatCompletionToolUnionParam {
	return openai.ChatCompletionToolUnionParam{
		OfFunction: &openai.ChatCompletionFunctionToolParam{
			Function: shared.FunctionDefinitionParam{
				Name:        param.Name,
				Description: openaiparam.NewOpt(param.Description),
				Parameters:  param.ParametersMap(),
			},
		},
	}
}

func toChatCompletionNewParams(req *schema.Request) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model: req.Model,
	}

	if req.Temperature != -1 {
		params.Temperature = openaiparam.NewOpt(req.Temperature)
	}
	if req.MaxTokens != -1 {
		params.MaxTokens = openaiparam.NewOpt(req.MaxTokens)
	}

	for i := range req.Messages {
		params.Messages = append(params.Messages, toMessageParamUnion(&req.Messages[i]))
	}

	for i := range req.Tools {
		params.Tools = append(params.Tools, toToolParamUnion(&req.Tools[i]))
	}

	return params
}

// wrapErr attaches the provider's HTTP status so faults classify onto
// stable codes upstream.
func wrapErr(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return llm.NewError(apierr.StatusCode, err)
	}
	return llm.NewError(0, err)
}

func (o *OpenAI) ChatCompletion(ctx context.Context, req *schema.Request) (*schema.Response, error) {
	resp, err := o.client.Chat.Completions.New(ctx, toChatCompletionNewParams(req))
	if err != nil {
		return nil, wrapErr(err)
	}

	out := &schema.Response{
		Id:           resp.ID,
		Model:        resp.Model,
		FinishReason: schema.FinishReasonStop,
	}

	if len(resp.Choices) > 0 {
		choice := resp.Choices[0]
		out.Content = choice.Message.Content
		out.FinishReason = schema.FinishReason(choice.FinishReason)
		for _, tc := range choice.Message.ToolCalls {
			out.ToolCalls = append(out.ToolCalls, schema.ToolCall{
				Id:        tc.ID,
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			})
		}
	}

	return out, nil
}

func toStreamChunk(cur openai.ChatCompletionChunk) *schema.StreamChunk {
	chunk := &schema.StreamChunk{}
	if len(cur.Choices) == 0 {
		return chunk
	}

	choice := cur.Choices[0]
	chunk.Content = choice.Delta.Content
	chunk.FinishReason = schema.FinishReason(choice.FinishReason)

	for _, tc := range choice.Delta.ToolCalls {
		chunk.ToolCallDeltas = append(chunk.ToolCallDeltas, schema.ToolCallDelta{
			Index:     tc.Index,
			Id:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	return chunk
}

func (o *OpenAI) ChatCompletionStream(ctx context.Context, req *schema.Request) <-chan *schema.StreamChunk {
	stream := o.client.Chat.Completions.NewStreaming(ctx, toChatCompletionNewParams(req))
	ch := make(chan *schema.StreamChunk, 16) // this should be buffered

	go func() {
		defer func() {
			if p := recover(); p != nil {
				ch <- &schema.StreamChunk{Err: fmt.Errorf("panic: %v", p)}
			}

			stream.Close()
			close(ch)
		}()

		// read in the background
		for stream.Next() {
			select {
			case ch <- toStreamChunk(stream.Current()):
			case <-ctx.Done():
				return
			}
		}

		if stream.Err() != nil {
			ch <- &schema.StreamChunk{Err: wrapErr(stream.Err())}
		}
	}()

	return ch
}
