// Package assistant drives one conversation turn against the model
// provider: a bounded tool-calling loop re-encoded as wire events.
package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jinzhu/copier"

	"github.com/rayiskander2406/vendorportal/llm"
	"github.com/rayiskander2406/vendorportal/llm/schema"
	"github.com/rayiskander2406/vendorportal/tool"
	"github.com/rayiskander2406/vendorportal/wire"
)

// MaxToolDepth bounds tool-calling rounds within a single turn so a
// provider that keeps requesting tools can never loop forever.
const MaxToolDepth = 10

const depthExhaustedNote = "I wasn't able to finish this request within the allowed number of " +
	"tool rounds. Here's where things stand so far; please tell me how you'd like to proceed."

// Sink receives each wire event as the turn produces it. A sink error
// aborts the turn, the peer is gone.
type Sink func(ev wire.Event) error

type Assistant struct {
	llm          llm.LLM
	model        string
	systemPrompt string
	registry     *tool.Registry
}

func New(l llm.LLM, model, systemPrompt string, registry *tool.Registry) *Assistant {
	return &Assistant{
		llm:          l,
		model:        model,
		systemPrompt: systemPrompt,
		registry:     registry,
	}
}

// Model reports which provider model this assistant is configured for.
func (a *Assistant) Model() string {
	return a.model
}

// RunTurn executes one user turn. It streams events into sink and, on
// success, returns the full updated history. On a provider fault it
// emits a classified error event and returns the error; the caller's
// history is never touched either way.
func (a *Assistant) RunTurn(
	ctx context.Context,
	history []schema.MessageParam,
	userText string,
	vendorCtx VendorContext,
	sink Sink,
) ([]schema.MessageParam, error) {
	// deep copy so a failed turn cannot corrupt the committed history
	msgs := make([]schema.MessageParam, 0, len(history)+8)
	if len(history) > 0 {
		if err := copier.CopyWithOption(&msgs, &history, copier.Option{DeepCopy: true}); err != nil {
			return nil, fmt.Errorf("snapshot history: %w", err)
		}
	}

	msgs = append(msgs, schema.NewUserMessage(userText))

	reqMsgs := func() []schema.MessageParam {
		withSystem := make([]schema.MessageParam, 0, len(msgs)+1)
		withSystem = append(withSystem, schema.NewSystemMessage(a.renderSystemPrompt(vendorCtx)))
		return append(withSystem, msgs...)
	}

	for depth := 0; ; depth++ {
		req := schema.NewRequest(a.model, reqMsgs())
		req.Tools = a.registry.Params()

		chunkCh := a.llm.ChatCompletionStream(ctx, req)
		round, err := schema.ReadStream(ctx, chunkCh, func(fragment string) error {
			return sink(wire.NewContentEvent(fragment))
		})
		if err != nil {
			code := llm.Classify(err)
			slog.Error("[assistant] provider fault", "code", code, "depth", depth, "error", err)
			// classified code and safe message only, raw provider text stays here
			_ = sink(wire.NewErrorEvent(string(code), code.Message()))
			return nil, err
		}

		msgs = append(msgs, schema.NewAssistantMessage(round.Content, round.ToolCalls))

		if !round.HasToolCalls() {
			return msgs, nil
		}

		// tools run strictly in provider order; each result lands in
		// history before the next tool is considered
		for _, tc := range round.ToolCalls {
			if err := sink(wire.NewToolStartEvent(tc.Name, tc.Id)); err != nil {
				return nil, err
			}
			if err := sink(wire.NewToolExecutingEvent(tc.Id)); err != nil {
				return nil, err
			}

			res := a.invoke(ctx, tc)

			if err := sink(wire.NewToolResultEvent(tc.Id, wire.ToolResult{
				Success:  res.Success,
				Data:     res.Data,
				Error:    res.Err,
				ShowForm: res.ShowForm,
			})); err != nil {
				return nil, err
			}

			msgs = append(msgs, schema.NewToolMessage(tc.Id, formatToolResult(tc.Name, res)))
		}

		if depth+1 >= MaxToolDepth {
			slog.Warn("[assistant] tool depth exhausted", "model", a.model, "depth", depth+1)
			if err := sink(wire.NewContentEvent(depthExhaustedNote)); err != nil {
				return nil, err
			}
			msgs = append(msgs, schema.NewAssistantMessage(depthExhaustedNote, nil))
			return msgs, nil
		}
	}
}

// invoke never lets a tool fault escape; anything thrown below the
// gateway boundary degrades to a failed result the model can narrate.
func (a *Assistant) invoke(ctx context.Context, tc schema.ToolCall) *tool.Result {
	inv, ok := a.registry.Get(tc.Name)
	if !ok {
		return &tool.Result{Success: false, Err: fmt.Sprintf("(tool %s not found)", tc.Name)}
	}

	slog.Info("[assistant] invoking tool", "name", tc.Name, "id", tc.Id)
	return inv.Invoke(ctx, tc.Arguments)
}
