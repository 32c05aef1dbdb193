package schema

import (
	"context"
	"sort"
	"strings"

	"github.com/rayiskander2406/vendorportal/pkg/xmap"
)

// Round is one fully accumulated model turn: everything the model said
// plus every tool call it requested, in index order.
type Round struct {
	Content      string
	ToolCalls    []ToolCall
	FinishReason FinishReason
}

func (r *Round) HasToolCalls() bool {
	return len(r.ToolCalls) > 0
}

type toolCallBuffer struct {
	index     int64
	id        string
	name      string
	arguments strings.Builder
}

// ReadStream drains a chunk channel into a Round. onContent, when
// non-nil, observes each content fragment as it arrives so callers can
// relay text without waiting for the round to finish; returning an
// error from it aborts the read.
func ReadStream(
	ctx context.Context,
	ch <-chan *StreamChunk,
	onContent func(fragment string) error,
) (*Round, error) {
	var (
		content strings.Builder
		buffers = make(map[int64]*toolCallBuffer)
		round   = Round{FinishReason: FinishReasonStop}
	)

	for chunk := range ch {
		if chunk.Err != nil {
			return nil, chunk.Err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if chunk.Content != "" {
			content.WriteString(chunk.Content)
			if onContent != nil {
				if err := onContent(chunk.Content); err != nil {
					return nil, err
				}
			}
		}

		for _, d := range chunk.ToolCallDeltas {
			buf, ok := buffers[d.Index]
			if !ok {
				buf = &toolCallBuffer{index: d.Index, id: d.Id, name: d.Name}
				buffers[d.Index] = buf
			}
			if buf.id == "" {
				buf.id = d.Id
			}
			if buf.name == "" {
				buf.name = d.Name
			}
			buf.arguments.WriteString(d.Arguments)
		}

		if chunk.FinishReason != "" {
			round.FinishReason = chunk.FinishReason
		}
	}

	bufs := xmap.Values(buffers)
	sort.Slice(bufs, func(i, j int) bool { return bufs[i].index < bufs[j].index })
	for _, b := range bufs {
		round.ToolCalls = append(round.ToolCalls, ToolCall{
			Id:        b.id,
			Name:      b.name,
			Arguments: b.arguments.String(),
		})
	}

	round.Content = content.String()
	if round.HasToolCalls() {
		round.FinishReason = FinishReasonToolCalls
	}

	return &round, nil
}
