package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rayiskander2406/vendorportal/assistant"
	"github.com/rayiskander2406/vendorportal/pkg/safe"
	"github.com/rayiskander2406/vendorportal/wire"
)

// Guard is the single-slot admission gate for turn submission. The
// flag is a plain atomic deliberately separate from rendered state:
// UI snapshots can be stale by a frame, this cell never is.
type Guard struct {
	busy atomic.Bool
}

// TryAcquire claims the slot. It must be called synchronously at the
// very start of a submission, before any asynchronous work.
func (g *Guard) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

func (g *Guard) Release() {
	g.busy.Store(false)
}

func (g *Guard) InFlight() bool {
	return g.busy.Load()
}

// TurnRunner submits turns for one conversation: at most one in
// flight, each bounded by a wall-clock timeout and owning a
// cancellation handle.
type TurnRunner struct {
	guard   Guard
	client  *Client
	conv    *Conversation
	convId  string
	timeout time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc

	// OnTurnEnd, when set, is called after every terminal outcome.
	// UIs use it to trigger a re-render.
	OnTurnEnd func()
}

func NewTurnRunner(c *Client, conv *Conversation, convId string, timeout time.Duration) *TurnRunner {
	return &TurnRunner{
		client:  c,
		conv:    conv,
		convId:  convId,
		timeout: timeout,
	}
}

// Submit starts a turn. It is a no-op returning false when the trimmed
// text is empty or another turn is in flight; a rejected submission is
// dropped, never queued.
func (t *TurnRunner) Submit(text string, vendorCtx assistant.VendorContext) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	if !t.guard.TryAcquire() {
		slog.Debug("[client] submission rejected, turn in flight")
		return false
	}

	t.conv.BeginTurn(text)

	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	t.mu.Lock()
	t.cancel = cancel
	t.mu.Unlock()

	safe.Go(func() {
		defer func() {
			cancel()
			t.mu.Lock()
			t.cancel = nil
			t.mu.Unlock()
			// every terminal path runs through here; a leaked guard
			// bricks the conversation
			t.guard.Release()
			if t.OnTurnEnd != nil {
				t.OnTurnEnd()
			}
		}()

		t.runTurn(ctx, vendorCtx)
	})

	return true
}

// Abort cancels the in-flight turn, if any. The cancellation surfaces
// through the error path, which clears loading state and releases the
// guard; it is never a silent return to idle.
func (t *TurnRunner) Abort() {
	t.mu.Lock()
	cancel := t.cancel
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (t *TurnRunner) InFlight() bool {
	return t.guard.InFlight()
}

func (t *TurnRunner) runTurn(ctx context.Context, vendorCtx assistant.VendorContext) {
	// BeginTurn already appended the user entry, so the snapshot holds
	// the full transcript the server expects
	body, err := t.client.Stream(ctx, &ChatRequest{
		ConversationId: t.convId,
		Messages:       t.conv.Snapshot().Messages,
		VendorContext:  vendorCtx,
	})
	if err != nil {
		t.conv.FailTurn(transportErrMessage(ctx, err))
		return
	}
	defer body.Close()

	dec := wire.NewDecoder(body)
	for {
		ev, err := dec.Next()
		if err != nil {
			switch {
			case errors.Is(err, wire.ErrDone):
				t.conv.FinishTurn()
			case errors.Is(err, io.EOF):
				// stream closed without sentinel: either a fatal error
				// event already ended the turn, or the server died
				if t.conv.IsLoading() {
					t.conv.FailTurn("connection closed before the turn completed")
				}
			default:
				t.conv.FailTurn(transportErrMessage(ctx, err))
			}
			return
		}

		if fatal := t.conv.Apply(ev); fatal {
			return
		}
	}
}

func transportErrMessage(ctx context.Context, err error) string {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return "the turn timed out"
	case errors.Is(ctx.Err(), context.Canceled):
		return "the turn was cancelled"
	default:
		return "connection error: " + err.Error()
	}
}
