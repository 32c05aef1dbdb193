package process

import (
	"context"
	"sync"
	"time"
)

const exitTimeout = 5 * time.Second

type ctxKey string

const rootWgKey ctxKey = "__root_wg__"

// RootWaitGroup extracts the process-wide wait group installed by
// RootContext, or nil when ctx is not a root context.
func RootWaitGroup(ctx context.Context) *sync.WaitGroup {
	if wg, ok := ctx.Value(rootWgKey).(*sync.WaitGroup); ok {
		return wg
	}
	return nil
}

// RootContext builds the context the command tree hangs off. The
// returned wait function blocks until every registered worker exits,
// or for at most exitTimeout on a stuck shutdown.
func RootContext() (context.Context, context.CancelFunc, func()) {
	wg := &sync.WaitGroup{}
	ctx, cancel := context.WithCancel(context.Background())
	ctx = context.WithValue(ctx, rootWgKey, wg)

	wait := func() {
		deadline, stop := context.WithTimeout(context.Background(), exitTimeout)
		defer stop()

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-deadline.Done():
		case <-done:
		}
	}

	return ctx, cancel, wait
}
