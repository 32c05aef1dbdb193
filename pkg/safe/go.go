package safe

import "log/slog"

// Go runs f on a new goroutine and swallows panics so a misbehaving
// worker cannot take the process down.
func Go(f func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("[safe] goroutine panic", "panic", r)
			}
		}()

		f()
	}()
}

// Call invokes f inline and converts a panic into the returned value.
// Returns nil when f completes normally.
func Call(f func()) (recovered any) {
	defer func() {
		recovered = recover()
	}()

	f()
	return nil
}
