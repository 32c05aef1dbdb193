package wire

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// SSEWriter streams event frames over an HTTP response. Each frame is
// flushed immediately so proxies and clients see tokens as they are
// produced.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter sets the streaming headers and commits the response.
// Returns an error when the ResponseWriter cannot flush, streaming is
// pointless through a fully buffering writer.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	// tells nginx-style proxies not to buffer the stream
	h.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// Send encodes one event as a data frame. A frame that fails to
// marshal is replaced by an internal error frame rather than silently
// dropped.
func (s *SSEWriter) Send(ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		slog.Error("[wire] event marshal failed", "type", ev.Type, "error", err)
		fallback := NewErrorEvent("internal", "failed to encode event")
		payload, _ = json.Marshal(fallback)
	}

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return fmt.Errorf("write sse frame: %w", err)
	}
	s.flusher.Flush()

	return nil
}

// Finish writes the terminal sentinel frame.
func (s *SSEWriter) Finish() error {
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", Done); err != nil {
		return fmt.Errorf("write sse sentinel: %w", err)
	}
	s.flusher.Flush()

	return nil
}
