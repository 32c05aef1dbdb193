package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/panjf2000/ants/v2"

	"github.com/rayiskander2406/vendorportal/assistant"
	"github.com/rayiskander2406/vendorportal/llm/schema"
	"github.com/rayiskander2406/vendorportal/wire"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest carries the full visible transcript including the new
// user entry; the server holds no authoritative history of its own.
// ConversationId is optional and only keys the session log.
type chatRequest struct {
	ConversationId string                  `json:"conversationId"`
	Messages       []chatMessage           `json:"messages"`
	VendorContext  assistant.VendorContext `json:"vendorContext"`
}

func parseChatRequest(r *http.Request) (*chatRequest, error) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("messages is required")
	}
	for i, msg := range req.Messages {
		if msg.Role != "user" && msg.Role != "assistant" {
			return nil, fmt.Errorf("messages[%d]: unsupported role %q", i, msg.Role)
		}
	}

	last := &req.Messages[len(req.Messages)-1]
	if last.Role != "user" {
		return nil, fmt.Errorf("last message must be from the user")
	}
	last.Content = strings.TrimSpace(last.Content)
	if last.Content == "" {
		return nil, fmt.Errorf("message is required")
	}

	if strings.ContainsAny(req.ConversationId, "/\\") {
		return nil, fmt.Errorf("conversationId must not contain path separators")
	}

	return &req, nil
}

// history converts everything before the new user entry into provider
// messages.
func (req *chatRequest) history() []schema.MessageParam {
	prior := req.Messages[:len(req.Messages)-1]
	out := make([]schema.MessageParam, 0, len(prior))
	for _, msg := range prior {
		if msg.Role == "assistant" {
			out = append(out, schema.NewAssistantMessage(msg.Content, nil))
			continue
		}
		out = append(out, schema.NewUserMessage(msg.Content))
	}
	return out
}

// handleChat runs one turn and streams its events. Validation faults
// reject before any stream is opened; once streaming starts, faults
// travel inside the stream.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	req, err := parseChatRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	history := req.history()
	userText := req.Messages[len(req.Messages)-1].Content

	// admission before headers so an overloaded server can still say 503
	done := make(chan struct{})
	var (
		sw      *wire.SSEWriter
		turnErr error
	)

	submitErr := s.pool.Submit(func() {
		defer close(done)

		sw, turnErr = wire.NewSSEWriter(w)
		if turnErr != nil {
			writeError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), s.turnTimeout)
		defer cancel()

		updated, err := s.assistant.RunTurn(ctx, history, userText, req.VendorContext,
			func(ev wire.Event) error { return sw.Send(ev) })
		if err != nil {
			// error event already sent; close without the sentinel
			turnErr = err
			return
		}

		if req.ConversationId != "" {
			// best effort, the client owns the authoritative history
			if err := s.store.Record(req.ConversationId, updated[len(history):]); err != nil {
				slog.Error("[server] record session", "conversation", req.ConversationId, "error", err)
			}
		}

		turnErr = sw.Finish()
	})
	if submitErr != nil {
		if submitErr == ants.ErrPoolOverload {
			writeError(w, http.StatusServiceUnavailable, "too many active conversations, retry shortly")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to start turn")
		return
	}

	<-done
	if turnErr != nil {
		slog.Warn("[server] turn ended with error", "conversation", req.ConversationId, "error", turnErr)
	}
}
