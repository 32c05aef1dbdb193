package server

import (
	"log/slog"
	"net/http"

	"github.com/rayiskander2406/vendorportal/llm/schema"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"model":  s.assistant.Model(),
		"tools":  s.registry.List(),
	})
}

type messageView struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// handleMessages returns the displayable transcript of a conversation,
// tool plumbing messages excluded.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "conversation id is required")
		return
	}

	history, err := s.store.History(id)
	if err != nil {
		slog.Error("[server] load history", "conversation", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load conversation")
		return
	}

	views := make([]messageView, 0, len(history))
	for _, msg := range history {
		role := msg.Role()
		if role != schema.RoleUser && role != schema.RoleAssistant {
			continue
		}
		if msg.Content() == "" {
			continue
		}
		views = append(views, messageView{
			Role:    string(role),
			Content: msg.Content(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"conversationId": id,
		"messages":       views,
	})
}
