// Package server exposes the assistant over HTTP: a streaming chat
// endpoint plus health and history lookups.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/rayiskander2406/vendorportal/assistant"
	"github.com/rayiskander2406/vendorportal/config"
	"github.com/rayiskander2406/vendorportal/pkg/process"
	"github.com/rayiskander2406/vendorportal/session"
	"github.com/rayiskander2406/vendorportal/tool"
)

type Server struct {
	assistant *assistant.Assistant
	store     *session.Store
	registry  *tool.Registry

	pool        *ants.Pool
	turnTimeout time.Duration
	httpServer  *http.Server
}

func New(
	cfg config.ServerConfig,
	asst *assistant.Assistant,
	store *session.Store,
	registry *tool.Registry,
) (*Server, error) {
	// nonblocking: a full pool rejects instead of queueing, the chat
	// handler turns that into 503
	pool, err := ants.NewPool(cfg.MaxConcurrentTurns, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create turn pool: %w", err)
	}

	s := &Server{
		assistant:   asst,
		store:       store,
		registry:    registry,
		pool:        pool,
		turnTimeout: cfg.TurnTimeout,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/conversations/{id}/messages", s.handleMessages)

	s.httpServer = &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}

	return s, nil
}

// Run serves until ctx is cancelled, then drains gracefully.
func (s *Server) Run(ctx context.Context) error {
	if wg := process.RootWaitGroup(ctx); wg != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("[server] shutdown", "error", err)
			}
			s.pool.Release()
			s.store.Close()
		}()
	}

	slog.Info("[server] listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("[server] write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
