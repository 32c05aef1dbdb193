// Package session keeps per-conversation history in memory, mirrored
// to append-only JSONL logs, with a cron-driven retention sweep.
package session

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rayiskander2406/vendorportal/llm/schema"
)

type conversation struct {
	id        string
	messages  []schema.MessageParam
	updatedAt time.Time
	log       *aofLog
}

type Store struct {
	mu    sync.RWMutex
	convs map[string]*conversation

	root      string
	retention time.Duration
	cron      *cron.Cron
}

func NewStore(root string, retention time.Duration) *Store {
	return &Store{
		convs:     make(map[string]*conversation),
		root:      root,
		retention: retention,
	}
}

// History returns a copy of the conversation's committed messages,
// loading it from disk on first touch. Unknown ids yield an empty
// history, a new conversation starts implicitly.
func (s *Store) History(id string) ([]schema.MessageParam, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.getOrLoadLocked(id)
	if err != nil {
		return nil, err
	}

	out := make([]schema.MessageParam, len(conv.messages))
	copy(out, conv.messages)
	return out, nil
}

// Record appends one turn's messages to the conversation and its log.
func (s *Store) Record(id string, msgs []schema.MessageParam) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, err := s.getOrLoadLocked(id)
	if err != nil {
		return err
	}

	for _, msg := range msgs {
		if err := conv.log.append(msg); err != nil {
			return fmt.Errorf("append session log: %w", err)
		}
	}

	conv.messages = append(conv.messages, msgs...)
	conv.updatedAt = time.Now()
	return nil
}

func (s *Store) getOrLoadLocked(id string) (*conversation, error) {
	if conv, ok := s.convs[id]; ok {
		conv.updatedAt = time.Now()
		return conv, nil
	}

	l := &aofLog{root: s.root, convId: id}
	msgs, err := l.retrieve()
	if err != nil {
		return nil, err
	}
	if err := l.open(); err != nil {
		return nil, fmt.Errorf("open session log: %w", err)
	}

	conv := &conversation{
		id:        id,
		messages:  msgs,
		updatedAt: time.Now(),
		log:       l,
	}
	s.convs[id] = conv
	return conv, nil
}

// Sweep evicts conversations idle past the retention window and
// returns how many were dropped. The on-disk log survives eviction.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-s.retention)
	dropped := 0
	for id, conv := range s.convs {
		if conv.updatedAt.Before(cutoff) {
			conv.log.close()
			delete(s.convs, id)
			dropped++
		}
	}

	return dropped
}

// StartSweeper schedules Sweep on the given cron spec.
func (s *Store) StartSweeper(spec string) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if n := s.Sweep(); n > 0 {
			slog.Info("[session] swept idle conversations", "count", n)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule session sweep: %w", err)
	}

	c.Start()
	s.cron = c
	return nil
}

func (s *Store) Close() {
	if s.cron != nil {
		s.cron.Stop()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, conv := range s.convs {
		conv.log.close()
	}
}
