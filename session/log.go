package session

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rayiskander2406/vendorportal/llm/schema"
)

func newLogItemId() string {
	id := uuid.Must(uuid.NewV7())
	return strings.ReplaceAll(id.String(), "-", "")
}

// LogItem is one persisted conversation message, one JSON line per
// item in the conversation's log file.
type LogItem struct {
	Id      string               `json:"id"`
	Role    schema.Role          `json:"role"`
	Created int64                `json:"created"`
	Message *schema.MessageParam `json:"message,omitempty"`
}

// aofLog is the append-only message log for one conversation, stored
// at <root>/<conversation-id>/log.jsonl.
type aofLog struct {
	root   string
	convId string
	f      *os.File
}

func (l *aofLog) path() string {
	return filepath.Join(l.root, l.convId, "log.jsonl")
}

func (l *aofLog) open() error {
	path := l.path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	l.f = f

	return nil
}

func (l *aofLog) close() {
	if l.f != nil {
		l.f.Close()
		l.f = nil
	}
}

func (l *aofLog) append(msg schema.MessageParam) error {
	item := LogItem{
		Id:      newLogItemId(),
		Role:    msg.Role(),
		Created: time.Now().Unix(),
		Message: &msg,
	}

	line, err := json.Marshal(&item)
	if err != nil {
		return err
	}
	if l.f == nil {
		return fmt.Errorf("session log not open")
	}

	line = append(line, '\n')
	_, err = l.f.Write(line)
	return err
}

// retrieve replays the log. Corrupt lines are skipped, a torn final
// write must not make the whole conversation unloadable.
func (l *aofLog) retrieve() ([]schema.MessageParam, error) {
	f, err := os.Open(l.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open session file: %w", err)
	}
	defer f.Close()

	msgs := make([]schema.MessageParam, 0, 128)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var item LogItem
		if err := json.Unmarshal(line, &item); err != nil {
			continue
		}
		if item.Message != nil {
			msgs = append(msgs, *item.Message)
		}
	}

	return msgs, nil
}
