package wire

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
)

// ErrDone reports the stream's terminal sentinel. It means the turn
// completed, not that anything failed.
var ErrDone = errors.New("wire: stream done")

// Decoder reads event frames off an SSE byte stream. Malformed frames
// and unrecognized event types are skipped, a peer speaking a newer
// dialect must not break an older reader.
type Decoder struct {
	scanner *bufio.Scanner
}

func NewDecoder(r io.Reader) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Decoder{scanner: scanner}
}

// Next returns the next decodable event. It returns ErrDone on the
// sentinel and io.EOF when the stream ends without one.
func (d *Decoder) Next() (*Event, error) {
	for d.scanner.Scan() {
		line := d.scanner.Text()

		// blank lines are frame separators, colon lines are comments
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}

		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			// event:/id:/retry: fields carry nothing for us
			continue
		}
		data = strings.TrimSpace(data)

		if data == Done {
			return nil, ErrDone
		}

		var ev Event
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			slog.Warn("[wire] skipping malformed frame", "error", err)
			continue
		}

		switch ev.Type {
		case EventContent, EventToolStart, EventToolExecuting, EventToolResult, EventError:
			return &ev, nil
		default:
			slog.Warn("[wire] skipping unknown event type", "type", ev.Type)
		}
	}

	if err := d.scanner.Err(); err != nil {
		return nil, err
	}

	return nil, io.EOF
}
