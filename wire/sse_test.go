package wire

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSEWriterHeadersAndFrames(t *testing.T) {
	rec := httptest.NewRecorder()
	sw, err := NewSSEWriter(rec)
	require.NoError(t, err)

	require.NoError(t, sw.Send(NewContentEvent("hello")))
	require.NoError(t, sw.Send(NewToolStartEvent("create_vendor", "call_1")))
	require.NoError(t, sw.Finish())

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "keep-alive", rec.Header().Get("Connection"))
	assert.Equal(t, "no", rec.Header().Get("X-Accel-Buffering"))
	assert.True(t, rec.Flushed)

	body := rec.Body.String()
	assert.Contains(t, body, `data: {"type":"content","text":"hello"}`+"\n\n")
	assert.Contains(t, body, `"type":"tool_start"`)
	assert.True(t, strings.HasSuffix(body, "data: [DONE]\n\n"))
}

func TestSSERoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	sw, err := NewSSEWriter(rec)
	require.NoError(t, err)

	sent := []Event{
		NewContentEvent("hi"),
		NewToolStartEvent("query_roster", "c1"),
		NewToolExecutingEvent("c1"),
		NewToolResultEvent("c1", ToolResult{Success: true, Data: json.RawMessage(`{"count":2}`)}),
		NewErrorEvent("timeout", "took too long"),
	}
	for _, ev := range sent {
		require.NoError(t, sw.Send(ev))
	}
	require.NoError(t, sw.Finish())

	dec := NewDecoder(rec.Body)
	for i := range sent {
		got, err := dec.Next()
		require.NoError(t, err, "event %d", i)
		assert.Equal(t, sent[i].Type, got.Type)
	}

	_, err = dec.Next()
	assert.ErrorIs(t, err, ErrDone)
}

func TestDecoderSkipsMalformedFrames(t *testing.T) {
	stream := "data: {not json}\n\n" +
		"data: {\"type\":\"content\",\"text\":\"ok\"}\n\n" +
		"data: [DONE]\n\n"

	dec := NewDecoder(strings.NewReader(stream))
	ev, err := dec.Next()
	require.NoError(t, err)
	assert.Equal(t, EventContent, ev.Type)
	assert.Equal(t, "ok", ev.Text)

	_, err = dec.Next()
	assert.ErrorIs(t, err, ErrDone)
}

func TestDecoderSkipsUnknownEventTypes(t *testing.T) {
	stream := "data: {\"type\":\"telemetry\",\"text\":\"x\"}\n\n" +
		"data: {\"type\":\"content\",\"text\":\"real\"}\n\n" +
		"data: [DONE]\n\n"

	dec := NewDecoder(strings.NewReader(stream))
	ev, err := dec.Next()
	require.NoError(t, err)
	assert.Equal(t, "real", ev.Text)
}

func TestDecoderIgnoresCommentsAndOtherFields(t *testing.T) {
	stream := ": keepalive\n\n" +
		"event: message\n" +
		"data: {\"type\":\"content\",\"text\":\"v\"}\n\n" +
		"data: [DONE]\n\n"

	dec := NewDecoder(strings.NewReader(stream))
	ev, err := dec.Next()
	require.NoError(t, err)
	assert.Equal(t, "v", ev.Text)
}

func TestDecoderEOFWithoutSentinel(t *testing.T) {
	dec := NewDecoder(strings.NewReader("data: {\"type\":\"content\",\"text\":\"partial\"}\n\n"))
	_, err := dec.Next()
	require.NoError(t, err)

	_, err = dec.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestToolResultEventShape(t *testing.T) {
	ev := NewToolResultEvent("c7", ToolResult{
		Success:  true,
		Data:     json.RawMessage(`{"ok":true}`),
		ShowForm: "sso_config",
	})

	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"tool_result","id":"c7","result":{"success":true,"data":{"ok":true},"showForm":"sso_config"}}`,
		string(raw))
}

func TestFailureResultShape(t *testing.T) {
	ev := NewToolResultEvent("c8", ToolResult{Success: false, Error: "boom"})
	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"tool_result","id":"c8","result":{"success":false,"error":"boom"}}`,
		string(raw))
}
