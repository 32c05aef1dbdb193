package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayiskander2406/vendorportal/wire"
)

func toolResultEvent(id string, res wire.ToolResult) *wire.Event {
	ev := wire.NewToolResultEvent(id, res)
	return &ev
}

func TestConversationContentAccumulation(t *testing.T) {
	conv := NewConversation()
	conv.BeginTurn("hello")

	for _, frag := range []string{"Hi", " there", "!"} {
		ev := wire.NewContentEvent(frag)
		conv.Apply(&ev)
	}
	conv.FinishTurn()

	st := conv.Snapshot()
	require.Len(t, st.Messages, 2)
	assert.Equal(t, "user", st.Messages[0].Role)
	assert.Equal(t, "hello", st.Messages[0].Content)
	assert.Equal(t, "Hi there!", st.Messages[1].Content)
	assert.False(t, st.IsLoading)
}

func TestConversationToolLifecycle(t *testing.T) {
	conv := NewConversation()
	conv.BeginTurn("create acme")

	start := wire.NewToolStartEvent("create_vendor", "call_1")
	conv.Apply(&start)
	st := conv.Snapshot()
	require.Len(t, st.ToolCalls, 1)
	assert.Equal(t, ToolStatusStarted, st.ToolCalls[0].Status)

	exec := wire.NewToolExecutingEvent("call_1")
	conv.Apply(&exec)
	assert.Equal(t, ToolStatusExecuting, conv.Snapshot().ToolCalls[0].Status)

	conv.Apply(toolResultEvent("call_1", wire.ToolResult{
		Success: true,
		Data:    json.RawMessage(`{"vendor":{"id":"vnd_1"}}`),
	}))
	view := conv.Snapshot().ToolCalls[0]
	assert.Equal(t, ToolStatusSucceeded, view.Status)
	assert.JSONEq(t, `{"vendor":{"id":"vnd_1"}}`, string(view.Data))
}

func TestConversationToolFailureIsNotFatal(t *testing.T) {
	conv := NewConversation()
	conv.BeginTurn("do it")

	start := wire.NewToolStartEvent("configure_sso", "call_9")
	conv.Apply(&start)
	fatal := conv.Apply(toolResultEvent("call_9", wire.ToolResult{
		Success: false,
		Error:   "metadata url must be https",
	}))

	assert.False(t, fatal)
	view := conv.Snapshot().ToolCalls[0]
	assert.Equal(t, ToolStatusFailed, view.Status)
	assert.Equal(t, "metadata url must be https", view.Error)
	assert.True(t, conv.IsLoading())
}

func TestConversationErrorEventIsFatal(t *testing.T) {
	conv := NewConversation()
	conv.BeginTurn("hi")

	content := wire.NewContentEvent("partial ans")
	conv.Apply(&content)

	errEv := wire.NewErrorEvent("rate_limited", "too many requests")
	fatal := conv.Apply(&errEv)

	assert.True(t, fatal)
	st := conv.Snapshot()
	assert.False(t, st.IsLoading)
	assert.Equal(t, "too many requests (rate_limited)", st.LastError)
	// partial text the user already saw is kept
	require.Len(t, st.Messages, 2)
	assert.Equal(t, "partial ans", st.Messages[1].Content)
}

func TestFinishTurnTextualFormOverridesStructured(t *testing.T) {
	conv := NewConversation()
	conv.BeginTurn("set up sso")

	start := wire.NewToolStartEvent("configure_sso", "c1")
	conv.Apply(&start)
	conv.Apply(toolResultEvent("c1", wire.ToolResult{
		Success:  true,
		Data:     json.RawMessage(`{}`),
		ShowForm: "structured_form",
	}))

	content := wire.NewContentEvent("done [SHOW_FORM:textual_form]")
	conv.Apply(&content)
	conv.FinishTurn()

	assert.Equal(t, "textual_form", conv.Snapshot().ActiveForm)
}

func TestFinishTurnStructuredFormUsedWithoutTextualMarker(t *testing.T) {
	conv := NewConversation()
	conv.BeginTurn("set up sso")

	start := wire.NewToolStartEvent("configure_sso", "c1")
	conv.Apply(&start)
	conv.Apply(toolResultEvent("c1", wire.ToolResult{
		Success:  true,
		Data:     json.RawMessage(`{}`),
		ShowForm: "sso_config",
	}))

	content := wire.NewContentEvent("staged, please verify")
	conv.Apply(&content)
	conv.FinishTurn()

	assert.Equal(t, "sso_config", conv.Snapshot().ActiveForm)
}

func TestSuggestionsResetOnNewTurn(t *testing.T) {
	conv := NewConversation()
	conv.BeginTurn("one")
	content := wire.NewContentEvent("a [SUGGESTIONS]x|y[/SUGGESTIONS]")
	conv.Apply(&content)
	conv.FinishTurn()
	require.Equal(t, []string{"x", "y"}, conv.Snapshot().Suggestions)

	conv.BeginTurn("two")
	assert.Empty(t, conv.Snapshot().Suggestions)
	assert.NotNil(t, conv.Snapshot().Suggestions)
}

func TestUnknownToolResultIdIgnored(t *testing.T) {
	conv := NewConversation()
	conv.BeginTurn("x")

	fatal := conv.Apply(toolResultEvent("ghost", wire.ToolResult{Success: true}))
	assert.False(t, fatal)
	assert.Empty(t, conv.Snapshot().ToolCalls)
}

func TestSeedHistoryOnlyAppliesToFreshConversation(t *testing.T) {
	conv := NewConversation()
	conv.SeedHistory([]Message{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	})

	st := conv.Snapshot()
	require.Len(t, st.Messages, 2)
	assert.Equal(t, "earlier answer", st.Messages[1].Content)

	// a non-empty conversation ignores late seeding
	conv.SeedHistory([]Message{{Role: "user", Content: "other"}})
	assert.Len(t, conv.Snapshot().Messages, 2)
}

func TestStructuredFormSurvivesErrorTermination(t *testing.T) {
	conv := NewConversation()
	conv.BeginTurn("set up sso")

	start := wire.NewToolStartEvent("configure_sso", "c1")
	conv.Apply(&start)
	conv.Apply(toolResultEvent("c1", wire.ToolResult{
		Success:  true,
		Data:     json.RawMessage(`{}`),
		ShowForm: "sso_config",
	}))

	// the form landed before the provider fell over; it must not be lost
	fatal := wire.NewErrorEvent("unavailable", "model unavailable")
	require.True(t, conv.Apply(&fatal))

	st := conv.Snapshot()
	assert.Equal(t, "sso_config", st.ActiveForm)
	assert.False(t, st.IsLoading)
}

func TestToolStatusNeverRegresses(t *testing.T) {
	conv := NewConversation()
	conv.BeginTurn("create acme")

	start := wire.NewToolStartEvent("create_vendor", "c1")
	conv.Apply(&start)
	conv.Apply(toolResultEvent("c1", wire.ToolResult{Success: true, Data: json.RawMessage(`{}`)}))

	// a late or duplicated executing frame after the result
	late := wire.NewToolExecutingEvent("c1")
	conv.Apply(&late)
	conv.Apply(&late)

	st := conv.Snapshot()
	require.Len(t, st.ToolCalls, 1)
	assert.Equal(t, ToolStatusSucceeded, st.ToolCalls[0].Status)
}
