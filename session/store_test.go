package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rayiskander2406/vendorportal/llm/schema"
)

func TestHistoryStartsEmpty(t *testing.T) {
	store := NewStore(t.TempDir(), time.Hour)
	defer store.Close()

	history, err := store.History("conv-a")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRecordAndReload(t *testing.T) {
	root := t.TempDir()

	store := NewStore(root, time.Hour)
	turn := []schema.MessageParam{
		schema.NewUserMessage("create acme"),
		schema.NewAssistantMessage("done", []schema.ToolCall{
			{Id: "c1", Name: "create_vendor", Arguments: `{"name":"acme"}`},
		}),
		schema.NewToolMessage("c1", `{"success":true}`),
	}
	require.NoError(t, store.Record("conv-a", turn))
	store.Close()

	// a fresh store replays the log from disk
	reloaded := NewStore(root, time.Hour)
	defer reloaded.Close()

	got, err := reloaded.History("conv-a")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "create acme", got[0].User.Content)
	require.NotNil(t, got[1].Assistant)
	require.Len(t, got[1].Assistant.ToolCalls, 1)
	assert.Equal(t, "create_vendor", got[1].Assistant.ToolCalls[0].Name)
	assert.Equal(t, "c1", got[2].Tool.ToolCallId)
}

func TestRecordAccumulatesTurns(t *testing.T) {
	store := NewStore(t.TempDir(), time.Hour)
	defer store.Close()

	require.NoError(t, store.Record("conv-a", []schema.MessageParam{
		schema.NewUserMessage("q1"), schema.NewAssistantMessage("a1", nil),
	}))
	require.NoError(t, store.Record("conv-a", []schema.MessageParam{
		schema.NewUserMessage("q2"), schema.NewAssistantMessage("a2", nil),
	}))

	got, err := store.History("conv-a")
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "q2", got[2].User.Content)
}

func TestHistoryReturnsCopy(t *testing.T) {
	store := NewStore(t.TempDir(), time.Hour)
	defer store.Close()

	require.NoError(t, store.Record("conv-a", []schema.MessageParam{schema.NewUserMessage("original")}))

	got, err := store.History("conv-a")
	require.NoError(t, err)
	got[0] = schema.NewUserMessage("mutated")

	again, err := store.History("conv-a")
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].User.Content)
}

func TestSweepEvictsIdleConversations(t *testing.T) {
	store := NewStore(t.TempDir(), 50*time.Millisecond)
	defer store.Close()

	require.NoError(t, store.Record("idle", []schema.MessageParam{schema.NewUserMessage("hi")}))
	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 0, store.Sweep())

	// eviction drops memory, not the log
	history, err := store.History("idle")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestLogSkipsCorruptLines(t *testing.T) {
	root := t.TempDir()
	convDir := filepath.Join(root, "broken")
	require.NoError(t, os.MkdirAll(convDir, 0755))

	content := `{"id":"1","role":"user","created":1,"message":{"user":{"content":"kept"}}}` + "\n" +
		"{torn write\n"
	require.NoError(t, os.WriteFile(filepath.Join(convDir, "log.jsonl"), []byte(content), 0644))

	store := NewStore(root, time.Hour)
	defer store.Close()

	history, err := store.History("broken")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "kept", history[0].User.Content)
}
