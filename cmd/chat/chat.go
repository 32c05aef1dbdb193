package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rayiskander2406/vendorportal/assistant"
	"github.com/rayiskander2406/vendorportal/client"
	"github.com/rayiskander2406/vendorportal/cmd/chat/ui"
)

var (
	flagServer       string
	flagConversation string
	flagTimeout      time.Duration
	flagContext      []string
)

var ChatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant from the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat()
	},
}

func init() {
	ChatCmd.Flags().StringVar(&flagServer, "server", "http://127.0.0.1:8787", "assistant server base URL")
	ChatCmd.Flags().StringVar(&flagConversation, "conversation", "", "conversation id to resume; a new one is created when empty")
	ChatCmd.Flags().DurationVar(&flagTimeout, "timeout", 2*time.Minute, "per-turn timeout")
	ChatCmd.Flags().StringArrayVar(&flagContext, "context", nil, "vendor context entries as key=value, repeatable")
}

func parseVendorContext(entries []string) (assistant.VendorContext, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	vc := make(assistant.VendorContext, len(entries))
	for _, entry := range entries {
		k, v, ok := strings.Cut(entry, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid context entry %q, expected key=value", entry)
		}
		vc[k] = v
	}
	return vc, nil
}

func runChat() error {
	vendorCtx, err := parseVendorContext(flagContext)
	if err != nil {
		return err
	}

	convId := flagConversation
	if convId == "" {
		convId = uuid.NewString()
	}

	c := client.New(flagServer)
	conv := client.NewConversation()

	if flagConversation != "" {
		msgs, err := c.Messages(context.Background(), convId)
		if err != nil {
			return fmt.Errorf("resume conversation %s: %w", convId, err)
		}
		conv.SeedHistory(msgs)
	}

	runner := client.NewTurnRunner(c, conv, convId, flagTimeout)

	model := ui.New(conv, runner, vendorCtx)
	program := tea.NewProgram(model, tea.WithAltScreen())

	runner.OnTurnEnd = func() {
		program.Send(ui.TurnEndMsg{})
	}

	fmt.Printf("conversation: %s\n", convId)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	return nil
}
