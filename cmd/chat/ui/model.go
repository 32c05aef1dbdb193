// Package ui is the terminal front-end over the stream-consumer state
// machine: it renders conversation snapshots and forwards submissions
// through the turn guard.
package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/rayiskander2406/vendorportal/assistant"
	"github.com/rayiskander2406/vendorportal/client"
)

// Model is the main TUI model.
type Model struct {
	conv      *client.Conversation
	runner    *client.TurnRunner
	vendorCtx assistant.VendorContext
	theme     *Theme

	input    textinput.Model
	spin     spinner.Model
	markdown *glamour.TermRenderer

	width    int
	height   int
	rejected bool
	quitting bool
}

func New(
	conv *client.Conversation,
	runner *client.TurnRunner,
	vendorCtx assistant.VendorContext,
) *Model {
	input := textinput.New()
	input.Placeholder = "Describe what you want to do, e.g. \"onboard Acme Logistics\""
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71"))

	// markdown rendering is best effort, plain text is an acceptable fallback
	markdown, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)

	return &Model{
		conv:      conv,
		runner:    runner,
		vendorCtx: vendorCtx,
		theme:     DefaultTheme(),
		input:     input,
		spin:      spin,
		markdown:  markdown,
		width:     80,
		height:    24,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

func (m *Model) renderMarkdown(text string) string {
	if m.markdown == nil {
		return text
	}
	out, err := m.markdown.Render(text)
	if err != nil {
		return text
	}
	return out
}
