package ui

import "github.com/charmbracelet/lipgloss"

// Theme contains all UI styling.
type Theme struct {
	UserHeader      lipgloss.Style
	AssistantHeader lipgloss.Style
	ToolLine        lipgloss.Style
	ToolFailed      lipgloss.Style
	ErrorText       lipgloss.Style
	Suggestion      lipgloss.Style
	FormBanner      lipgloss.Style
	InputBox        lipgloss.Style
	Hint            lipgloss.Style
}

func DefaultTheme() *Theme {
	return &Theme{
		UserHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3498DB")),
		AssistantHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2ECC71")),
		ToolLine: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95A5A6")),
		ToolFailed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E74C3C")),
		ErrorText: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#E74C3C")),
		Suggestion: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F1C40F")),
		FormBanner: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#9B59B6")),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7F8C8D")).
			Padding(0, 1),
		Hint: lipgloss.NewStyle().
			Faint(true),
	}
}
