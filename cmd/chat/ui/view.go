package ui

import (
	"fmt"
	"strings"

	"github.com/rayiskander2406/vendorportal/client"
)

func (m *Model) View() string {
	if m.quitting {
		return "bye\n"
	}

	st := m.conv.Snapshot()

	var sb strings.Builder

	for _, msg := range st.Messages {
		if msg.Role == "user" {
			sb.WriteString(m.theme.UserHeader.Render("You"))
			sb.WriteString("\n")
			sb.WriteString(msg.Content)
			sb.WriteString("\n\n")
		} else {
			sb.WriteString(m.theme.AssistantHeader.Render("Assistant"))
			sb.WriteString("\n")
			sb.WriteString(m.renderMarkdown(msg.Content))
			sb.WriteString("\n")
		}
	}

	for _, tc := range st.ToolCalls {
		sb.WriteString(m.renderToolCall(tc))
	}

	if st.IsLoading {
		sb.WriteString(m.spin.View())
		if partial := m.conv.StreamingText(); partial != "" {
			sb.WriteString(" ")
			sb.WriteString(partial)
		} else {
			sb.WriteString(" thinking...")
		}
		sb.WriteString("\n")
	}

	if st.LastError != "" {
		sb.WriteString(m.theme.ErrorText.Render("error: " + st.LastError))
		sb.WriteString("\n")
	}

	if st.ActiveForm != "" {
		sb.WriteString(m.theme.FormBanner.Render(fmt.Sprintf("▤ form: %s", st.ActiveForm)))
		sb.WriteString("\n")
	}

	if len(st.Suggestions) > 0 {
		sb.WriteString(m.theme.Suggestion.Render("suggestions: " + strings.Join(st.Suggestions, " · ")))
		sb.WriteString("\n")
	}

	if m.rejected {
		sb.WriteString(m.theme.Hint.Render("(a turn is already running, wait for it to finish or press esc)"))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.theme.InputBox.Render(m.input.View()))
	sb.WriteString("\n")
	sb.WriteString(m.theme.Hint.Render("enter to send · esc to abort turn · ctrl+c to quit"))

	return sb.String()
}

func (m *Model) renderToolCall(tc client.ToolCallView) string {
	switch tc.Status {
	case client.ToolStatusFailed:
		return m.theme.ToolFailed.Render(fmt.Sprintf("✗ %s: %s", tc.Tool, tc.Error)) + "\n"
	case client.ToolStatusSucceeded:
		return m.theme.ToolLine.Render(fmt.Sprintf("✓ %s", tc.Tool)) + "\n"
	default:
		return m.theme.ToolLine.Render(fmt.Sprintf("… %s (%s)", tc.Tool, tc.Status)) + "\n"
	}
}
