package assistant

import (
	"fmt"
	"strings"

	"github.com/rayiskander2406/vendorportal/tool"
)

// formatToolResult renders a tool outcome as the tool-role message fed
// back to the model, with display instructions appended as plain text.
// When the tool requested a form, the marker is spelled out for the
// model to echo verbatim in its reply.
func formatToolResult(toolName string, res *tool.Result) string {
	var sb strings.Builder

	if res.Success {
		fmt.Fprintf(&sb, "Tool %s succeeded with result: %s\n", toolName, res.Data)
		sb.WriteString("Present this result to the user conversationally; do not dump raw JSON.\n")
	} else {
		fmt.Fprintf(&sb, "Tool %s failed: %s\n", toolName, res.Err)
		sb.WriteString("Explain the failure to the user in plain language and suggest what to try next.\n")
	}

	if res.ShowForm != "" {
		fmt.Fprintf(&sb, "Include the marker [SHOW_FORM:%s] verbatim in your reply so the client opens the form.\n", res.ShowForm)
	}

	sb.WriteString("End your reply with a [SUGGESTIONS]option one|option two[/SUGGESTIONS] block offering up to three short next steps.")

	return sb.String()
}
