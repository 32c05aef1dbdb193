package assistant

import (
	"fmt"
	"sort"
	"strings"
)

// VendorContext is the opaque per-conversation context the client
// submits with each turn. It is folded into the system instructions,
// never interpreted by the orchestrator itself.
type VendorContext map[string]any

func (a *Assistant) renderSystemPrompt(vendorCtx VendorContext) string {
	var sb strings.Builder
	sb.WriteString(a.systemPrompt)

	if len(vendorCtx) > 0 {
		sb.WriteString("\n\n## Current vendor context\n")
		keys := make([]string, 0, len(vendorCtx))
		for k := range vendorCtx {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "- %s: %v\n", k, vendorCtx[k])
		}
	}

	return sb.String()
}
