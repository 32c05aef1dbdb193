package client

import (
	"regexp"
	"strings"
)

// Model output signals UI actions through sentinel substrings. This
// file is the only place that syntax is allowed to exist; everything
// past ExtractMarkers sees typed values.
var (
	showFormRe    = regexp.MustCompile(`\[SHOW_FORM:([A-Za-z0-9_-]+)\]`)
	suggestionsRe = regexp.MustCompile(`(?s)\[SUGGESTIONS\](.*?)\[/SUGGESTIONS\]`)
)

type Markers struct {
	// Form is the form named by the last form marker; HasForm
	// distinguishes "no marker" from an empty name.
	Form    string
	HasForm bool

	// Suggestions from the last suggestions block. An empty block
	// yields an empty, non-nil list.
	Suggestions    []string
	HasSuggestions bool
}

// ExtractMarkers scans the final accumulated turn text once, strips
// every marker occurrence, and reports the last occurrence of each
// kind. It must not run per-delta, a marker split across two content
// frames would be missed.
func ExtractMarkers(text string) (clean string, m Markers) {
	if matches := showFormRe.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		m.Form = matches[len(matches)-1][1]
		m.HasForm = true
	}

	if matches := suggestionsRe.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		m.HasSuggestions = true
		m.Suggestions = parseSuggestionPayload(matches[len(matches)-1][1])
	}

	clean = showFormRe.ReplaceAllString(text, "")
	clean = suggestionsRe.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(clean)

	return clean, m
}

func parseSuggestionPayload(payload string) []string {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return []string{}
	}

	parts := strings.Split(payload, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
