// Package workspace carries the files seeded into a user's workspace
// directory at onboarding time.
package workspace

import "embed"

//go:embed prompts
var PromptsFs embed.FS

// SystemPrompt returns the assistant's base system prompt.
func SystemPrompt() (string, error) {
	content, err := PromptsFs.ReadFile("prompts/ONBOARDING.md")
	if err != nil {
		return "", err
	}
	return string(content), nil
}
