package main

import (
	"github.com/spf13/cobra"

	"github.com/rayiskander2406/vendorportal/cmd/chat"
	"github.com/rayiskander2406/vendorportal/cmd/onboard"
	"github.com/rayiskander2406/vendorportal/cmd/serve"
	"github.com/rayiskander2406/vendorportal/pkg/process"
)

var rootCmd = &cobra.Command{
	Use:   "vendorportal",
	Short: "Conversational vendor onboarding assistant.",
}

func init() {
	rootCmd.AddCommand(serve.ServeCmd)
	rootCmd.AddCommand(chat.ChatCmd)
	rootCmd.AddCommand(onboard.OnboardCmd)
}

func main() {
	ctx, cancel, wait := process.RootContext()
	rootCmd.ExecuteContext(ctx)
	cancel()

	wait()
}
