package serve

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rayiskander2406/vendorportal/assistant"
	"github.com/rayiskander2406/vendorportal/config"
	"github.com/rayiskander2406/vendorportal/llm/factory"
	"github.com/rayiskander2406/vendorportal/pkg/safe"
	"github.com/rayiskander2406/vendorportal/server"
	"github.com/rayiskander2406/vendorportal/session"
	"github.com/rayiskander2406/vendorportal/tool"
	"github.com/rayiskander2406/vendorportal/tools"
	"github.com/rayiskander2406/vendorportal/workspace"
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the assistant HTTP server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		config.MustInit()
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	cfg := config.Get()

	providerCfg, ok := cfg.Providers[cfg.DefaultProvider]
	if !ok {
		return fmt.Errorf("provider %q not configured, run `vendorportal onboard` first", cfg.DefaultProvider)
	}

	model, err := factory.NewLLM(
		factory.WithProvider(factory.Provider(cfg.DefaultProvider)),
		factory.WithAPIKey(providerCfg.ApiKey),
		factory.WithBaseURL(providerCfg.BaseURL),
	)
	if err != nil {
		return fmt.Errorf("create llm: %w", err)
	}

	systemPrompt, err := workspace.SystemPrompt()
	if err != nil {
		return fmt.Errorf("load system prompt: %w", err)
	}

	registry := tool.NewRegistry()
	tools.RegisterAll(registry, tools.NewDirectory())

	asst := assistant.New(model, providerCfg.DefaultModel, systemPrompt, registry)

	store := session.NewStore(config.GetSessionDir(), cfg.Session.Retention)
	if err := store.StartSweeper(cfg.Session.SweepSpec); err != nil {
		return err
	}

	srv, err := server.New(cfg.Server, asst, store, registry)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	safe.Go(func() {
		errCh <- srv.Run(ctx)
	})

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}
