package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type ProviderConfig struct {
	ApiKey       string `yaml:"api_key"`
	BaseURL      string `yaml:"base_url"`
	DefaultModel string `yaml:"default_model"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// MaxConcurrentTurns caps simultaneously streaming conversations;
	// requests beyond it are rejected with 503 instead of queueing.
	MaxConcurrentTurns int `yaml:"max_concurrent_turns"`
	// TurnTimeout bounds a whole assistant turn including tool rounds.
	TurnTimeout time.Duration `yaml:"turn_timeout"`
}

type SessionConfig struct {
	// Retention is how long an idle conversation survives before the
	// sweep drops it.
	Retention time.Duration `yaml:"retention"`
	// SweepSpec is a cron expression for the retention sweep.
	SweepSpec string `yaml:"sweep_spec"`
}

// The configuration for the vendorportal assistant.
type Config struct {
	DefaultProvider string                    `yaml:"default_provider"`
	Providers       map[string]ProviderConfig `yaml:"providers"`
	Server          ServerConfig              `yaml:"server"`
	Session         SessionConfig             `yaml:"session"`
}

func BootstrapConfig() Config {
	return Config{
		DefaultProvider: "anthropic",
		Providers: map[string]ProviderConfig{
			"anthropic": {
				ApiKey:       "",
				DefaultModel: "claude-sonnet-4-20250514",
			},
			"openai": {
				ApiKey:       "",
				BaseURL:      "https://api.openai.com/v1",
				DefaultModel: "gpt-4o-mini",
			},
		},
		Server: ServerConfig{
			Addr:               ":8787",
			MaxConcurrentTurns: 32,
			TurnTimeout:        2 * time.Minute,
		},
		Session: SessionConfig{
			Retention: 24 * time.Hour,
			SweepSpec: "@every 15m",
		},
	}
}

func LoadConfig() (c Config, err error) {
	c = BootstrapConfig()
	configPath, err := GetWorkspaceConfigPath()
	if err != nil {
		err = fmt.Errorf("failed to get config path: %w", err)
		return
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		err = fmt.Errorf("failed to read config file: %w", err)
		return
	}

	err = yaml.Unmarshal(content, &c)
	if err != nil {
		err = fmt.Errorf("failed to unmarshal config file: %w", err)
		return
	}

	return
}
