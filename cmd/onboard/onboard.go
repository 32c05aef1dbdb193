package onboard

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rayiskander2406/vendorportal/config"
)

var OnboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize vendorportal configuration.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runOnboard(); err != nil {
			return fmt.Errorf("failed to run onboard: %w", err)
		}
		return nil
	},
}

func bootstrapConfig(configPath string) error {
	// ask before clobbering an existing config
	doInit := true
	if _, err := os.Stat(configPath); !os.IsNotExist(err) {
		fmt.Printf("Config file already exists at %s, do you want to overwrite it? (y/n): ", configPath)
		var overwrite string
		fmt.Scanln(&overwrite)
		if overwrite != "y" && overwrite != "Y" {
			doInit = false
		}
	}

	if !doInit {
		return nil
	}

	cfg := config.BootstrapConfig()
	output, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, output, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Configuration written to %s\n", configPath)
	fmt.Println("Set your provider api_key before starting the server.")

	return nil
}

func runOnboard() error {
	configPath, err := config.GetWorkspaceConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if err := os.MkdirAll(config.GetWorkspaceDir(), 0755); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}
	if err := os.MkdirAll(config.GetSessionDir(), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	return bootstrapConfig(configPath)
}
