package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	workspaceDirName = ".vendorportal"
	configFileName   = "config.yaml"
)

var (
	workspaceDir     string
	workspaceDirOnce sync.Once

	conf     Config
	confOnce sync.Once
)

// MustInit loads the workspace config, panicking on failure. Commands
// call it once before doing anything else.
func MustInit() {
	confOnce.Do(func() {
		var err error
		conf, err = LoadConfig()
		if err != nil {
			panic(err)
		}
	})
}

func Get() Config {
	return conf
}

func GetWorkspaceDir() string {
	workspaceDirOnce.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}
		workspaceDir = filepath.Join(home, workspaceDirName)
	})

	return workspaceDir
}

func GetWorkspaceConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, workspaceDirName, configFileName), nil
}

func GetSessionDir() string {
	return filepath.Join(GetWorkspaceDir(), "sessions")
}
