package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	userConfigDir   = ".config/chanctl"
	appConfigName   = "chanctl.yaml"
	connectionsDir  = "connections"
	cacheDirName    = "cache"
	undoDirName     = "undo"
	defaultPageSize = 100
	defaultUserID   = "1"
)

// DefaultConfigPathOrPanic returns ~/.config/chanctl. The home directory
// being undiscoverable leaves no sane place to read from or write to.
func DefaultConfigPathOrPanic() string {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Errorf("could not determine user config directory: %w", err))
	}
	return filepath.Join(home, userConfigDir)
}

// DefaultAppConfig is the configuration used when chanctl.yaml is absent;
// a present file overlays these values.
func DefaultAppConfig(configDir string) AppConfig {
	return AppConfig{
		APISettings: APISettings{
			MaxConcurrentRequests: 5,
			RequestTimeoutSeconds: 60,
			RequestIntervalMS:     100,
			PageSizes: map[string]int{
				APITypeNewAPI: defaultPageSize,
				APITypeVoAPI:  defaultPageSize,
			},
		},
		Undo: UndoSettings{
			Dir: filepath.Join(configDir, undoDirName),
		},
		Logging: LoggingSettings{
			Level: "info",
		},
	}
}
