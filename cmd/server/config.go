package main

import (
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
)

// loadAppConfig loads and validates configuration. An empty path searches
// the working directory and $TASKBOARD_CONFIG_DIR for config.yaml.
func loadAppConfig(path string) (*config.Config, error) {
	return config.LoadFile(path)
}

// setupAppLogger creates the JSON logger from the server settings and logs
// the effective configuration. Secrets are never logged.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, err
	}

	l.Info("Configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"store_driver", cfg.Store.Driver)

	return l, nil
}
