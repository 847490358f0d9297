// Package main is the entry point for the task board API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
)

// main is the entry point for the task board API server.
// It loads configuration, initializes the logger, wires the selected store
// driver and serves HTTP until it receives SIGINT or SIGTERM.
//
// With -migrate it runs the given migration command against the configured
// database and exits instead.
func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default: search for config.yaml)")
	migrateCmd := flag.String("migrate", "",
		"run a migration command and exit ("+strings.Join(postgres.MigrateCommands, "|")+")")
	flag.Parse()

	if err := run(context.Background(), *configPath, *migrateCmd); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

// run holds main's logic so that failures are returned rather than exiting.
func run(ctx context.Context, configPath, migrateCmd string) error {
	cfg, err := loadAppConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	if migrateCmd != "" {
		return runMigrations(ctx, cfg, logger, migrateCmd, flag.Args()...)
	}

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
