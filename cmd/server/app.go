package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/memory"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/platform/redis"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// application holds all the dependencies for the task board API.
// Only the resources of the selected store driver are set.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	db          *sql.DB
	redisClient *goredis.Client
	taskStore   store.TaskStore
	userStore   store.UserStore
	taskService service.TaskService
	userService service.UserService
}

// newApplication connects the configured store driver and builds the services on top of it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := app.setupStores(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	app.taskService = service.NewTaskService(app.taskStore, app.userStore, logger)
	app.userService = service.NewUserService(app.userStore, app.taskStore, logger)

	return app, nil
}

// setupStores creates the task and user gateways for cfg.Store.Driver.
func (app *application) setupStores(ctx context.Context) error {
	driver := app.config.Store.Driver

	switch driver {
	case config.DriverPostgres:
		db, err := setupAppDatabase(ctx, app.config.Database, app.logger)
		if err != nil {
			return err
		}
		app.db = db

		if app.config.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, db, app.logger, "up"); err != nil {
				return fmt.Errorf("auto-migration failed: %w", err)
			}
		}

		app.taskStore = postgres.NewPostgresTaskStore(db, app.logger)
		app.userStore = postgres.NewPostgresUserStore(db, app.logger)

	case config.DriverRedis:
		client, err := redis.NewClient(ctx, app.config.Redis)
		if err != nil {
			return err
		}
		app.redisClient = client

		prefix := app.config.Redis.KeyPrefix
		app.taskStore = redis.NewTaskStore(client, prefix, app.logger)
		app.userStore = redis.NewUserStore(client, prefix, app.logger)
		app.logger.Info("Redis connection established", "addr", app.config.Redis.Addr)

	case config.DriverMemory:
		app.taskStore = memory.NewTaskStore(app.logger)
		app.userStore = memory.NewUserStore(app.logger)
		app.logger.Warn("Using in-memory store, data will not survive a restart")

	default:
		return fmt.Errorf("unsupported store driver %q", driver)
	}

	app.logger.Info("Store initialized", "driver", driver)
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("Error closing redis connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
