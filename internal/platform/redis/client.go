package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// NewClient creates a client from configuration and verifies the connection.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// keys builds every key used by the stores under one prefix.
type keys struct {
	prefix string
}

func (k keys) seq() string { return k.prefix + "seq" }
func (k keys) task(id string) string { return k.prefix + "task:" + id }
func (k keys) tasks() string { return k.prefix + "tasks" }
func (k keys) tasksByStatus(s string) string { return k.prefix + "tasks:status:" + s }
func (k keys) tasksByAssignee(u string) string { return k.prefix + "tasks:assignee:" + u }
func (k keys) user(id string) string { return k.prefix + "user:" + id }
func (k keys) users() string { return k.prefix + "users" }

// mapError translates go-redis errors into store errors.
func mapError(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, goredis.Nil):
		return notFound
	case errors.Is(err, goredis.TxFailedErr):
		return fmt.Errorf("%w: %v", store.ErrConflict, err)
	}
	return err
}
