package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

type userDoc struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserStore implements store.UserStore on Redis.
type UserStore struct {
	client goredis.UniversalClient
	keys   keys
	logger *slog.Logger
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a Redis user store writing under keyPrefix.
func NewUserStore(client goredis.UniversalClient, keyPrefix string, logger *slog.Logger) *UserStore {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		client: client,
		keys:   keys{prefix: keyPrefix},
		logger: logger.With(slog.String("component", "redis_user_store")),
	}
}

// FindAll implements store.UserStore.FindAll
func (s *UserStore) FindAll(ctx context.Context) ([]domain.User, error) {
	ids, err := s.client.ZRange(ctx, s.keys.users(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read user index: %w", err)
	}

	users := make([]domain.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	docKeys := make([]string, len(ids))
	for i, id := range ids {
		docKeys[i] = s.keys.user(id)
	}

	values, err := s.client.MGet(ctx, docKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var doc userDoc
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode user %s: %w", ids[i], err)
		}
		users = append(users, domain.User(doc))
	}

	return users, nil
}

// FindByID implements store.UserStore.FindByID
func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	raw, err := s.client.Get(ctx, s.keys.user(id)).Bytes()
	if err != nil {
		mapped := mapError(err, store.ErrUserNotFound)
		if !store.IsNotFoundError(mapped) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to get user",
				slog.String("user_id", id), slog.String("error", err.Error()))
		}
		return nil, mapped
	}

	var doc userDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode user %s: %w", id, err)
	}
	u := domain.User(doc)
	return &u, nil
}

// Save implements store.UserStore.Save
func (s *UserStore) Save(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	data, err := json.Marshal(userDoc(*user))
	if err != nil {
		return fmt.Errorf("failed to encode user %s: %w", user.ID, err)
	}

	docKey := s.keys.user(user.ID)
	txf := func(tx *goredis.Tx) error {
		n, err := tx.Exists(ctx, docKey).Result()
		if err != nil {
			return err
		}

		var seq int64
		if n == 0 {
			if seq, err = tx.Incr(ctx, s.keys.seq()).Result(); err != nil {
				return err
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, docKey, data, 0)
			if n == 0 {
				pipe.ZAdd(ctx, s.keys.users(), goredis.Z{Score: float64(seq), Member: user.ID})
			}
			return nil
		})
		return err
	}

	if err := s.client.Watch(ctx, txf, docKey); err != nil {
		log.Error("failed to save user", slog.String("user_id", user.ID), slog.String("error", err.Error()))
		return mapError(err, store.ErrUserNotFound)
	}

	log.Debug("user saved", slog.String("user_id", user.ID))
	return nil
}

// Delete implements store.UserStore.Delete
// Tasks assigned to the user are not touched.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	docKey := s.keys.user(id)
	txf := func(tx *goredis.Tx) error {
		n, err := tx.Exists(ctx, docKey).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return store.ErrUserNotFound
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Del(ctx, docKey)
			pipe.ZRem(ctx, s.keys.users(), id)
			return nil
		})
		return err
	}

	if err := s.client.Watch(ctx, txf, docKey); err != nil {
		mapped := mapError(err, store.ErrUserNotFound)
		if !store.IsNotFoundError(mapped) {
			log.Error("failed to delete user", slog.String("user_id", id), slog.String("error", err.Error()))
		}
		return mapped
	}

	log.Debug("user deleted", slog.String("user_id", id))
	return nil
}

// ExistsByID implements store.UserStore.ExistsByID
func (s *UserStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, s.keys.user(id)).Result()
	if err != nil {
		return false, mapError(err, store.ErrUserNotFound)
	}
	return n > 0, nil
}
