package store_test

import (
	"errors"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
)

// TestErrorDefinitions ensures that the entity-specific errors are distinct
// but share the generic not-found sentinel.
func TestErrorDefinitions(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.Is(store.ErrTaskNotFound, store.ErrNotFound))
	assert.True(t, errors.Is(store.ErrUserNotFound, store.ErrNotFound))
	assert.False(t, errors.Is(store.ErrTaskNotFound, store.ErrUserNotFound))
	assert.False(t, errors.Is(store.ErrConflict, store.ErrDuplicate))

	assert.Equal(t, "entity not found: task", store.ErrTaskNotFound.Error())
	assert.Equal(t, "entity not found: user", store.ErrUserNotFound.Error())
}
