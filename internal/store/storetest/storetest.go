// Package storetest holds behaviour tests shared by every store.TaskStore and
// store.UserStore implementation.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns empty stores. It is called once per subtest.
type Factory func(t *testing.T) (store.TaskStore, store.UserStore)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTask(t *testing.T, title string, status domain.TaskStatus, assignee string, offset time.Duration) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(title, title+" description", string(status), assignee, baseTime.Add(offset))
	require.NoError(t, err)
	return task
}

func ids(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}

// RunTaskStoreTests exercises the store.TaskStore contract.
func RunTaskStoreTests(t *testing.T, newStores Factory) {
	t.Run("save assigns an ID and round trips", func(t *testing.T) {
		tasks, _ := newStores(t)
		ctx := context.Background()

		task := newTask(t, "Buy milk", domain.TaskStatusTodo, "", 0)
		require.NoError(t, tasks.Save(ctx, task))
		require.NotEmpty(t, task.ID)

		got, err := tasks.FindByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
		assert.Equal(t, "Buy milk", got.Title)
		assert.Equal(t, "Buy milk description", got.Description)
		assert.Equal(t, domain.TaskStatusTodo, got.Status)
		assert.Empty(t, got.AssigneeID)
		assert.True(t, baseTime.Equal(got.CreationDate), "creation date %v", got.CreationDate)
	})

	t.Run("save keeps a caller supplied ID", func(t *testing.T) {
		tasks, _ := newStores(t)
		ctx := context.Background()

		task := newTask(t, "Seeded", domain.TaskStatusDone, "u1", 0)
		task.ID = "t-seeded"
		require.NoError(t, tasks.Save(ctx, task))

		got, err := tasks.FindByID(ctx, "t-seeded")
		require.NoError(t, err)
		assert.Equal(t, "u1", got.AssigneeID)
	})

	t.Run("save replaces fields but never the creation date", func(t *testing.T) {
		tasks, _ := newStores(t)
		ctx := context.Background()

		task := newTask(t, "Report", domain.TaskStatusTodo, "u1", 0)
		require.NoError(t, tasks.Save(ctx, task))

		update := task.Clone()
		update.Title = "Report v2"
		update.Status = domain.TaskStatusInProgress
		update.AssigneeID = ""
		update.CreationDate = baseTime.Add(48 * time.Hour)
		require.NoError(t, tasks.Save(ctx, update))
		assert.True(t, baseTime.Equal(update.CreationDate), "stored creation date is written back")

		got, err := tasks.FindByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "Report v2", got.Title)
		assert.Equal(t, domain.TaskStatusInProgress, got.Status)
		assert.Empty(t, got.AssigneeID)
		assert.True(t, baseTime.Equal(got.CreationDate))

		all, err := tasks.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("save rejects an invalid task", func(t *testing.T) {
		tasks, _ := newStores(t)

		err := tasks.Save(context.Background(), &domain.Task{Title: "  ", Status: domain.TaskStatusTodo})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("find by unknown ID", func(t *testing.T) {
		tasks, _ := newStores(t)

		got, err := tasks.FindByID(context.Background(), "missing")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("find all returns tasks oldest first", func(t *testing.T) {
		tasks, _ := newStores(t)
		ctx := context.Background()

		empty, err := tasks.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		var want []string
		for i, title := range []string{"first", "second", "third"} {
			task := newTask(t, title, domain.TaskStatusTodo, "", time.Duration(i)*time.Minute)
			require.NoError(t, tasks.Save(ctx, task))
			want = append(want, task.ID)
		}

		all, err := tasks.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, ids(all))
	})

	t.Run("find by status and assignee", func(t *testing.T) {
		tasks, _ := newStores(t)
		ctx := context.Background()

		a := newTask(t, "a", domain.TaskStatusTodo, "u1", 0)
		b := newTask(t, "b", domain.TaskStatusDone, "u1", time.Minute)
		c := newTask(t, "c", domain.TaskStatusTodo, "u2", 2*time.Minute)
		for _, task := range []*domain.Task{a, b, c} {
			require.NoError(t, tasks.Save(ctx, task))
		}

		todo, err := tasks.FindByStatus(ctx, domain.TaskStatusTodo)
		require.NoError(t, err)
		assert.Equal(t, []string{a.ID, c.ID}, ids(todo))

		inProgress, err := tasks.FindByStatus(ctx, domain.TaskStatusInProgress)
		require.NoError(t, err)
		assert.Empty(t, inProgress)

		mine, err := tasks.FindByAssigneeID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{a.ID, b.ID}, ids(mine))

		none, err := tasks.FindByAssigneeID(ctx, "nobody")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)

		// moving a task must update both lookups
		a.AssigneeID = "u2"
		a.Status = domain.TaskStatusDone
		require.NoError(t, tasks.Save(ctx, a))

		mine, err = tasks.FindByAssigneeID(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{b.ID}, ids(mine))

		theirs, err := tasks.FindByAssigneeID(ctx, "u2")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{a.ID, c.ID}, ids(theirs))

		todo, err = tasks.FindByStatus(ctx, domain.TaskStatusTodo)
		require.NoError(t, err)
		assert.Equal(t, []string{c.ID}, ids(todo))
	})

	t.Run("delete and exists", func(t *testing.T) {
		tasks, _ := newStores(t)
		ctx := context.Background()

		task := newTask(t, "temp", domain.TaskStatusTodo, "u1", 0)
		require.NoError(t, tasks.Save(ctx, task))

		ok, err := tasks.ExistsByID(ctx, task.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, tasks.Delete(ctx, task.ID))

		ok, err = tasks.ExistsByID(ctx, task.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = tasks.FindByID(ctx, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		mine, err := tasks.FindByAssigneeID(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, mine)

		assert.ErrorIs(t, tasks.Delete(ctx, task.ID), store.ErrTaskNotFound)
	})

	t.Run("returned tasks are copies", func(t *testing.T) {
		tasks, _ := newStores(t)
		ctx := context.Background()

		task := newTask(t, "original", domain.TaskStatusTodo, "", 0)
		require.NoError(t, tasks.Save(ctx, task))
		task.Title = "changed after save"

		got, err := tasks.FindByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", got.Title)

		got.Title = "changed after load"
		again, err := tasks.FindByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", again.Title)
	})
}

// RunUserStoreTests exercises the store.UserStore contract.
func RunUserStoreTests(t *testing.T, newStores Factory) {
	t.Run("save assigns an ID and round trips", func(t *testing.T) {
		_, users := newStores(t)
		ctx := context.Background()

		user := domain.NewUser("Ada Lovelace", "ada@example.com")
		require.NoError(t, users.Save(ctx, user))
		require.NotEmpty(t, user.ID)

		got, err := users.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, *user, *got)
	})

	t.Run("save replaces an existing user", func(t *testing.T) {
		_, users := newStores(t)
		ctx := context.Background()

		user := domain.NewUser("Ada", "ada@example.com")
		require.NoError(t, users.Save(ctx, user))

		user.Name = "Ada Lovelace"
		require.NoError(t, users.Save(ctx, user))

		all, err := users.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Ada Lovelace", all[0].Name)
	})

	t.Run("find all", func(t *testing.T) {
		_, users := newStores(t)
		ctx := context.Background()

		empty, err := users.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		var want []string
		for _, name := range []string{"Ada", "Grace", "Linus"} {
			u := domain.NewUser(name, "")
			require.NoError(t, users.Save(ctx, u))
			want = append(want, u.ID)
		}

		all, err := users.FindAll(ctx)
		require.NoError(t, err)
		got := make([]string, 0, len(all))
		for _, u := range all {
			got = append(got, u.ID)
		}
		assert.ElementsMatch(t, want, got)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, users := newStores(t)
		ctx := context.Background()

		got, err := users.FindByID(ctx, "missing")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, store.ErrUserNotFound)

		ok, err := users.ExistsByID(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)

		assert.ErrorIs(t, users.Delete(ctx, "missing"), store.ErrUserNotFound)
	})

	t.Run("delete leaves assigned tasks untouched", func(t *testing.T) {
		tasks, users := newStores(t)
		ctx := context.Background()

		user := domain.NewUser("Ada", "ada@example.com")
		require.NoError(t, users.Save(ctx, user))
		task := newTask(t, "Report", domain.TaskStatusTodo, user.ID, 0)
		require.NoError(t, tasks.Save(ctx, task))

		ok, err := users.ExistsByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		require.NoError(t, users.Delete(ctx, user.ID))

		_, err = users.FindByID(ctx, user.ID)
		assert.ErrorIs(t, err, store.ErrUserNotFound)

		got, err := tasks.FindByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.AssigneeID)
	})
}
