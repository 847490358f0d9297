//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/phrazzld/taskboard-api/internal/store/storetest"
	"github.com/phrazzld/taskboard-api/internal/testdb"
	"github.com/stretchr/testify/require"
)

func newTxStores(t *testing.T) (store.TaskStore, store.UserStore) {
	t.Helper()

	db := testdb.GetTestDB(t)
	tx := testdb.BeginTx(t, db)

	// Start from empty tables; the deletes are rolled back with the rest of the test.
	for _, stmt := range []string{`DELETE FROM tasks`, `DELETE FROM users`} {
		_, err := tx.ExecContext(context.Background(), stmt)
		require.NoError(t, err)
	}

	return postgres.NewPostgresTaskStore(tx, nil), postgres.NewPostgresUserStore(tx, nil)
}

func TestPostgresTaskStore(t *testing.T) {
	storetest.RunTaskStoreTests(t, newTxStores)
}

func TestPostgresUserStore(t *testing.T) {
	storetest.RunUserStoreTests(t, newTxStores)
}

func TestPostgresTaskStore_CheckConstraint(t *testing.T) {
	db := testdb.GetTestDB(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		_, err := tx.ExecContext(context.Background(),
			`INSERT INTO tasks (id, title, description, creation_date, status)
			 VALUES ('t1', 'x', '', now(), 'OPEN')`)
		require.Error(t, err)
		require.True(t, postgres.IsCheckConstraintViolation(err))
		require.ErrorIs(t, postgres.MapError(err, store.ErrTaskNotFound), store.ErrInvalidEntity)
	})
}

func TestMigrate_StatusAndVersion(t *testing.T) {
	db := testdb.GetTestDB(t)

	require.NoError(t, postgres.Migrate(context.Background(), db, nil, "status"))
	require.NoError(t, postgres.Migrate(context.Background(), db, nil, "version"))
	require.Error(t, postgres.Migrate(context.Background(), db, nil, "create"))
}
