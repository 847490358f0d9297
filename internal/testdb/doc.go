// Package testdb provides helpers for PostgreSQL integration tests.
//
// Tests obtain a migrated connection with GetTestDB, which skips the test when
// no database URL is configured, and isolate their writes with WithTx, which
// runs the test body inside a transaction that is always rolled back:
//
//	db := testdb.GetTestDB(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//		tasks := postgres.NewPostgresTaskStore(tx, nil)
//		// ...
//	})
package testdb
