package store

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB used by SQL-backed stores.
// *sql.Tx satisfies it as well, which lets tests run stores inside a
// rolled-back transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
