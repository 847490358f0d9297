// Package postgres implements the store.TaskStore and store.UserStore
// gateways on PostgreSQL through database/sql and the pgx driver, and ships
// the goose migrations that create their schema.
package postgres
