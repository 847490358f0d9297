// Package store defines the persistence gateways for tasks and users.
// Services depend only on these interfaces; the postgres, redis and memory
// packages under internal/platform provide the implementations, and any of
// them can be selected at startup without changing service code.
package store
