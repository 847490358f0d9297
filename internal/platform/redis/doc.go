// Package redis implements the store gateways on top of Redis.
//
// Each entity is a JSON document under <prefix>task:<id> or <prefix>user:<id>.
// Sorted sets scored by a shared sequence (<prefix>seq) keep insertion order
// for listing and back the status and assignee lookups. Writes run under
// WATCH/MULTI; losing a race returns store.ErrConflict rather than retrying.
package redis
