// Package memory provides in-process implementations of the store gateways.
// Data lives for the lifetime of the process; it backs the default "memory"
// driver and the service and router tests.
package memory
