// Package config loads application settings from defaults, an optional
// config.yaml, an optional .env file and TASKBOARD_-prefixed environment
// variables, and validates them before the server starts.
package config
