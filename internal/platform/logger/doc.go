// Package logger provides structured logging functionality for the application.
//
// It builds JSON loggers on top of log/slog, parses configured log levels and
// carries request-scoped loggers through context.Context.
package logger
