// Package logger_test contains tests for the logger package
package logger_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStdout runs fn with os.Stdout redirected and returns what was written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	defer func() { os.Stdout = orig }()
	fn()

	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  slog.Level
		ok    bool
	}{
		{"debug", "debug", slog.LevelDebug, true},
		{"info", "info", slog.LevelInfo, true},
		{"warn", "warn", slog.LevelWarn, true},
		{"error", "error", slog.LevelError, true},
		{"case insensitive", "DEBUG", slog.LevelDebug, true},
		{"whitespace", " Info ", slog.LevelInfo, true},
		{"unknown falls back to info", "verbose", slog.LevelInfo, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := logger.ParseLevel(tc.input)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestSetup(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var l *slog.Logger
	out := captureStdout(t, func() {
		var err error
		l, err = logger.Setup(config.ServerConfig{LogLevel: "warn", Port: 8080})
		require.NoError(t, err)
		l.Info("info message")
		l.Warn("warn message", "key", "value")
	})

	require.NotNil(t, l)
	assert.Same(t, l, slog.Default())
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, `"msg":"warn message"`)
	assert.Contains(t, out, `"key":"value"`)
}

// TestInvalidLogLevelParsing checks that an unknown level yields a working info
// logger and a warning on stderr.
func TestInvalidLogLevelParsing(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	origStderr := os.Stderr
	stderrR, stderrW, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = stderrW

	var l *slog.Logger
	_ = captureStdout(t, func() {
		l, err = logger.Setup(config.ServerConfig{LogLevel: "invalid_level", Port: 8080})
	})

	os.Stderr = origStderr
	require.NoError(t, stderrW.Close())
	var stderrBuf bytes.Buffer
	_, _ = io.Copy(&stderrBuf, stderrR)

	require.NoError(t, err)
	require.NotNil(t, l)
	assert.Contains(t, stderrBuf.String(), "invalid log level configured")
	assert.Contains(t, stderrBuf.String(), "invalid_level")
	assert.False(t, l.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, l.Enabled(context.Background(), slog.LevelInfo))
}

func TestContextLogger(t *testing.T) {
	fallback, fallbackBuf := logger.NewTestLogger(t)
	scoped, scopedBuf := logger.NewTestLogger(t)

	ctx := context.Background()
	logger.FromContextOrDefault(ctx, fallback).Info("to fallback")
	assert.True(t, strings.Contains(fallbackBuf.String(), "to fallback"))

	ctx = logger.WithLogger(ctx, scoped.With("trace_id", "abc"))
	logger.FromContextOrDefault(ctx, fallback).Info("to scoped")
	logger.FromContext(ctx).Info("also scoped")

	entries, err := scopedBuf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "abc", entries[0]["trace_id"])
	assert.NotContains(t, fallbackBuf.String(), "to scoped")
}

func TestFromContextWithoutLogger(t *testing.T) {
	buf := logger.SetupTestLogger(t)

	logger.FromContext(context.Background()).Debug("default logger")
	logger.FromContextOrDefault(context.Background(), nil).Debug("nil fallback")

	assert.Contains(t, buf.String(), "default logger")
	assert.Contains(t, buf.String(), "nil fallback")
}
