package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"panic":   zapcore.PanicLevel,
		"fatal":   zapcore.FatalLevel,
		" INFO ":  zapcore.InfoLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestFromContext_FallsBackToGlobal ensures a bare context yields the global logger.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestContextHelpers checks that names and fields attached to a context reach the entries.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())

	ctx = WithName(ctx, "resolver")
	ctx = WithKV(ctx, "package", "example.com/app")

	DebugKV(ctx, "Resolved", "version", "v1.2.3")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "resolver", entries[0].LoggerName)
	require.Equal(t, "Resolved", entries[0].Message)

	fields := entries[0].ContextMap()
	require.Equal(t, "example.com/app", fields["package"])
	require.Equal(t, "v1.2.3", fields["version"])
}

// TestWithRotatingFile verifies that entries are mirrored into the JSON log file.
func TestWithRotatingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "getver.log")

	l := New(zapcore.InfoLevel, WithRotatingFile(FileOptions{Path: path}, zapcore.InfoLevel))
	l.Infow("Serving", "listen_address", ":0")
	_ = l.Sync() //nolint:errcheck // stderr cannot be synced when piped.

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), `"msg":"Serving"`)
	require.Contains(t, string(contents), `"listen_address":":0"`)
}
