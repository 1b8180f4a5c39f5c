package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestFromContext_FallsBackToGlobal verifies a bare context yields the global logger.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestWithNameAndKV ensures names and fields added to the context show up on entries.
func TestWithNameAndKV(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)

	ctx := ToContext(context.Background(), zap.New(core).Sugar())
	ctx = WithName(ctx, "light")
	ctx = WithKV(ctx, "light_id", "abc")

	InfoKV(ctx, "Phase changed", "phase", "green")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "light", entries[0].LoggerName)
	require.Equal(t, "Phase changed", entries[0].Message)

	fields := entries[0].ContextMap()
	require.Equal(t, "abc", fields["light_id"])
	require.Equal(t, "green", fields["phase"])
}
