package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	cfg := NewDefaultConfig()
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	require.NotNil(t, logger)

	// Should not panic with a plain context.
	logger.Info(context.Background(), "hello")
}

func TestNewLoggerInvalidFormat(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Format = "xml"

	_, err := NewLogger(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format must be")
}

func TestConsoleFormat(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Format = "console"
	cfg.Level = zapcore.DebugLevel

	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	logger.Debug(context.Background(), "debug line")
}

func TestContextFields(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ContextFields(ctx))

	ctx = WithProjectID(ctx, "project-123")
	ctx = WithPhase(ctx, "database_design")
	ctx = WithAgent(ctx, "Database Designer")

	fields := ContextFields(ctx)
	assert.Len(t, fields, 3)

	assert.Equal(t, "project-123", ProjectIDFromContext(ctx))
	assert.Equal(t, "database_design", PhaseFromContext(ctx))
	assert.Equal(t, "Database Designer", AgentFromContext(ctx))
}

func TestLoggerFromContext(t *testing.T) {
	ctx := context.Background()

	// Missing logger returns a usable nop.
	logger := FromContext(ctx)
	require.NotNil(t, logger)
	logger.Info(ctx, "goes nowhere")

	stored := NewNop().Named("stored")
	ctx = WithLogger(ctx, stored)
	assert.Same(t, stored, FromContext(ctx))
}

func TestNamedAndWith(t *testing.T) {
	logger := NewNop()
	child := logger.Named("pipeline")
	require.NotNil(t, child)
	assert.NotSame(t, logger, child)
}
