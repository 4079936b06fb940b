package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexforge/apexforge/internal/config"
)

func TestNewDisabled(t *testing.T) {
	tel, err := New(context.Background(), config.ObservabilityConfig{EnableTelemetry: false})
	require.NoError(t, err)
	assert.False(t, tel.IsEnabled())
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestNewEnabled(t *testing.T) {
	// The gRPC exporter connects lazily, so construction succeeds
	// without a collector listening.
	tel, err := New(context.Background(), config.ObservabilityConfig{
		EnableTelemetry: true,
		ServiceName:     "apexforge-test",
		ServiceVersion:  "test",
		Endpoint:        "localhost:4317",
		Insecure:        true,
	})
	require.NoError(t, err)
	assert.True(t, tel.IsEnabled())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Shutdown with a canceled context returns promptly; the flush
	// failure is reported, not hung on.
	_ = tel.Shutdown(ctx)
}
