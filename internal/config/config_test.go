package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8820, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout.Duration())
	assert.Equal(t, "localhost:7233", cfg.Temporal.HostPort)
	assert.Equal(t, "apex-pipeline", cfg.Temporal.TaskQueue)
	assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 0.001)
	assert.False(t, cfg.LLM.APIKey.IsSet())

	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "port too low",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "port too high",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "invalid server port",
		},
		{
			name:    "zero shutdown timeout",
			mutate:  func(c *Config) { c.Server.ShutdownTimeout = 0 },
			wantErr: "shutdown timeout must be positive",
		},
		{
			name:    "missing temporal host",
			mutate:  func(c *Config) { c.Temporal.HostPort = "" },
			wantErr: "temporal host_port is required",
		},
		{
			name:    "missing task queue",
			mutate:  func(c *Config) { c.Temporal.TaskQueue = "" },
			wantErr: "temporal task_queue is required",
		},
		{
			name:    "missing nats url",
			mutate:  func(c *Config) { c.NATS.URL = "" },
			wantErr: "nats url is required",
		},
		{
			name:    "missing llm model",
			mutate:  func(c *Config) { c.LLM.Model = "" },
			wantErr: "llm model is required",
		},
		{
			name:    "temperature out of range",
			mutate:  func(c *Config) { c.LLM.Temperature = 2.5 },
			wantErr: "llm temperature must be in [0, 2]",
		},
		{
			name:    "non-positive max tokens",
			mutate:  func(c *Config) { c.LLM.MaxTokens = 0 },
			wantErr: "llm max_tokens must be positive",
		},
		{
			name: "telemetry without service name",
			mutate: func(c *Config) {
				c.Observability.EnableTelemetry = true
				c.Observability.ServiceName = ""
			},
			wantErr: "service name required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
