package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Port, cfg.Server.Port)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9100
  shutdown_timeout: 30s
temporal:
  task_queue: custom-queue
llm:
  model: gpt-4o-mini
  api_key: sk-test-123
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout.Duration())
	assert.Equal(t, "custom-queue", cfg.Temporal.TaskQueue)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "sk-test-123", cfg.LLM.APIKey.Value())

	// Untouched sections keep their defaults.
	assert.Equal(t, "localhost:7233", cfg.Temporal.HostPort)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9100\n"), 0o600))

	t.Setenv("SERVER_PORT", "9200")
	t.Setenv("LLM_API_KEY", "sk-env-key")
	t.Setenv("TEMPORAL_HOST_PORT", "temporal.internal:7233")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.Server.Port)
	assert.Equal(t, "sk-env-key", cfg.LLM.APIKey.Value())
	assert.Equal(t, "temporal.internal:7233", cfg.Temporal.HostPort)
}

func TestLoadRejectsOversizedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	big := make([]byte, maxConfigFileSize+1)
	require.NoError(t, os.WriteFile(path, big, 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file too large")
}

func TestEnvTransform(t *testing.T) {
	assert.Equal(t, "server.port", envTransform("SERVER_PORT"))
	assert.Equal(t, "temporal.task_queue", envTransform("TEMPORAL_TASK_QUEUE"))
	assert.Equal(t, "llm.api_key", envTransform("LLM_API_KEY"))
	assert.Equal(t, "path", envTransform("PATH"))
}
