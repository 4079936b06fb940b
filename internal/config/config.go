// Package config provides configuration loading for apexforge.
//
// Configuration is loaded from a YAML file with environment variable
// overrides. All services (daemon, worker, CLI) share the same schema.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the complete apexforge configuration.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Temporal      TemporalConfig      `koanf:"temporal"`
	NATS          NATSConfig          `koanf:"nats"`
	LLM           LLMConfig           `koanf:"llm"`
	Output        OutputConfig        `koanf:"output"`
	Observability ObservabilityConfig `koanf:"observability"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string   `koanf:"host"`
	Port            int      `koanf:"port"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
}

// TemporalConfig holds workflow engine connection settings.
type TemporalConfig struct {
	HostPort  string `koanf:"host_port"`
	Namespace string `koanf:"namespace"`
	TaskQueue string `koanf:"task_queue"`
}

// NATSConfig holds progress event bus settings.
type NATSConfig struct {
	URL string `koanf:"url"`
}

// LLMConfig holds language model client settings.
//
// BaseURL accepts any OpenAI-compatible endpoint, so local gateways
// and proxies work without code changes.
type LLMConfig struct {
	BaseURL     string  `koanf:"base_url"`
	Model       string  `koanf:"model"`
	APIKey      Secret  `koanf:"api_key"`
	Temperature float64 `koanf:"temperature"`
	MaxTokens   int     `koanf:"max_tokens"`
}

// OutputConfig controls artifact persistence on the daemon side.
type OutputConfig struct {
	Dir           string `koanf:"dir"`
	SaveArtifacts bool   `koanf:"save_artifacts"`
}

// ObservabilityConfig holds OpenTelemetry configuration.
type ObservabilityConfig struct {
	EnableTelemetry bool   `koanf:"enable_telemetry"`
	ServiceName     string `koanf:"service_name"`
	ServiceVersion  string `koanf:"service_version"`
	Endpoint        string `koanf:"endpoint"`
	Insecure        bool   `koanf:"insecure"`
}

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8820,
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Temporal: TemporalConfig{
			HostPort:  "localhost:7233",
			Namespace: "default",
			TaskQueue: "apex-pipeline",
		},
		NATS: NATSConfig{
			URL: "nats://localhost:4222",
		},
		LLM: LLMConfig{
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4o",
			Temperature: 0.2,
			MaxTokens:   4096,
		},
		Output: OutputConfig{
			Dir:           "",
			SaveArtifacts: false,
		},
		Observability: ObservabilityConfig{
			EnableTelemetry: false,
			ServiceName:     "apexforge",
			ServiceVersion:  "dev",
			Endpoint:        "localhost:4317",
			Insecure:        true,
		},
	}
}

// Validate validates the configuration.
//
// Returns an error if:
//   - Server port is not between 1 and 65535
//   - Shutdown timeout is not positive
//   - Temporal host or task queue is empty
//   - LLM model or base URL is empty
//   - LLM temperature is outside [0, 2]
//   - Service name is empty (when telemetry is enabled)
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 1-65535)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout.Duration() <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	if c.Temporal.HostPort == "" {
		return errors.New("temporal host_port is required")
	}
	if c.Temporal.TaskQueue == "" {
		return errors.New("temporal task_queue is required")
	}
	if c.NATS.URL == "" {
		return errors.New("nats url is required")
	}
	if c.LLM.BaseURL == "" {
		return errors.New("llm base_url is required")
	}
	if c.LLM.Model == "" {
		return errors.New("llm model is required")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm temperature must be in [0, 2], got %v", c.LLM.Temperature)
	}
	if c.LLM.MaxTokens <= 0 {
		return errors.New("llm max_tokens must be positive")
	}
	if c.Observability.EnableTelemetry && c.Observability.ServiceName == "" {
		return errors.New("service name required when telemetry is enabled")
	}
	return nil
}
