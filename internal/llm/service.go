// Package llm provides chat completion via langchaingo.
//
// This package wraps langchaingo's OpenAI-compatible client so the
// pipeline agents can talk to OpenAI or any compatible endpoint
// (Ollama, vLLM, LiteLLM proxies) through one interface.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var (
	// ErrEmptyPrompt indicates an empty user prompt
	ErrEmptyPrompt = errors.New("empty prompt")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyResponse indicates the model returned no choices
	ErrEmptyResponse = errors.New("empty model response")
)

// Client generates a completion for a system/user prompt pair.
// A zero temperature means the service default. Implementations must
// respect context cancellation.
type Client interface {
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
}

// Config holds configuration for the completion service.
type Config struct {
	// BaseURL is the base URL for the chat completion API.
	BaseURL string

	// Model is the chat model to use, e.g. gpt-4o.
	Model string

	// APIKey is the API key (optional for local endpoints).
	APIKey string

	// Temperature controls sampling randomness.
	Temperature float64

	// MaxTokens caps the completion length. Zero means provider default.
	MaxTokens int
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base URL required", ErrInvalidConfig)
	}
	if c.Model == "" {
		return fmt.Errorf("%w: model required", ErrInvalidConfig)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("%w: temperature must be between 0 and 2", ErrInvalidConfig)
	}
	return nil
}

// Service is the langchaingo-backed Client used in production.
type Service struct {
	model  llms.Model
	config Config
}

// NewService creates a completion service with the given configuration.
//
// The OpenAI client with a custom base URL works for both the OpenAI
// API and any OpenAI-compatible endpoint.
func NewService(config Config) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	apiKey := config.APIKey
	if apiKey == "" {
		// langchaingo requires a token, use placeholder for local endpoints
		apiKey = "placeholder"
	}

	model, err := openai.New(
		openai.WithBaseURL(config.BaseURL),
		openai.WithModel(config.Model),
		openai.WithToken(apiKey),
	)
	if err != nil {
		return nil, fmt.Errorf("creating OpenAI client: %w", err)
	}

	return &Service{model: model, config: config}, nil
}

// Complete generates a completion for the given system and user
// prompts and returns the first choice's content. A zero temperature
// falls back to the configured default.
//
// Returns ErrEmptyPrompt if user is empty and ErrEmptyResponse if the
// provider returns no choices.
func (s *Service) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	if user == "" {
		return "", ErrEmptyPrompt
	}

	messages := make([]llms.MessageContent, 0, 2)
	if system != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, system))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, user))

	if temperature == 0 {
		temperature = s.config.Temperature
	}
	opts := []llms.CallOption{
		llms.WithTemperature(temperature),
	}
	if s.config.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(s.config.MaxTokens))
	}

	resp, err := s.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Content, nil
}
