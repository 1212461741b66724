package llm

import (
	"context"
	"errors"
	"time"
)

// ErrEmptyResponse is returned when a provider answers with no usable content.
var ErrEmptyResponse = errors.New("llm: empty response")

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a prompt to the reasoning model and returns the reply text
	Complete(ctx context.Context, prompt string) (string, error)

	// Embed returns the embedding vector for a single text
	Embed(ctx context.Context, text string) ([]float32, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "gemini", "openai", "ollama"
	Provider string

	// Model for reasoning calls (provider-specific)
	Model string

	// EmbedModel for embedding calls (provider-specific)
	EmbedModel string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens limits reasoning response length
	MaxTokens int

	// Temperature for reasoning calls
	Temperature float32

	// EmbedDim is the vector length requested from the provider
	EmbedDim int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:    "gemini",
		Model:       "gemini-2.0-flash",
		EmbedModel:  "gemini-embedding-001",
		Timeout:     120,
		MaxTokens:   4096,
		Temperature: 0.1,
		EmbedDim:    768,
	}
}

// timeout returns the configured request timeout with a fallback.
// Reasoning batches carry large prompts, so the fallback is generous.
func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return time.Duration(c.Timeout) * time.Second
	}
	return 120 * time.Second
}
