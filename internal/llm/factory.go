package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/dkorolev/crossfoot/internal/model"
)

// NewProvider creates a new LLM provider based on configuration.
// An empty provider name selects Gemini, matching the documented default.
func NewProvider(ctx context.Context, config Config) (Provider, error) {
	provider := strings.ToLower(strings.TrimSpace(config.Provider))

	switch provider {
	case "gemini", "google", "":
		return NewGeminiProvider(ctx, config)

	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: gemini, openai, ollama)", config.Provider)
	}
}

// ConfigFromModel converts the LLM section of the run configuration.
// The embedding dimension rides along so providers can request it.
func ConfigFromModel(cfg *model.Config) Config {
	return Config{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		EmbedModel:  cfg.LLM.EmbedModel,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Timeout:     cfg.LLM.Timeout,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		EmbedDim:    cfg.Embedding.Dimension,
	}
}
