package llm

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name         string
		config       Config
		wantName     string
		wantErr      bool
		errSubstring string
	}{
		{
			name:     "openai",
			config:   Config{Provider: "openai", APIKey: "test-key"},
			wantName: "openai",
		},
		{
			name:     "openai mixed case",
			config:   Config{Provider: "OpenAI", APIKey: "test-key"},
			wantName: "openai",
		},
		{
			name:     "ollama needs no key",
			config:   Config{Provider: "ollama"},
			wantName: "ollama",
		},
		{
			name:     "gemini",
			config:   Config{Provider: "gemini", APIKey: "test-key"},
			wantName: "gemini",
		},
		{
			name:     "google alias",
			config:   Config{Provider: "google", APIKey: "test-key"},
			wantName: "gemini",
		},
		{
			name:     "empty provider defaults to gemini",
			config:   Config{APIKey: "test-key"},
			wantName: "gemini",
		},
		{
			name:         "openai requires key",
			config:       Config{Provider: "openai"},
			wantErr:      true,
			errSubstring: "API key",
		},
		{
			name:         "gemini requires key",
			config:       Config{Provider: "gemini"},
			wantErr:      true,
			errSubstring: "API key",
		},
		{
			name:         "unknown provider",
			config:       Config{Provider: "cohere"},
			wantErr:      true,
			errSubstring: "unknown LLM provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(context.Background(), tt.config)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errSubstring) {
					t.Errorf("Expected error containing %q, got %v", tt.errSubstring, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider failed: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Expected provider %q, got %q", tt.wantName, p.Name())
			}
		})
	}
}

func TestConfigTimeout(t *testing.T) {
	if got := (Config{Timeout: 5}).timeout(); got != 5*time.Second {
		t.Errorf("Expected 5s, got %v", got)
	}
	if got := (Config{}).timeout(); got != 120*time.Second {
		t.Errorf("Expected fallback 120s, got %v", got)
	}
}
