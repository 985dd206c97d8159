// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider implements generate.Backend for the supported
// generative AI APIs: Claude, Gemini, and Azure OpenAI.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/flashcard-engine/internal/generate"
	"github.com/pdiddy/flashcard-engine/pkg/types"
)

const (
	// DefaultClaudeModel is used when no model is configured for Claude.
	DefaultClaudeModel = "claude-sonnet-4-5-20250929"

	// DefaultGeminiModel is used when no model is configured for Gemini.
	DefaultGeminiModel = "gemini-2.5-flash"

	defaultHTTPTimeout = 60 * time.Second

	// temperature matches the sampling used for every provider.
	temperature = 0.7
)

// New builds the backend selected by cfg.Provider.
func New(ctx context.Context, cfg types.AIConfig) (generate.Backend, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	client := &http.Client{Timeout: timeout}

	switch cfg.Provider {
	case types.ProviderClaude, "":
		model := cfg.Model
		if model == "" {
			model = DefaultClaudeModel
		}
		return &ClaudeBackend{APIKey: cfg.APIKey, Model: model, Client: client, BaseURL: cfg.Endpoint}, nil
	case types.ProviderGemini:
		return NewGeminiBackend(ctx, cfg.APIKey, cfg.Model, cfg.Endpoint, client)
	case types.ProviderAzure:
		return NewAzureBackend(cfg.Endpoint, cfg.APIKey, cfg.Deployment, client)
	default:
		return nil, fmt.Errorf("unsupported provider %q: use claude, gemini, or azure", cfg.Provider)
	}
}

// flashcardResponse is the JSON object every provider is asked to return.
type flashcardResponse struct {
	Flashcards []types.GeneratedItem `json:"flashcards"`
}

// parseFlashcards decodes a provider's text reply. It tolerates Markdown
// code fences around the JSON and a bare array in place of the object.
func parseFlashcards(text string) ([]types.GeneratedItem, error) {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	if s == "" {
		return nil, fmt.Errorf("parsing AI response JSON: empty response")
	}

	if strings.HasPrefix(s, "[") {
		var items []types.GeneratedItem
		if err := json.Unmarshal([]byte(s), &items); err != nil {
			return nil, fmt.Errorf("parsing AI response JSON: %w", err)
		}
		return items, nil
	}

	var resp flashcardResponse
	if err := json.Unmarshal([]byte(s), &resp); err != nil {
		return nil, fmt.Errorf("parsing AI response JSON: %w", err)
	}
	return resp.Flashcards, nil
}
