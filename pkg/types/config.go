// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Provider identifies the generative content provider behind a backend.
type Provider string

const (
	ProviderClaude Provider = "claude"
	ProviderGemini Provider = "gemini"
	ProviderAzure  Provider = "azure"
)

// AIConfig holds shared settings for calling a Generative AI API.
type AIConfig struct {
	// Provider selects the backend: claude, gemini, or azure.
	Provider Provider `json:"provider" yaml:"provider"`

	// Model is the AI model identifier (e.g. "claude-sonnet-4-5-20250929").
	// For Azure OpenAI this is ignored in favour of Deployment.
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Endpoint is the Azure OpenAI resource endpoint, or a base URL override
	// for the other providers.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// Deployment is the Azure OpenAI deployment name.
	Deployment string `json:"deployment,omitempty" yaml:"deployment,omitempty"`

	// Timeout bounds the underlying HTTP client (default 60s). The per-attempt
	// deadline is AttemptTimeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// GenerationConfig holds settings for the flashcard generation pipeline.
type GenerationConfig struct {
	AIConfig `yaml:",inline"`

	// MaxAttempts is the attempt budget per retry cycle (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// AttemptTimeout is the deadline for a single provider call (default 30s).
	AttemptTimeout time.Duration `json:"attempt_timeout" yaml:"attempt_timeout"`

	// BackoffBase is the first retry delay; later delays double (default 1s).
	BackoffBase time.Duration `json:"backoff_base" yaml:"backoff_base"`

	// Fallback enables placeholder cards when generation is unrecoverable.
	Fallback bool `json:"fallback" yaml:"fallback"`
}

// DeckStoreConfig holds settings for the deck database.
type DeckStoreConfig struct {
	// Path is the SQLite database file (default "data/flashcards.db").
	Path string `json:"path" yaml:"path"`
}
