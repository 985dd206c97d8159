// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves AI provider credentials. Each file in the secrets
// directory holds one secret: the filename is the key name and the trimmed
// contents are the value. Environment variables fill in keys with no file.
//
// Key files: anthropic-api-key, gemini-api-key, azure-openai-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/flashcard-engine/pkg/types"
)

// Set maps key-file names to secret values.
type Set map[string]string

// source names where a provider's API key may come from.
type source struct {
	file string
	env  string
}

var providerKeys = map[types.Provider]source{
	types.ProviderClaude: {file: "anthropic-api-key", env: "ANTHROPIC_API_KEY"},
	types.ProviderGemini: {file: "gemini-api-key", env: "GEMINI_API_KEY"},
	types.ProviderAzure:  {file: "azure-openai-api-key", env: "AZURE_OPENAI_API_KEY"},
}

// Load reads every regular, non-hidden file in dir. A missing directory
// yields an empty Set. Unreadable files are logged and skipped.
func Load(dir string, log *zap.Logger) (Set, error) {
	if log == nil {
		log = zap.NewNop()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	set := make(Set)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret", zap.String("name", name), zap.Error(err))
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			set[name] = value
		}
	}
	return set, nil
}

// APIKey returns the key for p, preferring the secrets file over the
// environment. It returns "" when neither is set.
func (s Set) APIKey(p types.Provider) string {
	if p == "" {
		p = types.ProviderClaude
	}
	src, ok := providerKeys[p]
	if !ok {
		return ""
	}
	if v := s[src.file]; v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv(src.env))
}

// KeyFile returns the secrets filename that holds p's API key.
func KeyFile(p types.Provider) string {
	return providerKeys[p].file
}
