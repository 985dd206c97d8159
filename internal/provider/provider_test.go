// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/flashcard-engine/pkg/types"
)

func TestParseFlashcards(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int
		wantErr bool
	}{
		{"object", `{"flashcards":[{"question":"What is ATP?","answer":"Energy currency."}]}`, 1, false},
		{"bare array", `[{"question":"Q one?","answer":"A1."},{"question":"Q two?","answer":"A2."}]`, 2, false},
		{"fenced", "```json\n{\"flashcards\":[{\"question\":\"What is ATP?\",\"answer\":\"Energy.\"}]}\n```", 1, false},
		{"plain fence", "```\n[]\n```", 0, false},
		{"empty", "   ", 0, true},
		{"prose", "Here are your flashcards!", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := parseFlashcards(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "parsing AI response JSON")
				return
			}
			require.NoError(t, err)
			assert.Len(t, items, tt.want)
		})
	}
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	b, err := New(ctx, types.AIConfig{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "claude:"+DefaultClaudeModel, b.Name())

	b, err = New(ctx, types.AIConfig{Provider: types.ProviderGemini, APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "gemini:"+DefaultGeminiModel, b.Name())

	b, err = New(ctx, types.AIConfig{
		Provider:   types.ProviderAzure,
		APIKey:     "k",
		Endpoint:   "https://example.openai.azure.com",
		Deployment: "cards",
	})
	require.NoError(t, err)
	assert.Equal(t, "azure:cards", b.Name())

	_, err = New(ctx, types.AIConfig{Provider: "openrouter"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported provider")
}

func TestNew_MissingCredentials(t *testing.T) {
	ctx := context.Background()

	_, err := New(ctx, types.AIConfig{Provider: types.ProviderGemini})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")

	_, err = New(ctx, types.AIConfig{Provider: types.ProviderAzure, APIKey: "k"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint")
}
