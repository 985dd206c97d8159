// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/flashcard-engine/internal/generate"
)

func azureServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.Contains(r.URL.Path, "/deployments/cards/chat/completions"), r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("api-key"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestAzureBackend_Generate(t *testing.T) {
	content := `{"flashcards":[{"question":"What is glucose?","answer":"A simple sugar."}]}`
	body, err := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"created": 1700000000,
		"choices": []any{
			map[string]any{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			},
		},
	})
	require.NoError(t, err)
	ts := azureServer(t, http.StatusOK, string(body))

	b, err := NewAzureBackend(ts.URL, "test-key", "cards", ts.Client())
	require.NoError(t, err)

	items, err := b.Generate(context.Background(), "make cards")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "What is glucose?", items[0].Question)
}

func TestAzureBackend_Unauthorized(t *testing.T) {
	ts := azureServer(t, http.StatusUnauthorized,
		`{"error":{"code":"401","message":"Access denied due to invalid subscription key."}}`)

	b, err := NewAzureBackend(ts.URL, "test-key", "cards", ts.Client())
	require.NoError(t, err)

	_, err = b.Generate(context.Background(), "make cards")
	require.Error(t, err)
	assert.Equal(t, generate.KindAuth, generate.Classify(err).Kind)
}
