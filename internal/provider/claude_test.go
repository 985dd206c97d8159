// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/flashcard-engine/internal/generate"
)

func claudeServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req claudeRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.InDelta(t, 0.7, req.Temperature, 1e-9)
		if assert.Len(t, req.Messages, 1) {
			assert.Equal(t, "user", req.Messages[0].Role)
		}

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestClaudeBackend_Generate(t *testing.T) {
	text := `{"flashcards":[{"question":"What is chlorophyll?","answer":"A green pigment."}]}`
	payload, err := json.Marshal(claudeResponse{Content: []claudeContent{{Type: "text", Text: text}}})
	require.NoError(t, err)
	ts := claudeServer(t, http.StatusOK, string(payload))

	b := &ClaudeBackend{APIKey: "test-key", Model: "test-model", Client: ts.Client(), BaseURL: ts.URL}
	items, err := b.Generate(context.Background(), "make cards")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "What is chlorophyll?", items[0].Question)
}

func TestClaudeBackend_ErrorsClassify(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   generate.Kind
	}{
		{"unauthorized", http.StatusUnauthorized, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`, generate.KindAuth},
		{"rate limited", http.StatusTooManyRequests, `{"type":"error","error":{"type":"rate_limit_error"}}`, generate.KindRateLimit},
		{"overloaded", 529, `{"type":"error","error":{"type":"overloaded_error"}}`, generate.KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := claudeServer(t, tt.status, tt.body)
			b := &ClaudeBackend{APIKey: "test-key", Model: "test-model", Client: ts.Client(), BaseURL: ts.URL}

			_, err := b.Generate(context.Background(), "make cards")
			require.Error(t, err)
			assert.Equal(t, tt.kind, generate.Classify(err).Kind)
		})
	}
}

func TestClaudeBackend_MissingKey(t *testing.T) {
	b := &ClaudeBackend{Model: "test-model", Client: http.DefaultClient}
	_, err := b.Generate(context.Background(), "make cards")
	require.Error(t, err)
	assert.Equal(t, generate.KindAuth, generate.Classify(err).Kind)
}

func TestClaudeBackend_NoTextBlock(t *testing.T) {
	ts := claudeServer(t, http.StatusOK, `{"content":[{"type":"tool_use"}]}`)
	b := &ClaudeBackend{APIKey: "test-key", Model: "test-model", Client: ts.Client(), BaseURL: ts.URL}

	_, err := b.Generate(context.Background(), "make cards")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no text content")
}
