// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/flashcard-engine/internal/httputil"
	"github.com/pdiddy/flashcard-engine/pkg/types"
)

// claudeAPIURL is the Claude API endpoint. Package-level var for test substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

// ClaudeBackend calls the Claude Messages API.
type ClaudeBackend struct {
	APIKey string
	Model  string
	Client *http.Client

	// BaseURL overrides claudeAPIURL when set.
	BaseURL string
}

// claudeRequest is the request body for the Claude Messages API.
type claudeRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
	Messages    []claudeMessage `json:"messages"`
}

// claudeMessage is a single message in the Claude API conversation.
type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// claudeResponse is the response body from the Claude Messages API.
type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

// claudeContent is a content block in the Claude API response.
type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (c *ClaudeBackend) Name() string { return "claude:" + c.Model }

// Generate sends prompt as a single user message and parses the flashcard
// JSON from the first text block of the reply.
func (c *ClaudeBackend) Generate(ctx context.Context, prompt string) ([]types.GeneratedItem, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key is not set")
	}

	url := claudeAPIURL
	if c.BaseURL != "" {
		url = c.BaseURL
	}

	reqBody := claudeRequest{
		Model:       c.Model,
		MaxTokens:   4096,
		Temperature: temperature,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}
	headers := map[string]string{
		"x-api-key":         c.APIKey,
		"anthropic-version": "2023-06-01",
	}

	var cResp claudeResponse
	if err := httputil.PostJSON(ctx, c.Client, "Claude API", url, headers, reqBody, &cResp); err != nil {
		return nil, err
	}

	for _, block := range cResp.Content {
		if block.Type != "text" {
			continue
		}
		return parseFlashcards(block.Text)
	}
	return nil, fmt.Errorf("no text content in Claude API response")
}
