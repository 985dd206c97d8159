// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"

	"github.com/pdiddy/flashcard-engine/pkg/types"
)

// AzureBackend generates flashcards with an Azure OpenAI chat deployment.
type AzureBackend struct {
	client     *azopenai.Client
	deployment string
}

// NewAzureBackend creates an Azure OpenAI client with key authentication.
// The SDK's own retry policy is disabled; retries belong to the pipeline.
func NewAzureBackend(endpoint, apiKey, deployment string, httpClient *http.Client) (*AzureBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("azure openai API key is not set")
	}
	if endpoint == "" || deployment == "" {
		return nil, fmt.Errorf("azure openai requires both an endpoint and a deployment")
	}

	opts := &azopenai.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{MaxRetries: -1},
		},
	}
	if httpClient != nil {
		opts.Transport = httpClient
	}

	client, err := azopenai.NewClientWithKeyCredential(endpoint, azcore.NewKeyCredential(apiKey), opts)
	if err != nil {
		return nil, fmt.Errorf("creating Azure OpenAI client: %w", err)
	}
	return &AzureBackend{client: client, deployment: deployment}, nil
}

func (a *AzureBackend) Name() string { return "azure:" + a.deployment }

// Generate sends prompt as a single user message to the deployment.
func (a *AzureBackend) Generate(ctx context.Context, prompt string) ([]types.GeneratedItem, error) {
	resp, err := a.client.GetChatCompletions(ctx, azopenai.ChatCompletionsOptions{
		DeploymentName: to.Ptr(a.deployment),
		Temperature:    to.Ptr[float32](temperature),
		Messages: []azopenai.ChatRequestMessageClassification{
			&azopenai.ChatRequestUserMessage{
				Content: azopenai.NewChatRequestUserMessageContent(prompt),
			},
		},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("azure openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil || resp.Choices[0].Message.Content == nil {
		return nil, fmt.Errorf("no completion received from Azure OpenAI")
	}
	return parseFlashcards(*resp.Choices[0].Message.Content)
}
