package gemini

import (
	"context"

	"google.golang.org/genai"
)

// GeminiClient abstracts the genai SDK surface used by the provider,
// so tests can inject a mock.
type GeminiClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// RealGeminiClient implements GeminiClient using the genai SDK.
type RealGeminiClient struct {
	client *genai.Client
}

// NewRealGeminiClient wraps a genai client.
func NewRealGeminiClient(client *genai.Client) *RealGeminiClient {
	return &RealGeminiClient{client: client}
}

// GenerateContent implements GeminiClient.
func (c *RealGeminiClient) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return c.client.Models.GenerateContent(ctx, model, contents, config)
}
