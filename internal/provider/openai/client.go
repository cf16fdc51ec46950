package openai

import (
	"context"

	sdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ChatClient abstracts the openai-go SDK surface used by the provider,
// so tests can inject a mock.
type ChatClient interface {
	CreateCompletion(ctx context.Context, params sdk.ChatCompletionNewParams) (*sdk.ChatCompletion, error)
}

// RealChatClient implements ChatClient against the Chat Completions
// API (/v1/chat/completions). A custom base URL routes requests to any
// OpenAI-compatible gateway.
type RealChatClient struct {
	cli sdk.Client
}

// NewRealChatClient creates a client for the given credentials.
// baseURL may be empty to use the SDK default endpoint.
func NewRealChatClient(apiKey, baseURL string) *RealChatClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &RealChatClient{cli: sdk.NewClient(opts...)}
}

// CreateCompletion implements ChatClient.
func (c *RealChatClient) CreateCompletion(ctx context.Context, params sdk.ChatCompletionNewParams) (*sdk.ChatCompletion, error) {
	return c.cli.Chat.Completions.New(ctx, params)
}
