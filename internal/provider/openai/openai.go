// Package openai implements the provider.Provider interface on top of
// the official openai-go SDK's Chat Completions API. Any
// OpenAI-compatible endpoint works via a custom base URL.
package openai

import (
	"context"
	"sync"
	"time"

	sdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"

	"github.com/parleyhq/parley/internal/provider"
)

// OpenAIProvider implements the Provider interface for OpenAI and
// compatible gateways.
type OpenAIProvider struct {
	client ChatClient

	mu    sync.RWMutex
	model string
}

// New creates a provider with the specified client and model.
func New(client ChatClient, model string) *OpenAIProvider {
	return &OpenAIProvider{
		client: client,
		model:  model,
	}
}

// Generate sends the full history and tool definitions to the Chat
// Completions API and returns one assistant turn.
func (p *OpenAIProvider) Generate(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
	p.mu.RLock()
	model := p.model
	p.mu.RUnlock()

	params := sdk.ChatCompletionNewParams{
		Model:    shared.ChatModel(model),
		Messages: toChatMessages(req.History),
	}
	if len(req.Tools) > 0 {
		params.Tools = toChatTools(req.Tools)
	}

	start := time.Now()
	resp, err := p.client.CreateCompletion(ctx, params)
	if err != nil {
		return nil, mapError(err)
	}

	return fromChatCompletion(resp, model, time.Since(start).Milliseconds())
}

// GetModel returns the currently active model name.
func (p *OpenAIProvider) GetModel() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.model
}

// SetModel changes the active model at runtime.
func (p *OpenAIProvider) SetModel(model string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.model = model
	return nil
}
