// Package gemini implements the provider.Provider interface for
// Google Gemini via the genai SDK. It is the alternate backend for
// deployments without an OpenAI-compatible endpoint.
package gemini

import (
	"context"
	"sync"
	"time"

	"github.com/parleyhq/parley/internal/provider"
)

// GeminiProvider implements the Provider interface for Google Gemini.
type GeminiProvider struct {
	client GeminiClient

	mu    sync.RWMutex
	model string
}

// New creates a provider with the specified client and model.
func New(client GeminiClient, model string) *GeminiProvider {
	return &GeminiProvider{
		client: client,
		model:  model,
	}
}

// Generate sends the full history and tool definitions to the Gemini
// API and returns one assistant turn.
func (p *GeminiProvider) Generate(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
	p.mu.RLock()
	model := p.model
	p.mu.RUnlock()

	contents, config := toGeminiRequest(req.History)
	if len(req.Tools) > 0 {
		config.Tools = toGeminiTools(req.Tools)
	}

	start := time.Now()
	resp, err := p.client.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	return fromGeminiResponse(resp, model, time.Since(start).Milliseconds())
}

// GetModel returns the currently active model name.
func (p *GeminiProvider) GetModel() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.model
}

// SetModel changes the active model at runtime.
func (p *GeminiProvider) SetModel(model string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.model = model
	return nil
}
