// Package main provides the interactive parley chat session: a
// line-oriented conversation loop with native tool calling.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/genai"

	"github.com/parleyhq/parley/internal/config"
	"github.com/parleyhq/parley/internal/console"
	"github.com/parleyhq/parley/internal/conversation"
	"github.com/parleyhq/parley/internal/provider"
	"github.com/parleyhq/parley/internal/provider/gemini"
	openaiprov "github.com/parleyhq/parley/internal/provider/openai"
	"github.com/parleyhq/parley/internal/tool"
)

func buildProvider(ctx context.Context, cfg *config.Config) (provider.Provider, error) {
	switch cfg.Provider.Name {
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
		client := openaiprov.NewRealChatClient(apiKey, cfg.Provider.BaseURL)
		return openaiprov.New(client, cfg.Provider.Model), nil

	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
		}
		genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return gemini.New(gemini.NewRealGeminiClient(genaiClient), cfg.Provider.Model), nil

	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider.Name)
	}
}

func buildRegistry(cfg *config.Config) *tool.Registry {
	registry := tool.NewRegistry()
	registry.Register(tool.NewWeatherTool())

	if cfg.Mail.SMTPAddr != "" {
		registry.Register(tool.NewSendEmailTool(&tool.SMTPMailer{
			Addr: cfg.Mail.SMTPAddr,
			From: cfg.Mail.From,
		}))
	}
	return registry
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration.\n")
		cfg = config.DefaultConfig()
	}

	// SIGINT/SIGTERM cancels the root context; a completion already
	// in flight is abandoned at its next context check.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term := console.New(os.Stdin, os.Stdout)

	p, err := buildProvider(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	registry := buildRegistry(cfg)

	term.WriteStatus(fmt.Sprintf("model %s ready, type %q to end the session", p.GetModel(), conversation.ExitToken))

	loop := conversation.New(cfg, p, registry, term)
	if err := loop.Run(ctx); err != nil {
		term.WriteError(err)
		os.Exit(1)
	}
}
