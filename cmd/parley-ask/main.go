// Package main provides parley-ask, a single-shot completion command:
// one prompt in, one rendered answer out, with the raw response
// payload saved to a timestamped transcript file.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/parleyhq/parley/internal/chat"
	"github.com/parleyhq/parley/internal/config"
	"github.com/parleyhq/parley/internal/console"
	"github.com/parleyhq/parley/internal/provider"
	"github.com/parleyhq/parley/internal/provider/gemini"
	openaiprov "github.com/parleyhq/parley/internal/provider/openai"
	"github.com/parleyhq/parley/internal/transcript"
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

func run(ctx context.Context, cfg *config.Config, prompt string) error {
	p, err := buildProvider(ctx, cfg)
	if err != nil {
		return err
	}

	store := chat.NewStore(cfg.Conversation.SystemPrompt)
	store.Append(chat.Message{Role: chat.RoleUser, Content: prompt})

	reqCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Provider.TimeoutSeconds)*time.Second)
	defer cancel()

	resp, err := p.Generate(reqCtx, &provider.GenerateRequest{History: store.All()})
	if err != nil {
		return fmt.Errorf("completion failed: %w", err)
	}
	if resp.Content.Type != provider.ResponseTypeText {
		return fmt.Errorf("unexpected response type %q", resp.Content.Type)
	}

	term := console.New(os.Stdin, os.Stdout)
	term.WriteAssistant(resp.Content.Text)

	if len(resp.Metadata.Raw) > 0 {
		writer, err := transcript.NewWriter(cfg.Transcript.Dir)
		if err != nil {
			return err
		}
		path, err := writer.Write(resp.Metadata.Raw)
		if err != nil {
			return err
		}
		term.WriteStatus("transcript saved to " + path)
	}

	return nil
}

func main() {
	prompt := strings.TrimSpace(strings.Join(os.Args[1:], " "))
	if prompt == "" {
		fmt.Fprintln(os.Stderr, "usage: parley-ask <prompt>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration.\n")
		cfg = config.DefaultConfig()
	}

	if err := run(context.Background(), cfg, prompt); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
