// Package conversation orchestrates the turn-by-turn loop between the
// operator, the completion provider, and the tool registry.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/parleyhq/parley/internal/chat"
	"github.com/parleyhq/parley/internal/config"
	"github.com/parleyhq/parley/internal/provider"
	"github.com/parleyhq/parley/internal/tool"
)

// ExitToken ends the session when entered on its own line,
// case-insensitively. It is checked before any completion call.
const ExitToken = "exit"

// UserIO is the operator surface the loop talks to.
type UserIO interface {
	ReadInput(prompt string) (string, error)
	WriteAssistant(text string)
	WriteStatus(message string)
}

// Loop runs one conversation: it reads operator turns, appends them to
// the store, calls the provider with the full history, dispatches tool
// calls, and displays assistant replies.
//
// The loop is strictly sequential: one in-flight completion or tool
// execution at a time, and the store has the loop as its single
// writer.
type Loop struct {
	provider provider.Provider
	registry *tool.Registry
	userIO   UserIO
	store    *chat.Store

	timeout           time.Duration
	maxToolIterations int
}

// New creates a Loop with a store seeded from the configured system
// prompt.
func New(cfg *config.Config, p provider.Provider, registry *tool.Registry, userIO UserIO) *Loop {
	return &Loop{
		provider:          p,
		registry:          registry,
		userIO:            userIO,
		store:             chat.NewStore(cfg.Conversation.SystemPrompt),
		timeout:           time.Duration(cfg.Provider.TimeoutSeconds) * time.Second,
		maxToolIterations: cfg.Conversation.MaxToolIterations,
	}
}

// History returns a copy of the conversation so far.
func (l *Loop) History() []chat.Message {
	return l.store.All()
}

// Run executes the conversation until the operator enters the exit
// token, input ends, or an error occurs. Provider and tool failures
// are fatal: they surface to the caller with the store untouched by
// the failed call.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		input, err := l.userIO.ReadInput("you>")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read user input: %w", err)
		}
		if input == "" {
			continue
		}
		if strings.EqualFold(input, ExitToken) {
			return nil
		}

		l.store.Append(chat.Message{Role: chat.RoleUser, Content: input})

		if err := l.completeTurn(ctx); err != nil {
			return err
		}
	}
}

// completeTurn drives one user turn to a displayed assistant reply,
// dispatching any tool calls the model requests in between. Each tool
// result is appended immediately after the assistant message that
// requested it, before any new user turn.
func (l *Loop) completeTurn(ctx context.Context) error {
	for range l.maxToolIterations {
		l.userIO.WriteStatus("thinking...")

		resp, err := l.generate(ctx)
		if err != nil {
			return fmt.Errorf("completion failed: %w", err)
		}

		switch resp.Content.Type {
		case provider.ResponseTypeToolCall:
			if len(resp.Content.ToolCalls) == 0 {
				return &provider.Error{
					Code:    provider.ErrorCodeMalformed,
					Message: "tool-call response with empty call list",
				}
			}

			l.store.Append(chat.Message{
				Role:      chat.RoleAssistant,
				ToolCalls: resp.Content.ToolCalls,
			})

			for _, call := range resp.Content.ToolCalls {
				l.userIO.WriteStatus(fmt.Sprintf("running %s...", call.Name))
				result, err := l.registry.Invoke(ctx, call)
				if err != nil {
					return err
				}
				l.store.Append(result)
			}
			// Re-invoke the provider without new user input.

		case provider.ResponseTypeText:
			l.store.Append(chat.Message{
				Role:    chat.RoleAssistant,
				Content: resp.Content.Text,
			})
			l.userIO.WriteAssistant(resp.Content.Text)
			return nil

		default:
			return fmt.Errorf("unexpected response type %q", resp.Content.Type)
		}
	}

	return fmt.Errorf("tool dispatch exceeded %d iterations for one turn", l.maxToolIterations)
}

// generate calls the provider with the full history under the
// configured per-request timeout.
func (l *Loop) generate(ctx context.Context) (*provider.GenerateResponse, error) {
	reqCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	return l.provider.Generate(reqCtx, &provider.GenerateRequest{
		History: l.store.All(),
		Tools:   l.registry.Definitions(),
	})
}
