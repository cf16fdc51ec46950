package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/parleyhq/parley/internal/chat"
	"github.com/parleyhq/parley/internal/provider"
)

// Registry maps tool names to executable capabilities. It advertises
// their definitions to the provider and executes the invocations the
// model returns.
//
// Registry never touches the conversation Store; it resolves each
// invocation to a single tool message or an error.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Registering a name twice replaces the earlier
// tool and keeps its position.
func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

// Definitions returns tool definitions in registration order.
func (r *Registry) Definitions() []provider.ToolDefinition {
	defs := make([]provider.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition())
	}
	return defs
}

// Invoke executes the requested tool call and returns its result as a
// tool message carrying the call's ID. It fails with ErrUnknownTool
// when the name is not registered and with *ExecutionError when the
// executor fails.
func (r *Registry) Invoke(ctx context.Context, call chat.ToolCall) (chat.Message, error) {
	t, exists := r.tools[call.Name]
	if !exists {
		return chat.Message{}, fmt.Errorf("%w: %q", ErrUnknownTool, call.Name)
	}

	args, err := decodeArguments(call.Arguments)
	if err != nil {
		return chat.Message{}, &ExecutionError{Tool: call.Name, Err: err}
	}

	result, err := t.Execute(ctx, args)
	if err != nil {
		return chat.Message{}, &ExecutionError{Tool: call.Name, Err: err}
	}

	return chat.Message{
		Role:       chat.RoleTool,
		Content:    result,
		ToolCallID: call.ID,
	}, nil
}

func decodeArguments(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("invalid argument payload: %w", err)
	}
	return args, nil
}
