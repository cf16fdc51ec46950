package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/parleyhq/parley/internal/provider"
)

// Validator is implemented by request types that support validation.
type Validator interface {
	Validate() error
}

// Executor is a function that executes a tool with a typed request and
// response.
type Executor[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

// BaseAdapter implements Tool on top of a typed executor function.
// It centralizes argument decoding (mapstructure), request validation,
// and response marshaling, so concrete tools only supply a schema and
// an executor.
type BaseAdapter[Req, Resp any] struct {
	name        string
	description string
	definition  provider.ToolDefinition
	executor    Executor[Req, Resp]
}

// NewBaseAdapter creates an adapter with the given configuration.
func NewBaseAdapter[Req, Resp any](
	name string,
	description string,
	paramSchema *provider.ParameterSchema,
	executor Executor[Req, Resp],
) *BaseAdapter[Req, Resp] {
	return &BaseAdapter[Req, Resp]{
		name:        name,
		description: description,
		definition: provider.ToolDefinition{
			Name:        name,
			Description: description,
			Parameters:  paramSchema,
		},
		executor: executor,
	}
}

// Name implements Tool.
func (b *BaseAdapter[Req, Resp]) Name() string {
	return b.name
}

// Description implements Tool.
func (b *BaseAdapter[Req, Resp]) Description() string {
	return b.description
}

// Definition implements Tool.
func (b *BaseAdapter[Req, Resp]) Definition() provider.ToolDefinition {
	return b.definition
}

// Execute implements Tool. It decodes the args map into the typed
// request, validates it when the request implements Validator, runs
// the executor, and marshals the response to JSON.
func (b *BaseAdapter[Req, Resp]) Execute(ctx context.Context, args map[string]any) (string, error) {
	var req Req

	if err := mapstructure.Decode(args, &req); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return "", fmt.Errorf("%s validation failed: %w", b.name, err)
		}
	}

	resp, err := b.executor(ctx, req)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}
	return string(data), nil
}
