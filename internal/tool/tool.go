// Package tool provides the Tool interface, a typed adapter for
// argument decoding, the Registry that dispatches model-requested
// invocations, and the built-in tools.
package tool

import (
	"context"

	"github.com/parleyhq/parley/internal/provider"
)

// Tool represents a capability the model can invoke.
// Each tool must be stateless and safe for concurrent use.
type Tool interface {
	// Name returns the unique identifier for this tool
	Name() string

	// Description returns a human-readable description
	Description() string

	// Definition returns the structured tool definition advertised
	// to the provider
	Definition() provider.ToolDefinition

	// Execute runs the tool with the given arguments.
	// Args is a map of argument names to values, as provided by the
	// model.
	Execute(ctx context.Context, args map[string]any) (string, error)
}
