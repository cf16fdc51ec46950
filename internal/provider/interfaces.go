package provider

import "context"

// Provider is a remote completion capability. Given the full message
// history and the currently registered tools, Generate returns one
// assistant turn: plain text or a set of tool-call requests.
//
// Implementations must be safe for concurrent use.
type Provider interface {
	// Generate sends one completion request. Failures are returned
	// as *Error with a code from the taxonomy in errors.go.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// GetModel returns the currently active model name.
	GetModel() string

	// SetModel changes the active model at runtime.
	SetModel(model string) error
}
