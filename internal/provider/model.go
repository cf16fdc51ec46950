// Package provider defines the provider-agnostic request/response
// model for chat completions and the Provider interface implemented by
// concrete backends (openai, gemini).
package provider

import (
	"encoding/json"

	"github.com/parleyhq/parley/internal/chat"
)

// GenerateRequest encapsulates all parameters for one completion call.
type GenerateRequest struct {
	// History is the full, unmodified conversation in order,
	// including the seeding system message.
	History []chat.Message

	// Tools contains tool definitions advertised for native tool
	// calling. May be empty.
	Tools []ToolDefinition
}

// GenerateResponse contains the model's response and metadata.
type GenerateResponse struct {
	Content  ResponseContent
	Metadata ResponseMetadata
}

// ResponseType discriminates the ResponseContent union.
type ResponseType string

const (
	ResponseTypeText     ResponseType = "text"
	ResponseTypeToolCall ResponseType = "tool_call"
)

// ResponseContent is a tagged union: exactly one of the variant fields
// is meaningful, selected by Type.
type ResponseContent struct {
	Type ResponseType

	// For Type = ResponseTypeText
	Text string

	// For Type = ResponseTypeToolCall
	ToolCalls []chat.ToolCall
}

// ResponseMetadata carries accounting data for one completion call.
type ResponseMetadata struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int

	// ModelUsed is the model that served the request.
	ModelUsed string

	LatencyMs int64

	// Raw is the unparsed response payload as returned by the
	// backend, kept for transcript persistence. May be nil.
	Raw json.RawMessage
}

// ToolDefinition describes a tool the model may invoke.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  *ParameterSchema // nil means no parameters
}

// ParameterSchema maps directly to a JSON Schema object.
type ParameterSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]PropertySchema `json:"properties"`
	Required   []string                  `json:"required,omitempty"`
}

// PropertySchema defines a single parameter property.
type PropertySchema struct {
	Type        string          `json:"type"`
	Description string          `json:"description,omitempty"`
	Enum        []string        `json:"enum,omitempty"`
	Items       *PropertySchema `json:"items,omitempty"`
}
