package gemini

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/parleyhq/parley/internal/chat"
	"github.com/parleyhq/parley/internal/provider"
)

// toGeminiRequest converts the history to Gemini contents plus a
// request config. The system message becomes the system instruction;
// tool results become FunctionResponse parts, resolved back to their
// function name via the tool-call ID.
func toGeminiRequest(history []chat.Message) ([]*genai.Content, *genai.GenerateContentConfig) {
	config := &genai.GenerateContentConfig{}
	contents := make([]*genai.Content, 0, len(history))

	// Gemini identifies tool results by function name, not call ID.
	callNames := make(map[string]string)

	for _, msg := range history {
		switch msg.Role {
		case chat.RoleSystem:
			config.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
			}
		case chat.RoleUser:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
			})
		case chat.RoleAssistant:
			parts := make([]*genai.Part, 0, 1+len(msg.ToolCalls))
			if msg.Content != "" {
				parts = append(parts, genai.NewPartFromText(msg.Content))
			}
			for _, tc := range msg.ToolCalls {
				callNames[tc.ID] = tc.Name
				parts = append(parts, &genai.Part{
					FunctionCall: &genai.FunctionCall{
						Name: tc.Name,
						Args: argumentsToMap(tc.Arguments),
					},
				})
			}
			if len(parts) == 0 {
				continue
			}
			contents = append(contents, &genai.Content{Role: "model", Parts: parts})
		case chat.RoleTool:
			contents = append(contents, &genai.Content{
				Role: "user",
				Parts: []*genai.Part{
					{
						FunctionResponse: &genai.FunctionResponse{
							Name: callNames[msg.ToolCallID],
							Response: map[string]any{
								"content": msg.Content,
							},
						},
					},
				},
			})
		}
	}

	return contents, config
}

// argumentsToMap parses the raw JSON argument string the model
// produced. Unparseable arguments degrade to an empty map.
func argumentsToMap(raw string) map[string]any {
	if raw == "" {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return map[string]any{}
	}
	return m
}

// toGeminiTools converts tool definitions to Gemini function
// declarations.
func toGeminiTools(tools []provider.ToolDefinition) []*genai.Tool {
	declarations := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		fd := &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
		}
		if tool.Parameters != nil {
			fd.Parameters = toGeminiSchema(tool.Parameters)
		}
		declarations = append(declarations, fd)
	}
	return []*genai.Tool{{FunctionDeclarations: declarations}}
}

func toGeminiSchema(params *provider.ParameterSchema) *genai.Schema {
	schema := &genai.Schema{Type: genai.TypeObject}

	if params.Properties != nil {
		schema.Properties = make(map[string]*genai.Schema)
		for name, prop := range params.Properties {
			s := &genai.Schema{
				Type:        toGeminiType(prop.Type),
				Description: prop.Description,
			}
			if len(prop.Enum) > 0 {
				s.Enum = prop.Enum
			}
			if prop.Items != nil {
				s.Items = &genai.Schema{
					Type:        toGeminiType(prop.Items.Type),
					Description: prop.Items.Description,
				}
			}
			schema.Properties[name] = s
		}
	}
	if len(params.Required) > 0 {
		schema.Required = params.Required
	}
	return schema
}

func toGeminiType(typeStr string) genai.Type {
	switch typeStr {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// fromGeminiResponse converts a Gemini response to the internal
// tagged-union form.
func fromGeminiResponse(resp *genai.GenerateContentResponse, model string, latencyMs int64) (*provider.GenerateResponse, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, &provider.Error{
			Code:    provider.ErrorCodeMalformed,
			Message: "no candidates in response",
		}
	}

	candidate := resp.Candidates[0]
	metadata := buildMetadata(resp, model, latencyMs)

	var toolCalls []chat.ToolCall
	var text string
	for _, part := range candidate.Content.Parts {
		if part.FunctionCall != nil {
			args, err := json.Marshal(part.FunctionCall.Args)
			if err != nil {
				args = []byte("{}")
			}
			toolCalls = append(toolCalls, chat.ToolCall{
				// Gemini does not assign call IDs; mint one so
				// results can be correlated in the history.
				ID:        uuid.NewString(),
				Name:      part.FunctionCall.Name,
				Arguments: string(args),
			})
		}
		if part.Text != "" {
			text += part.Text
		}
	}

	if len(toolCalls) > 0 {
		return &provider.GenerateResponse{
			Content: provider.ResponseContent{
				Type:      provider.ResponseTypeToolCall,
				ToolCalls: toolCalls,
			},
			Metadata: metadata,
		}, nil
	}

	if text == "" {
		return nil, &provider.Error{
			Code:    provider.ErrorCodeMalformed,
			Message: "candidate carries neither text nor function calls",
		}
	}

	return &provider.GenerateResponse{
		Content: provider.ResponseContent{
			Type: provider.ResponseTypeText,
			Text: text,
		},
		Metadata: metadata,
	}, nil
}

func buildMetadata(resp *genai.GenerateContentResponse, model string, latencyMs int64) provider.ResponseMetadata {
	metadata := provider.ResponseMetadata{
		ModelUsed: model,
		LatencyMs: latencyMs,
	}
	if usage := resp.UsageMetadata; usage != nil {
		metadata.PromptTokens = int(usage.PromptTokenCount)
		metadata.CompletionTokens = int(usage.CandidatesTokenCount)
		metadata.TotalTokens = int(usage.TotalTokenCount)
	}
	if raw, err := json.Marshal(resp); err == nil {
		metadata.Raw = raw
	}
	return metadata
}

// mapGeminiError maps genai API errors to provider errors.
func mapGeminiError(err error) error {
	if err == nil {
		return nil
	}

	if apiErr, ok := err.(*genai.APIError); ok {
		switch apiErr.Code {
		case 401, 403:
			return &provider.Error{
				Code:       provider.ErrorCodeAuth,
				Message:    "authentication failed",
				Underlying: err,
			}
		case 429:
			return &provider.Error{
				Code:       provider.ErrorCodeRateLimit,
				Message:    "rate limit exceeded",
				Underlying: err,
			}
		case 400:
			return &provider.Error{
				Code:       provider.ErrorCodeInvalidRequest,
				Message:    fmt.Sprintf("invalid request: %s", apiErr.Message),
				Underlying: err,
			}
		case 500, 502, 503, 504:
			return &provider.Error{
				Code:       provider.ErrorCodeUnavailable,
				Message:    "service unavailable",
				Underlying: err,
			}
		default:
			return &provider.Error{
				Code:       provider.ErrorCodeNetwork,
				Message:    fmt.Sprintf("API error: %s", apiErr.Message),
				Underlying: err,
			}
		}
	}

	return &provider.Error{
		Code:       provider.ErrorCodeNetwork,
		Message:    "request failed",
		Underlying: err,
	}
}
