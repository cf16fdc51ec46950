package openai

import (
	"encoding/json"

	sdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"

	"github.com/parleyhq/parley/internal/chat"
	"github.com/parleyhq/parley/internal/provider"
)

// --- conversion helpers: internal types → Chat Completions params ---

func toChatMessages(msgs []chat.Message) []sdk.ChatCompletionMessageParamUnion {
	out := make([]sdk.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case chat.RoleSystem:
			out = append(out, sdk.ChatCompletionMessageParamUnion{
				OfSystem: &sdk.ChatCompletionSystemMessageParam{
					Content: sdk.ChatCompletionSystemMessageParamContentUnion{
						OfString: sdk.String(m.Content),
					},
				},
			})
		case chat.RoleUser:
			out = append(out, sdk.ChatCompletionMessageParamUnion{
				OfUser: &sdk.ChatCompletionUserMessageParam{
					Content: sdk.ChatCompletionUserMessageParamContentUnion{
						OfString: sdk.String(m.Content),
					},
				},
			})
		case chat.RoleAssistant:
			asst := &sdk.ChatCompletionAssistantMessageParam{
				Content: sdk.ChatCompletionAssistantMessageParamContentUnion{
					OfString: sdk.String(m.Content),
				},
			}
			for _, tc := range m.ToolCalls {
				asst.ToolCalls = append(asst.ToolCalls, sdk.ChatCompletionMessageToolCallUnionParam{
					OfFunction: &sdk.ChatCompletionMessageFunctionToolCallParam{
						ID: tc.ID,
						Function: sdk.ChatCompletionMessageFunctionToolCallFunctionParam{
							Name:      tc.Name,
							Arguments: tc.Arguments,
						},
					},
				})
			}
			out = append(out, sdk.ChatCompletionMessageParamUnion{OfAssistant: asst})
		case chat.RoleTool:
			out = append(out, sdk.ChatCompletionMessageParamUnion{
				OfTool: &sdk.ChatCompletionToolMessageParam{
					ToolCallID: m.ToolCallID,
					Content: sdk.ChatCompletionToolMessageParamContentUnion{
						OfString: sdk.String(m.Content),
					},
				},
			})
		}
	}
	return out
}

func toChatTools(defs []provider.ToolDefinition) []sdk.ChatCompletionToolUnionParam {
	out := make([]sdk.ChatCompletionToolUnionParam, len(defs))
	for i, d := range defs {
		out[i] = sdk.ChatCompletionToolUnionParam{
			OfFunction: &sdk.ChatCompletionFunctionToolParam{
				Function: shared.FunctionDefinitionParam{
					Name:        d.Name,
					Description: sdk.String(d.Description),
					Parameters:  schemaToParameters(d.Parameters),
				},
			},
		}
	}
	return out
}

// schemaToParameters flattens a ParameterSchema into the free-form map
// the SDK expects. The schema types marshal directly to JSON Schema,
// so a JSON round trip is sufficient.
func schemaToParameters(s *provider.ParameterSchema) shared.FunctionParameters {
	if s == nil {
		return nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return shared.FunctionParameters(m)
}

// --- conversion helpers: Chat Completions output → internal types ---

func fromChatCompletion(resp *sdk.ChatCompletion, model string, latencyMs int64) (*provider.GenerateResponse, error) {
	if len(resp.Choices) == 0 {
		return nil, &provider.Error{
			Code:    provider.ErrorCodeMalformed,
			Message: "no choices in response",
		}
	}

	msg := resp.Choices[0].Message

	metadata := provider.ResponseMetadata{
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
		TotalTokens:      int(resp.Usage.TotalTokens),
		ModelUsed:        model,
		LatencyMs:        latencyMs,
		Raw:              json.RawMessage(resp.RawJSON()),
	}
	if resp.Model != "" {
		metadata.ModelUsed = resp.Model
	}

	var toolCalls []chat.ToolCall
	for _, tc := range msg.ToolCalls {
		if tc.Type != "function" {
			continue
		}
		toolCalls = append(toolCalls, chat.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
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

	if msg.Content == "" {
		return nil, &provider.Error{
			Code:    provider.ErrorCodeMalformed,
			Message: "completion carries neither content nor tool calls",
		}
	}

	return &provider.GenerateResponse{
		Content: provider.ResponseContent{
			Type: provider.ResponseTypeText,
			Text: msg.Content,
		},
		Metadata: metadata,
	}, nil
}
