// Package chat defines the conversation data model: messages, roles,
// tool calls, and the append-only Store that holds a session's history.
package chat

// Role constants, provider-agnostic.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a single function invocation requested by the model.
// Arguments is the raw JSON argument object as produced by the model.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Message is one turn of a conversation. A message is immutable once
// appended to a Store.
//
// An assistant message carries either Content or ToolCalls. A tool
// message carries the result of one call and echoes its ToolCallID.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}
