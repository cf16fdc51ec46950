package chat

// Store is an append-only, ordered record of a conversation. It is
// seeded with a single system message at construction; that message is
// never removed. Identity is positional: insertion order is causal
// order.
//
// Store has a single writer (the conversation loop) and is not safe
// for concurrent use.
type Store struct {
	messages []Message
}

// NewStore creates a Store seeded with the given system instruction.
func NewStore(systemPrompt string) *Store {
	return &Store{
		messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
		},
	}
}

// Append adds a message to the end of the history.
func (s *Store) Append(msg Message) {
	s.messages = append(s.messages, msg)
}

// All returns a copy of the full ordered history. Callers may not
// mutate stored messages through the returned slice.
func (s *Store) All() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages, including the system message.
func (s *Store) Len() int {
	return len(s.messages)
}
