package core

import "github.com/google/uuid"

// Conversation roles. The concierge only ever produces user and assistant
// turns; system content is injected as prompt instructions, not history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged conversation turn.
type Message struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// NewMessage creates a message with a fresh UUID.
func NewMessage(role, content string) Message {
	return Message{ID: NewID(), Role: role, Content: content}
}

// NewID generates a unique identifier for messages and sessions.
func NewID() string { return uuid.NewString() }

// LastN returns the trailing window of at most n messages. The slice aliases
// the input; callers must not mutate it.
func LastN(messages []Message, n int) []Message {
	if n <= 0 || len(messages) <= n {
		return messages
	}
	return messages[len(messages)-n:]
}
