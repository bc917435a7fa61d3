package types

import "time"

// MessageRole identifies who authored a chat message.
type MessageRole string

// Message roles.
const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one chat turn. ID is assigned by whichever store persists the
// message; gateway callers may leave it empty.
type Message struct {
	ID        string      `json:"id,omitempty"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at,omitempty"`
}

// Conversation is an ordered chat thread. Messages are oldest first.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// titleMaxLen is where a derived conversation title gets cut.
const titleMaxLen = 50

// DeriveTitle builds a conversation title from its first user message:
// content up to 50 characters, with an ellipsis when truncated.
func DeriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= titleMaxLen {
		return content
	}
	return string(runes[:titleMaxLen]) + "..."
}
