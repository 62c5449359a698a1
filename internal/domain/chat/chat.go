package chat

import (
	"context"
	"time"
)

// ===============================================
// Chat Types
// ===============================================

// Sender identifies the author of a message. The set is closed: transcripts
// only ever contain customer turns and agent turns.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Valid reports whether s is one of the permitted sender values.
func (s Sender) Valid() bool {
	return s == SenderUser || s == SenderAI
}

// Conversation is a session-scoped transcript identified by its public id.
type Conversation struct {
	ID        uint      `json:"-"`
	PublicID  string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is one immutable turn in a conversation. Messages are append-only:
// no update, no delete.
type Message struct {
	ID             uint      `json:"id"`
	ConversationID uint      `json:"-"`
	Sender         Sender    `json:"sender"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"timestamp"`
}

// ===============================================
// Conversation Store
// ===============================================

// ConversationStore is the persistence contract shared by the durable
// (postgres) and volatile (in-memory) backends. A conversation must exist
// before any message referencing it is appended.
type ConversationStore interface {
	// Exists never fails for a well-formed id; unknown ids report false.
	Exists(ctx context.Context, publicID string) (bool, error)
	// Create fails with a Conflict error when the id is already taken. Callers
	// are expected to check Exists first; hitting the conflict is a caller
	// contract violation, not a normal outcome.
	Create(ctx context.Context, publicID string) (*Conversation, error)
	// Append fails with a NotFound error when the conversation was never
	// created. The returned message carries the store-assigned id and
	// timestamp and is immediately visible to subsequent History calls on the
	// same store instance.
	Append(ctx context.Context, publicID string, sender Sender, text string) (*Message, error)
	// History returns all messages in ascending timestamp order, insertion
	// order breaking ties. Unknown ids yield an empty slice, not an error.
	History(ctx context.Context, publicID string) ([]Message, error)
}

// ===============================================
// Model Collaborator
// ===============================================

// CompletionClient is the external model collaborator: it accepts a built
// prompt and returns a single textual completion. Implementations map
// upstream failures (auth rejection, rate limiting, unavailability) onto the
// platform error taxonomy.
type CompletionClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}
