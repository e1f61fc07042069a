package transcript

import (
	"context"
	"time"
)

// Message is one turn in a session's conversation history.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Store keeps the append-only conversation history for practice sessions,
// keyed by session id. History is never shared across sessions and its
// lifetime matches the session's.
type Store interface {
	Append(ctx context.Context, sessionId string, messages ...Message) error
	History(ctx context.Context, sessionId string) ([]Message, error)
	Clear(ctx context.Context, sessionId string) error
}
