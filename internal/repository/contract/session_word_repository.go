package contract

import (
	"context"

	"ai-vocabcoach-be/internal/entity"

	"github.com/google/uuid"
)

// WordScores carries the averaged per-dimension scores cached on a session
// word when it is completed.
type WordScores struct {
	Grammar     float64
	Usage       float64
	Naturalness float64
	IsCorrect   bool
}

type SessionWordRepository interface {
	CreateAll(ctx context.Context, words []*entity.SessionWord) error
	// FindAllBySessionId returns the session roster with words preloaded,
	// ordered by word_order.
	FindAllBySessionId(ctx context.Context, sessionId uuid.UUID) ([]*entity.SessionWord, error)
	FindOne(ctx context.Context, wordId, sessionId uuid.UUID) (*entity.SessionWord, error)

	// CompleteWord and SkipWord transition a pending word exactly once.
	// Both report false when the word was already advanced, so concurrent
	// advances cannot double-apply.
	CompleteWord(ctx context.Context, wordId, sessionId uuid.UUID, scores WordScores) (bool, error)
	SkipWord(ctx context.Context, wordId, sessionId uuid.UUID) (bool, error)
}
