package contract

import (
	"context"

	"ai-vocabcoach-be/internal/entity"

	"github.com/google/uuid"
)

type AttemptRepository interface {
	Create(ctx context.Context, attempt *entity.Attempt) error
	// FindAllByWordAndSession returns attempts ordered by attempt_number.
	FindAllByWordAndSession(ctx context.Context, wordId, sessionId uuid.UUID) ([]*entity.Attempt, error)
	CountByWordAndSession(ctx context.Context, wordId, sessionId uuid.UUID) (int64, error)
}
