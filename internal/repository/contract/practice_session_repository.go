package contract

import (
	"context"
	"time"

	"ai-vocabcoach-be/internal/entity"
	"ai-vocabcoach-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PracticeSessionRepository interface {
	Create(ctx context.Context, session *entity.PracticeSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PracticeSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PracticeSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Close finalises a session exactly once. It reports false when the
	// session was already closed.
	Close(ctx context.Context, sessionId uuid.UUID, summaryText string, endedAt time.Time) (bool, error)
}
