package contract

import (
	"context"

	"ai-vocabcoach-be/internal/entity"
	"ai-vocabcoach-be/internal/repository/specification"

	"github.com/google/uuid"
)

type WordRepository interface {
	Create(ctx context.Context, word *entity.Word) error
	CreateAll(ctx context.Context, words []*entity.Word) error
	Update(ctx context.Context, word *entity.Word) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Word, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Word, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Business Specific
	FindEligibleByUserId(ctx context.Context, userId uuid.UUID, masteryThreshold float64) ([]*entity.Word, error)
	UpdateConfidence(ctx context.Context, wordId uuid.UUID, score float64) error
}
