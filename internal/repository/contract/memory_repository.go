package contract

import (
	"context"

	"ai-vocabcoach-be/internal/entity"
	"ai-vocabcoach-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MemoryRepository interface {
	Create(ctx context.Context, entry *entity.MemoryEntry) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MemoryEntry, error)
	UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error
	// SearchNearest ranks a user's embedded entries by cosine distance to
	// the query vector.
	SearchNearest(ctx context.Context, userId uuid.UUID, embedding []float32, limit int) ([]*entity.MemoryEntry, error)
}
