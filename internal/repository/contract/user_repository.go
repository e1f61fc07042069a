package contract

import (
	"context"

	"ai-vocabcoach-be/internal/entity"
	"ai-vocabcoach-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Business Specific
	UpdatePassword(ctx context.Context, userId uuid.UUID, hash string) error
	UpdatePreferences(ctx context.Context, userId uuid.UUID, preferredName *string, wordsPerSession *int) error
}
