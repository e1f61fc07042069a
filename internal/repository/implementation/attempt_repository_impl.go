package implementation

import (
	"context"

	"ai-vocabcoach-be/internal/entity"
	"ai-vocabcoach-be/internal/mapper"
	"ai-vocabcoach-be/internal/model"
	"ai-vocabcoach-be/internal/repository/contract"
	"ai-vocabcoach-be/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttemptRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PracticeMapper
}

func NewAttemptRepository(db *gorm.DB) contract.AttemptRepository {
	return &AttemptRepositoryImpl{
		db:     db,
		mapper: mapper.NewPracticeMapper(),
	}
}

func (r *AttemptRepositoryImpl) Create(ctx context.Context, attempt *entity.Attempt) error {
	m := r.mapper.AttemptToModel(attempt)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*attempt = *r.mapper.AttemptToEntity(m)
	return nil
}

func (r *AttemptRepositoryImpl) FindAllByWordAndSession(ctx context.Context, wordId, sessionId uuid.UUID) ([]*entity.Attempt, error) {
	var models []*model.SessionWordAttempt
	err := r.db.WithContext(ctx).
		Where("word_id = ? AND session_id = ?", wordId, sessionId).
		Scopes(scope.OrderByAttemptNumber).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.AttemptsToEntities(models), nil
}

func (r *AttemptRepositoryImpl) CountByWordAndSession(ctx context.Context, wordId, sessionId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SessionWordAttempt{}).
		Where("word_id = ? AND session_id = ?", wordId, sessionId).
		Count(&count).Error
	return count, err
}
