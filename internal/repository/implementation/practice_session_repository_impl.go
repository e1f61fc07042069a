package implementation

import (
	"context"
	"errors"
	"time"

	"ai-vocabcoach-be/internal/entity"
	"ai-vocabcoach-be/internal/mapper"
	"ai-vocabcoach-be/internal/model"
	"ai-vocabcoach-be/internal/repository/contract"
	"ai-vocabcoach-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PracticeSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PracticeMapper
}

func NewPracticeSessionRepository(db *gorm.DB) contract.PracticeSessionRepository {
	return &PracticeSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewPracticeMapper(),
	}
}

func (r *PracticeSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PracticeSessionRepositoryImpl) Create(ctx context.Context, session *entity.PracticeSession) error {
	modelSession := r.mapper.SessionToModel(session)
	if err := r.db.WithContext(ctx).Create(modelSession).Error; err != nil {
		return err
	}
	*session = *r.mapper.SessionToEntity(modelSession)
	return nil
}

func (r *PracticeSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PracticeSession, error) {
	var modelSession model.PracticeSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelSession).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.SessionToEntity(&modelSession), nil
}

func (r *PracticeSessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PracticeSession, error) {
	var modelSessions []*model.PracticeSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelSessions).Error; err != nil {
		return nil, err
	}

	return r.mapper.SessionsToEntities(modelSessions), nil
}

func (r *PracticeSessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.PracticeSession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Close finalises the session with a check-and-set on ended_at, so a session
// can only be closed once even under concurrent completion requests.
func (r *PracticeSessionRepositoryImpl) Close(ctx context.Context, sessionId uuid.UUID, summaryText string, endedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.PracticeSession{}).
		Where("id = ? AND ended_at IS NULL", sessionId).
		Updates(map[string]interface{}{
			"ended_at":     endedAt,
			"summary_text": summaryText,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
