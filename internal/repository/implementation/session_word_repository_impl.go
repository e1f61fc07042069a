package implementation

import (
	"context"
	"errors"

	"ai-vocabcoach-be/internal/constant"
	"ai-vocabcoach-be/internal/entity"
	"ai-vocabcoach-be/internal/mapper"
	"ai-vocabcoach-be/internal/model"
	"ai-vocabcoach-be/internal/repository/contract"
	"ai-vocabcoach-be/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionWordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PracticeMapper
}

func NewSessionWordRepository(db *gorm.DB) contract.SessionWordRepository {
	return &SessionWordRepositoryImpl{
		db:     db,
		mapper: mapper.NewPracticeMapper(),
	}
}

func (r *SessionWordRepositoryImpl) CreateAll(ctx context.Context, words []*entity.SessionWord) error {
	if len(words) == 0 {
		return nil
	}
	models := make([]*model.SessionWord, len(words))
	for i, sw := range words {
		models[i] = r.mapper.SessionWordToModel(sw)
	}
	return r.db.WithContext(ctx).Create(&models).Error
}

func (r *SessionWordRepositoryImpl) FindAllBySessionId(ctx context.Context, sessionId uuid.UUID) ([]*entity.SessionWord, error) {
	var models []*model.SessionWord
	err := r.db.WithContext(ctx).
		Preload("Word").
		Where("session_id = ?", sessionId).
		Scopes(scope.OrderByWordOrder).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.SessionWordsToEntities(models), nil
}

func (r *SessionWordRepositoryImpl) FindOne(ctx context.Context, wordId, sessionId uuid.UUID) (*entity.SessionWord, error) {
	var m model.SessionWord
	err := r.db.WithContext(ctx).
		Preload("Word").
		Where("word_id = ? AND session_id = ?", wordId, sessionId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SessionWordToEntity(&m), nil
}

// CompleteWord transitions pending -> completed and caches the averaged
// scores. The status guard in the WHERE clause makes the transition
// idempotent: a second advance affects zero rows and reports false.
func (r *SessionWordRepositoryImpl) CompleteWord(ctx context.Context, wordId, sessionId uuid.UUID, scores contract.WordScores) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.SessionWord{}).
		Where("word_id = ? AND session_id = ? AND status = ?", wordId, sessionId, constant.SessionWordPending).
		Updates(map[string]interface{}{
			"status":            constant.SessionWordCompleted,
			"grammar_score":     scores.Grammar,
			"usage_score":       scores.Usage,
			"naturalness_score": scores.Naturalness,
			"is_correct":        scores.IsCorrect,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SkipWord transitions pending -> skipped under the same guard. Skipped
// words keep nil scores.
func (r *SessionWordRepositoryImpl) SkipWord(ctx context.Context, wordId, sessionId uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.SessionWord{}).
		Where("word_id = ? AND session_id = ? AND status = ?", wordId, sessionId, constant.SessionWordPending).
		Updates(map[string]interface{}{
			"status":     constant.SessionWordSkipped,
			"is_skipped": true,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
