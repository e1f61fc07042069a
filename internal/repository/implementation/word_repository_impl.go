package implementation

import (
	"context"
	"errors"

	"ai-vocabcoach-be/internal/entity"
	"ai-vocabcoach-be/internal/mapper"
	"ai-vocabcoach-be/internal/model"
	"ai-vocabcoach-be/internal/repository/contract"
	"ai-vocabcoach-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WordMapper
}

func NewWordRepository(db *gorm.DB) contract.WordRepository {
	return &WordRepositoryImpl{
		db:     db,
		mapper: mapper.NewWordMapper(),
	}
}

func (r *WordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *WordRepositoryImpl) Create(ctx context.Context, word *entity.Word) error {
	modelWord := r.mapper.ToModel(word)
	if err := r.db.WithContext(ctx).Create(modelWord).Error; err != nil {
		return err
	}
	*word = *r.mapper.ToEntity(modelWord)
	return nil
}

func (r *WordRepositoryImpl) CreateAll(ctx context.Context, words []*entity.Word) error {
	if len(words) == 0 {
		return nil
	}
	models := make([]*model.Word, len(words))
	for i, w := range words {
		models[i] = r.mapper.ToModel(w)
	}
	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*words[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *WordRepositoryImpl) Update(ctx context.Context, word *entity.Word) error {
	modelWord := r.mapper.ToModel(word)
	if err := r.db.WithContext(ctx).Save(modelWord).Error; err != nil {
		return err
	}
	*word = *r.mapper.ToEntity(modelWord)
	return nil
}

func (r *WordRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Word{}).Error
}

func (r *WordRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.Word{})
	return result.RowsAffected, result.Error
}

func (r *WordRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Word, error) {
	var modelWord model.Word
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelWord).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelWord), nil
}

func (r *WordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Word, error) {
	var modelWords []*model.Word
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelWords).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelWords), nil
}

func (r *WordRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Word{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *WordRepositoryImpl) FindEligibleByUserId(ctx context.Context, userId uuid.UUID, masteryThreshold float64) ([]*entity.Word, error) {
	return r.FindAll(ctx,
		specification.WordOwnedByUser{UserID: userId},
		specification.EligibleForPractice{MasteryThreshold: masteryThreshold},
	)
}

func (r *WordRepositoryImpl) UpdateConfidence(ctx context.Context, wordId uuid.UUID, score float64) error {
	return r.db.WithContext(ctx).Model(&model.Word{}).
		Where("id = ?", wordId).
		Update("confidence_score", score).Error
}
