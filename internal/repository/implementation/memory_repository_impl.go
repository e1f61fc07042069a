package implementation

import (
	"context"

	"ai-vocabcoach-be/internal/entity"
	"ai-vocabcoach-be/internal/mapper"
	"ai-vocabcoach-be/internal/model"
	"ai-vocabcoach-be/internal/repository/contract"
	"ai-vocabcoach-be/internal/repository/scope"
	"ai-vocabcoach-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MemoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MemoryMapper
}

func NewMemoryRepository(db *gorm.DB) contract.MemoryRepository {
	return &MemoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewMemoryMapper(),
	}
}

func (r *MemoryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MemoryRepositoryImpl) Create(ctx context.Context, entry *entity.MemoryEntry) error {
	m := &model.MemoryEntry{
		Id:      entry.Id,
		UserId:  entry.UserId,
		Content: entry.Content,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *MemoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MemoryEntry, error) {
	var models []*model.MemoryEntry
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByCreatedDesc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MemoryRepositoryImpl) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	vec := pgvector.NewVector(embedding)
	return r.db.WithContext(ctx).Model(&model.MemoryEntry{}).
		Where("id = ?", id).
		Update("embedding_value", vec).Error
}

// SearchNearest uses the pgvector cosine distance operator. Entries without
// an embedding are excluded, they have not been processed yet.
func (r *MemoryRepositoryImpl) SearchNearest(ctx context.Context, userId uuid.UUID, embedding []float32, limit int) ([]*entity.MemoryEntry, error) {
	var models []*model.MemoryEntry
	vec := pgvector.NewVector(embedding)
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND embedding_value IS NOT NULL", userId).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "embedding_value <=> ?",
			Vars: []interface{}{vec},
		}}).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
