package mapper

import (
	"ai-vocabcoach-be/internal/entity"
	"ai-vocabcoach-be/internal/model"
)

type MemoryMapper struct{}

func NewMemoryMapper() *MemoryMapper {
	return &MemoryMapper{}
}

func (m *MemoryMapper) ToEntity(e *model.MemoryEntry) *entity.MemoryEntry {
	if e == nil {
		return nil
	}
	return &entity.MemoryEntry{
		Id:           e.Id,
		UserId:       e.UserId,
		Content:      e.Content,
		HasEmbedding: e.EmbeddingValue != nil,
		CreatedAt:    e.CreatedAt,
	}
}

func (m *MemoryMapper) ToEntities(models []*model.MemoryEntry) []*entity.MemoryEntry {
	entities := make([]*entity.MemoryEntry, len(models))
	for i, e := range models {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
