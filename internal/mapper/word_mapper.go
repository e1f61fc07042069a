package mapper

import (
	"time"

	"ai-vocabcoach-be/internal/entity"
	"ai-vocabcoach-be/internal/model"
)

type WordMapper struct{}

func NewWordMapper() *WordMapper {
	return &WordMapper{}
}

func (m *WordMapper) ToEntity(w *model.Word) *entity.Word {
	if w == nil {
		return nil
	}

	var updatedAt *time.Time
	if !w.UpdatedAt.IsZero() {
		t := w.UpdatedAt
		updatedAt = &t
	}

	return &entity.Word{
		Id:              w.Id,
		UserId:          w.UserId,
		Word:            w.Word,
		Pinyin:          w.Pinyin,
		Meaning:         w.Meaning,
		ConfidenceScore: w.ConfidenceScore,
		SourceName:      w.SourceName,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *WordMapper) ToModel(w *entity.Word) *model.Word {
	if w == nil {
		return nil
	}

	var updatedAt time.Time
	if w.UpdatedAt != nil {
		updatedAt = *w.UpdatedAt
	}

	return &model.Word{
		Id:              w.Id,
		UserId:          w.UserId,
		Word:            w.Word,
		Pinyin:          w.Pinyin,
		Meaning:         w.Meaning,
		ConfidenceScore: w.ConfidenceScore,
		SourceName:      w.SourceName,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *WordMapper) ToEntities(models []*model.Word) []*entity.Word {
	entities := make([]*entity.Word, len(models))
	for i, w := range models {
		entities[i] = m.ToEntity(w)
	}
	return entities
}
