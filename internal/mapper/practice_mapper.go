package mapper

import (
	"encoding/json"

	"ai-vocabcoach-be/internal/entity"
	"ai-vocabcoach-be/internal/model"

	"gorm.io/datatypes"
)

type PracticeMapper struct {
	wordMapper *WordMapper
}

func NewPracticeMapper() *PracticeMapper {
	return &PracticeMapper{wordMapper: NewWordMapper()}
}

// Session mappers

func (m *PracticeMapper) SessionToEntity(s *model.PracticeSession) *entity.PracticeSession {
	if s == nil {
		return nil
	}
	return &entity.PracticeSession{
		Id:              s.Id,
		UserId:          s.UserId,
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		WordsPerSession: s.WordsPerSession,
		SummaryText:     s.SummaryText,
	}
}

func (m *PracticeMapper) SessionToModel(s *entity.PracticeSession) *model.PracticeSession {
	if s == nil {
		return nil
	}
	return &model.PracticeSession{
		Id:              s.Id,
		UserId:          s.UserId,
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		WordsPerSession: s.WordsPerSession,
		SummaryText:     s.SummaryText,
	}
}

func (m *PracticeMapper) SessionsToEntities(models []*model.PracticeSession) []*entity.PracticeSession {
	entities := make([]*entity.PracticeSession, len(models))
	for i, s := range models {
		entities[i] = m.SessionToEntity(s)
	}
	return entities
}

// SessionWord mappers

func (m *PracticeMapper) SessionWordToEntity(sw *model.SessionWord) *entity.SessionWord {
	if sw == nil {
		return nil
	}
	return &entity.SessionWord{
		WordId:           sw.WordId,
		SessionId:        sw.SessionId,
		WordOrder:        sw.WordOrder,
		Status:           sw.Status,
		IsSkipped:        sw.IsSkipped,
		GrammarScore:     sw.GrammarScore,
		UsageScore:       sw.UsageScore,
		NaturalnessScore: sw.NaturalnessScore,
		IsCorrect:        sw.IsCorrect,
		LoadedAt:         sw.LoadedAt,
		Word:             m.wordMapper.ToEntity(sw.Word),
	}
}

func (m *PracticeMapper) SessionWordToModel(sw *entity.SessionWord) *model.SessionWord {
	if sw == nil {
		return nil
	}
	return &model.SessionWord{
		WordId:           sw.WordId,
		SessionId:        sw.SessionId,
		WordOrder:        sw.WordOrder,
		Status:           sw.Status,
		IsSkipped:        sw.IsSkipped,
		GrammarScore:     sw.GrammarScore,
		UsageScore:       sw.UsageScore,
		NaturalnessScore: sw.NaturalnessScore,
		IsCorrect:        sw.IsCorrect,
		LoadedAt:         sw.LoadedAt,
	}
}

func (m *PracticeMapper) SessionWordsToEntities(models []*model.SessionWord) []*entity.SessionWord {
	entities := make([]*entity.SessionWord, len(models))
	for i, sw := range models {
		entities[i] = m.SessionWordToEntity(sw)
	}
	return entities
}

// Attempt mappers

func (m *PracticeMapper) AttemptToEntity(a *model.SessionWordAttempt) *entity.Attempt {
	if a == nil {
		return nil
	}
	return &entity.Attempt{
		Id:               a.Id,
		WordId:           a.WordId,
		SessionId:        a.SessionId,
		AttemptNumber:    a.AttemptNumber,
		Sentence:         a.Sentence,
		GrammarScore:     a.GrammarScore,
		UsageScore:       a.UsageScore,
		NaturalnessScore: a.NaturalnessScore,
		IsCorrect:        a.IsCorrect,
		FeedbackText:     a.FeedbackText,
		Corrections:      jsonToStrings(a.Corrections),
		Explanations:     jsonToStrings(a.Explanations),
		ExampleSentences: jsonToStrings(a.ExampleSentences),
		CreatedAt:        a.CreatedAt,
	}
}

func (m *PracticeMapper) AttemptToModel(a *entity.Attempt) *model.SessionWordAttempt {
	if a == nil {
		return nil
	}
	return &model.SessionWordAttempt{
		Id:               a.Id,
		WordId:           a.WordId,
		SessionId:        a.SessionId,
		AttemptNumber:    a.AttemptNumber,
		Sentence:         a.Sentence,
		GrammarScore:     a.GrammarScore,
		UsageScore:       a.UsageScore,
		NaturalnessScore: a.NaturalnessScore,
		IsCorrect:        a.IsCorrect,
		FeedbackText:     a.FeedbackText,
		Corrections:      stringsToJSON(a.Corrections),
		Explanations:     stringsToJSON(a.Explanations),
		ExampleSentences: stringsToJSON(a.ExampleSentences),
		CreatedAt:        a.CreatedAt,
	}
}

func (m *PracticeMapper) AttemptsToEntities(models []*model.SessionWordAttempt) []*entity.Attempt {
	entities := make([]*entity.Attempt, len(models))
	for i, a := range models {
		entities[i] = m.AttemptToEntity(a)
	}
	return entities
}

func jsonToStrings(data datatypes.JSON) []string {
	if len(data) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return []string{}
	}
	return out
}

func stringsToJSON(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}
