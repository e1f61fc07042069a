package entity

import (
	"time"

	"ai-vocabcoach-be/pkg/confidence"

	"github.com/google/uuid"
)

type Word struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	Word            string
	Pinyin          string
	Meaning         string
	ConfidenceScore float64
	SourceName      *string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// Status derives the categorical mastery label from the confidence score.
func (w *Word) Status() string {
	return confidence.StatusFor(w.ConfidenceScore)
}
