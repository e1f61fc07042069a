package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PracticeSession struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;index"`
	StartedAt       time.Time `gorm:"not null"`
	EndedAt         *time.Time
	WordsPerSession int     `gorm:"not null"`
	SummaryText     *string `gorm:"type:text"`
}

func (PracticeSession) TableName() string {
	return "practice_sessions"
}

// SessionWord carries the per-session lifecycle of one word. Status is the
// column the atomic pending -> completed/skipped transition is guarded on.
type SessionWord struct {
	WordId           uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId        uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	WordOrder        int       `gorm:"not null"`
	Status           int       `gorm:"not null;default:0"`
	IsSkipped        bool      `gorm:"default:false"`
	GrammarScore     *float64
	UsageScore       *float64
	NaturalnessScore *float64
	IsCorrect        *bool
	LoadedAt         time.Time `gorm:"not null"`

	Word *Word `gorm:"foreignKey:WordId"`
}

func (SessionWord) TableName() string {
	return "session_words"
}

type SessionWordAttempt struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	WordId           uuid.UUID      `gorm:"type:uuid;not null;index:idx_attempt_word_session"`
	SessionId        uuid.UUID      `gorm:"type:uuid;not null;index:idx_attempt_word_session"`
	AttemptNumber    int            `gorm:"not null"`
	Sentence         string         `gorm:"type:text;not null"`
	GrammarScore     float64        `gorm:"not null"`
	UsageScore       float64        `gorm:"not null"`
	NaturalnessScore float64        `gorm:"not null"`
	IsCorrect        bool           `gorm:"not null;default:false"`
	FeedbackText     string         `gorm:"type:text"`
	Corrections      datatypes.JSON `gorm:"type:jsonb"`
	Explanations     datatypes.JSON `gorm:"type:jsonb"`
	ExampleSentences datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
}

func (SessionWordAttempt) TableName() string {
	return "session_word_attempts"
}
