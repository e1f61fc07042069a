package entity

import (
	"time"

	"github.com/google/uuid"
)

type PracticeSession struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	StartedAt       time.Time
	EndedAt         *time.Time
	WordsPerSession int
	SummaryText     *string
}

// IsClosed reports whether the session has been finalised. Closed sessions
// reject further turns and advances.
func (s *PracticeSession) IsClosed() bool {
	return s.EndedAt != nil
}

// SessionWord binds one word to one session. The composite key is
// (WordId, SessionId); WordOrder defines iteration order within the session.
// The cached score fields are written once, when the word is advanced past.
type SessionWord struct {
	WordId           uuid.UUID
	SessionId        uuid.UUID
	WordOrder        int
	Status           int
	IsSkipped        bool
	GrammarScore     *float64
	UsageScore       *float64
	NaturalnessScore *float64
	IsCorrect        *bool
	LoadedAt         time.Time
	Word             *Word
}

// Attempt is one scored sentence submission for a (word, session) pair.
// Attempts are append-only; they are never mutated or deleted.
type Attempt struct {
	Id               uuid.UUID
	WordId           uuid.UUID
	SessionId        uuid.UUID
	AttemptNumber    int
	Sentence         string
	GrammarScore     float64
	UsageScore       float64
	NaturalnessScore float64
	IsCorrect        bool
	FeedbackText     string
	Corrections      []string
	Explanations     []string
	ExampleSentences []string
	CreatedAt        time.Time
}
