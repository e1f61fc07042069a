package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartSessionRequest struct {
	WordCount int `json:"word_count" validate:"omitempty,min=1,max=50"`
}

type SessionWordResponse struct {
	WordId  uuid.UUID `json:"word_id"`
	Word    string    `json:"word"`
	Pinyin  string    `json:"pinyin"`
	Meaning string    `json:"meaning"`
}

type StartSessionResponse struct {
	SessionId   uuid.UUID            `json:"session_id"`
	StartedAt   time.Time            `json:"started_at"`
	WordsTotal  int                  `json:"words_total"`
	CurrentWord *SessionWordResponse `json:"current_word"`
	Greeting    string               `json:"greeting"`
}

type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

type FeedbackResponse struct {
	GrammarScore     float64  `json:"grammar_score"`
	UsageScore       float64  `json:"usage_score"`
	NaturalnessScore float64  `json:"naturalness_score"`
	IsCorrect        bool     `json:"is_correct"`
	Feedback         string   `json:"feedback"`
	Corrections      []string `json:"corrections"`
	Explanations     []string `json:"explanations"`
	ExampleSentences []string `json:"example_sentences"`
}

type SendMessageResponse struct {
	Reply           string               `json:"reply"`
	Feedback        *FeedbackResponse    `json:"feedback,omitempty"`
	AttemptNumber   int                  `json:"attempt_number,omitempty"`
	CurrentWord     *SessionWordResponse `json:"current_word"`
	WordsPracticed  int                  `json:"words_practiced"`
	WordsSkipped    int                  `json:"words_skipped"`
	WordsTotal      int                  `json:"words_total"`
	SessionComplete bool                 `json:"session_complete"`
}

type AdvanceWordResponse struct {
	Reply           string               `json:"reply"`
	AdvancedWord    *WordResultResponse  `json:"advanced_word"`
	CurrentWord     *SessionWordResponse `json:"current_word"`
	WordsPracticed  int                  `json:"words_practiced"`
	WordsSkipped    int                  `json:"words_skipped"`
	WordsTotal      int                  `json:"words_total"`
	SessionComplete bool                 `json:"session_complete"`
}

type WordResultResponse struct {
	WordId           uuid.UUID `json:"word_id"`
	Word             string    `json:"word"`
	Skipped          bool      `json:"skipped"`
	Attempts         int       `json:"attempts"`
	GrammarScore     *float64  `json:"grammar_score,omitempty"`
	UsageScore       *float64  `json:"usage_score,omitempty"`
	NaturalnessScore *float64  `json:"naturalness_score,omitempty"`
	IsCorrect        *bool     `json:"is_correct,omitempty"`
	ConfidenceScore  float64   `json:"confidence_score"`
	Status           string    `json:"status"`
}

type CompleteSessionResponse struct {
	SessionId      uuid.UUID            `json:"session_id"`
	SummaryText    string               `json:"summary_text"`
	WordsPracticed int                  `json:"words_practiced"`
	WordsSkipped   int                  `json:"words_skipped"`
	WordsTotal     int                  `json:"words_total"`
	WordResults    []WordResultResponse `json:"word_results"`
	EndedAt        time.Time            `json:"ended_at"`
}

type SessionHistoryResponse struct {
	SessionId   uuid.UUID  `json:"session_id"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at"`
	WordsTotal  int        `json:"words_total"`
	Completed   bool       `json:"completed"`
	SummaryText string     `json:"summary_text,omitempty"`
}

type SessionStateResponse struct {
	SessionId       uuid.UUID            `json:"session_id"`
	StartedAt       time.Time            `json:"started_at"`
	EndedAt         *time.Time           `json:"ended_at"`
	CurrentWord     *SessionWordResponse `json:"current_word"`
	WordsPracticed  int                  `json:"words_practiced"`
	WordsSkipped    int                  `json:"words_skipped"`
	WordsTotal      int                  `json:"words_total"`
	SessionComplete bool                 `json:"session_complete"`
	SummaryText     string               `json:"summary_text,omitempty"`
}
