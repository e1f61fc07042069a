package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateWordRequest struct {
	Word       string `json:"word" validate:"required"`
	Pinyin     string `json:"pinyin"`
	Meaning    string `json:"meaning" validate:"required"`
	SourceName string `json:"source_name"`
}

type UpdateWordRequest struct {
	Id      uuid.UUID
	Word    string `json:"word" validate:"required"`
	Pinyin  string `json:"pinyin"`
	Meaning string `json:"meaning" validate:"required"`
}

type WordResponse struct {
	Id              uuid.UUID  `json:"id"`
	Word            string     `json:"word"`
	Pinyin          string     `json:"pinyin"`
	Meaning         string     `json:"meaning"`
	ConfidenceScore float64    `json:"confidence_score"`
	Status          string     `json:"status"`
	SourceName      string     `json:"source_name,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

type ImportWordsResponse struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

type ProgressSummaryResponse struct {
	TotalWords    int            `json:"total_words"`
	AverageScore  float64        `json:"average_score"`
	StatusCounts  map[string]int `json:"status_counts"`
	MasteredWords int            `json:"mastered_words"`
}
