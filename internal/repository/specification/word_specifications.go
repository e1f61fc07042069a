package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WordOwnedByUser struct {
	UserID uuid.UUID
}

func (s WordOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("words.user_id = ?", s.UserID)
}

// EligibleForPractice keeps words below the mastery cutoff.
type EligibleForPractice struct {
	MasteryThreshold float64
}

func (s EligibleForPractice) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("confidence_score < ?", s.MasteryThreshold)
}

type BySourceName struct {
	SourceName string
}

func (s BySourceName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("source_name = ?", s.SourceName)
}

type ByWordText struct {
	Word string
}

func (s ByWordText) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("word = ?", s.Word)
}
