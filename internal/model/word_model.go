package model

import (
	"time"

	"github.com/google/uuid"
)

type Word struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;index"`
	Word            string    `gorm:"type:varchar(150);not null"`
	Pinyin          string    `gorm:"type:varchar(150);not null"`
	Meaning         string    `gorm:"type:varchar(300);not null"`
	ConfidenceScore float64   `gorm:"not null;default:0.5"`
	SourceName      *string   `gorm:"type:varchar(200)"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Word) TableName() string {
	return "words"
}
