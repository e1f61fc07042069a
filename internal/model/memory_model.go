package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// MemoryEntry stores long-term learner observations with a vector embedding
// for semantic recall at session start.
type MemoryEntry struct {
	Id             uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID        `gorm:"type:uuid;not null;index"`
	Content        string           `gorm:"type:text;not null"`
	EmbeddingValue *pgvector.Vector `gorm:"type:vector(768)"` // 768 dims matches text-embedding-004 and nomic-embed-text
	CreatedAt      time.Time        `gorm:"autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"autoUpdateTime"`
}

func (MemoryEntry) TableName() string {
	return "memory_entries"
}
