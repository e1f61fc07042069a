package entity

import (
	"time"

	"github.com/google/uuid"
)

// MemoryEntry is one long-term observation about a learner, kept across
// sessions. The embedding is generated asynchronously after creation.
type MemoryEntry struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Content      string
	HasEmbedding bool
	CreatedAt    time.Time
}
