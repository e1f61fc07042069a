package dto

import "github.com/google/uuid"

// PublishEmbedMemoryMessage is the async job payload for embedding a memory
// entry after it is stored.
type PublishEmbedMemoryMessage struct {
	MemoryId uuid.UUID `json:"memory_id"`
}
