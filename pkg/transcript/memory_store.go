package transcript

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore is the ephemeral fallback used when Redis is unavailable.
// Histories vanish on restart, which degrades conversation continuity but
// never fails a turn.
type MemoryStore struct {
	cache *cache.Cache
}

var _ Store = &MemoryStore{}

func NewMemoryStore() *MemoryStore {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &MemoryStore{cache: c}
}

func (s *MemoryStore) Append(_ context.Context, sessionId string, messages ...Message) error {
	history, _ := s.get(sessionId)
	history = append(history, messages...)
	s.cache.Set(sessionId, history, cache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) History(_ context.Context, sessionId string) ([]Message, error) {
	history, _ := s.get(sessionId)
	return history, nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionId string) error {
	s.cache.Delete(sessionId)
	return nil
}

func (s *MemoryStore) get(sessionId string) ([]Message, bool) {
	if x, found := s.cache.Get(sessionId); found {
		return x.([]Message), true
	}
	return nil, false
}
