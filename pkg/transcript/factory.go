package transcript

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewStore selects the durable Redis store when a reachable Redis is
// configured and silently falls back to the in-memory store otherwise.
// Construction never fails: a missing transcript backend must not block
// practice sessions.
func NewStore(redisURL string) Store {
	if redisURL == "" {
		return NewMemoryStore()
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("[WARN] Invalid Redis URL for transcripts: %v. Using in-memory store", err)
		return NewMemoryStore()
	}

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] Redis unreachable for transcripts: %v. Using in-memory store", err)
		return NewMemoryStore()
	}

	return NewRedisStore(rdb)
}
