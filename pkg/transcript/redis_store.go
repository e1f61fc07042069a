package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const transcriptTTL = 24 * time.Hour

// RedisStore persists transcripts as a Redis list per session, so history
// survives process restarts and horizontal scaling.
type RedisStore struct {
	rdb *redis.Client
}

var _ Store = &RedisStore{}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func transcriptKey(sessionId string) string {
	return "practice:session:" + sessionId
}

func (s *RedisStore) Append(ctx context.Context, sessionId string, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}
	key := transcriptKey(sessionId)
	values := make([]interface{}, 0, len(messages))
	for _, msg := range messages {
		data, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("marshal transcript message: %w", err)
		}
		values = append(values, data)
	}
	if err := s.rdb.RPush(ctx, key, values...).Err(); err != nil {
		return fmt.Errorf("append transcript: %w", err)
	}
	// Sessions are short-lived; let stale transcripts expire on their own.
	return s.rdb.Expire(ctx, key, transcriptTTL).Err()
}

func (s *RedisStore) History(ctx context.Context, sessionId string) ([]Message, error) {
	raw, err := s.rdb.LRange(ctx, transcriptKey(sessionId), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	messages := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue // skip unreadable entries rather than failing the turn
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionId string) error {
	return s.rdb.Del(ctx, transcriptKey(sessionId)).Err()
}
