package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-guide-assistant/pkg/llm"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "guide:session:"

// RedisStore keeps each history as a Redis list of JSON-encoded turns so that
// several server instances share sessions.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a store. A ttl of 0 keeps sessions forever; otherwise
// every append refreshes the expiry.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func redisKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}

func (s *RedisStore) History(ctx context.Context, sessionID string) ([]llm.Message, error) {
	raw, err := s.rdb.LRange(ctx, redisKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: read history %s: %v", ErrSessionStore, sessionID, err)
	}

	history := make([]llm.Message, 0, len(raw))
	for i, item := range raw {
		var msg llm.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("%w: decode turn %d of %s: %v", ErrSessionStore, i, sessionID, err)
		}
		history = append(history, msg)
	}
	return history, nil
}

func (s *RedisStore) Append(ctx context.Context, sessionID string, turns ...llm.Message) error {
	if len(turns) == 0 {
		return nil
	}

	values := make([]interface{}, len(turns))
	for i, turn := range turns {
		data, err := json.Marshal(turn)
		if err != nil {
			return fmt.Errorf("encode turn: %w", err)
		}
		values[i] = data
	}

	key := redisKey(sessionID)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, values...)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: append to %s: %v", ErrSessionStore, sessionID, err)
	}
	return nil
}
