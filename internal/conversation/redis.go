package conversation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/formianlabs/resonance/internal/dimension"
)

// RedisStore keeps each conversation window in a Redis list, JSON-encoded
// one turn per element. RPUSH+LTRIM keeps the list bounded atomically, so
// concurrent appends to the same conversation cannot grow it past MaxTurns.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "resonance"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(conversationID string) string {
	return fmt.Sprintf("%s:window:%s", s.prefix, conversationID)
}

func (s *RedisStore) Window(ctx context.Context, conversationID string) ([]dimension.Turn, error) {
	raw, err := s.client.LRange(ctx, s.key(conversationID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read window: %w", err)
	}
	turns := make([]dimension.Turn, 0, len(raw))
	for _, item := range raw {
		var turn dimension.Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, fmt.Errorf("decode turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (s *RedisStore) Append(ctx context.Context, conversationID string, turn dimension.Turn) error {
	payload, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("encode turn: %w", err)
	}
	key := s.key(conversationID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, payload)
	pipe.LTrim(ctx, key, -int64(MaxTurns), -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append turn: %w", err)
	}
	return nil
}
