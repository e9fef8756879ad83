package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/darck0ne2011-gif/verifeye-app/internal/domain"
)

const (
	redisKeyPrefix  = "scan:"
	updatedAtField  = "__updated_at"
	redisTimeLayout = time.RFC3339Nano
)

// RedisStore keeps one Redis hash per content hash, one field per
// capability. HSET only touches the written fields, which gives the merge
// its atomicity without any locking on our side.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Find(ctx context.Context, hash string) (*Entry, error) {
	fields, err := s.client.HGetAll(ctx, redisKeyPrefix+hash).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrCacheMiss
	}

	entry := &Entry{
		Hash:    hash,
		Results: make(map[domain.Capability]domain.CapabilityResult, len(fields)),
	}
	for field, value := range fields {
		if field == updatedAtField {
			if t, err := time.Parse(redisTimeLayout, value); err == nil {
				entry.UpdatedAt = t
			}
			continue
		}
		var res domain.CapabilityResult
		if err := json.Unmarshal([]byte(value), &res); err != nil {
			return nil, fmt.Errorf("decode cached result %q: %w", field, err)
		}
		entry.Results[domain.Capability(field)] = res
	}
	return entry, nil
}

func (s *RedisStore) Merge(ctx context.Context, hash string, results map[domain.Capability]domain.CapabilityResult) error {
	if len(results) == 0 {
		return nil
	}

	values := make([]interface{}, 0, 2*(len(results)+1))
	for cap, res := range results {
		encoded, err := json.Marshal(res)
		if err != nil {
			return fmt.Errorf("encode result %q: %w", cap, err)
		}
		values = append(values, string(cap), encoded)
	}
	values = append(values, updatedAtField, time.Now().UTC().Format(redisTimeLayout))

	if err := s.client.HSet(ctx, redisKeyPrefix+hash, values...).Err(); err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}
