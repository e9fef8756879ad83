package cache

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/darck0ne2011-gif/verifeye-app/internal/config"
)

// Backend identifies a result store implementation.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendRedis    Backend = "redis"
	BackendMemory   Backend = "memory"
)

// NewStore builds the result store selected by CACHE_BACKEND.
//
// Environment variables:
//   - CACHE_BACKEND: "postgres", "redis" or "memory" (default: "postgres")
//   - REDIS_ADDR, REDIS_DB: Redis connection settings
func NewStore(cfg *config.Config, pool *pgxpool.Pool) (ResultStore, error) {
	switch Backend(cfg.CacheBackend) {
	case BackendPostgres, "":
		return NewPGStore(pool), nil

	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		return NewRedisStore(client), nil

	case BackendMemory:
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown cache backend: %s (supported: %s, %s, %s)",
			cfg.CacheBackend, BackendPostgres, BackendRedis, BackendMemory)
	}
}
