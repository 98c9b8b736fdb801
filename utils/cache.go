package utils

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NewAuthCache creates the Redis client used by the guards to cache
// identity snapshots. The guards fall back to the database when the cache
// is unreachable, so a failed ping only logs a warning.
func NewAuthCache(addr, password string, db int) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		GetLogger().Warn("auth cache unavailable, guards will fall back to DB lookups", zap.Error(err))
	}
	return client
}
