package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects and pings. It returns nil when addr is empty or the
// server is unreachable, and callers fall back to NoopCache and an open rate limiter.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}

// New picks RedisCache when a client is available.
func New(client *redis.Client, prefix string) Cache {
	if client == nil {
		return NoopCache{}
	}
	return NewRedisCache(client, prefix)
}
