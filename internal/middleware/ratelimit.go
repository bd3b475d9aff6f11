package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"auditionhub_backend/internal/logger"
	"auditionhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter counts hits per key in fixed windows.
type RateLimiter interface {
	// Allow records one hit and reports whether it is within the limit,
	// plus the time left in the current window.
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// RedisRateLimiter keeps the counters in Redis so that every instance shares them.
type RedisRateLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRedisRateLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, prefix: prefix, limit: limit, window: window}
}

// fixedWindowScript increments the counter and sets its expiry in one step.
// A counter found without a TTL gets one too, so a key can never outlive its window.
var fixedWindowScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	local ttl = redis.call('PTTL', KEYS[1])
	if count == 1 or ttl < 0 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
		ttl = tonumber(ARGV[1])
	end
	return { count, ttl }
`)

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := l.prefix + ":" + key

	vals, err := fixedWindowScript.Run(ctx, l.client, []string{k}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return true, 0, err
	}
	if len(vals) != 2 {
		return true, 0, fmt.Errorf("rate limit script returned %d values", len(vals))
	}

	count, remaining := vals[0], time.Duration(vals[1])*time.Millisecond
	if remaining <= 0 {
		remaining = l.window
	}
	return count <= int64(l.limit), remaining, nil
}

// MemoryRateLimiter is the single-instance fallback when Redis is not configured.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]*rateWindow
	now     func() time.Time
}

type rateWindow struct {
	count   int
	resetAt time.Time
}

func NewMemoryRateLimiter(limit int, window time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*rateWindow),
		now:     time.Now,
	}
}

func (l *MemoryRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		if len(l.buckets) > 10000 {
			l.sweep(now)
		}
		b = &rateWindow{resetAt: now.Add(l.window)}
		l.buckets[key] = b
	}
	b.count++
	return b.count <= l.limit, b.resetAt.Sub(now), nil
}

func (l *MemoryRateLimiter) sweep(now time.Time) {
	for k, b := range l.buckets {
		if !now.Before(b.resetAt) {
			delete(l.buckets, k)
		}
	}
}

// NewRateLimiter prefers Redis and falls back to process memory.
func NewRateLimiter(client *redis.Client, prefix string, limit int, window time.Duration) RateLimiter {
	if client != nil {
		return NewRedisRateLimiter(client, prefix, limit, window)
	}
	return NewMemoryRateLimiter(limit, window)
}

// RateLimitMiddleware limits requests per client IP and route.
// Limiter failures let the request through.
func RateLimitMiddleware(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + c.FullPath()

		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}
		if !allowed {
			secs := int((retryAfter + time.Second - 1) / time.Second)
			c.Header("Retry-After", strconv.Itoa(secs))
			apperrors.HandleError(c, apperrors.ErrRateLimited)
			return
		}
		c.Next()
	}
}
