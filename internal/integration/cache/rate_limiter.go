package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

const (
	// DefaultMaxAttempts is the default number of allowed attempts per window.
	DefaultMaxAttempts = 5
	// DefaultWindow is the default time window for rate limiting.
	DefaultWindow = time.Minute

	rateLimitKeyPrefix = "ratelimit:"
)

// redisRateLimiter implements a fixed-window counter shared by every API instance.
type redisRateLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewRedisRateLimiter creates a Redis-backed rate limiter.
func NewRedisRateLimiter(client *redis.Client, maxAttempts int, window time.Duration) adapter.RateLimiter {
	return &redisRateLimiter{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Allow records an attempt for key and reports whether it is within the limit.
func (rl *redisRateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	redisKey := rateLimitKeyPrefix + key

	attempts, err := rl.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to count attempt: %w", err)
	}
	if attempts == 1 {
		if err := rl.client.Expire(ctx, redisKey, rl.window).Err(); err != nil {
			return false, 0, fmt.Errorf("failed to start rate limit window: %w", err)
		}
	}

	if attempts <= int64(rl.maxAttempts) {
		return true, 0, nil
	}

	ttl, err := rl.client.TTL(ctx, redisKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to read rate limit window: %w", err)
	}
	if ttl < 0 {
		// The key lost its expiry; start a fresh window so it cannot block forever.
		_ = rl.client.Expire(ctx, redisKey, rl.window).Err()
		ttl = rl.window
	}
	return false, ttl, nil
}

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// MemoryRateLimiter keeps counters in process memory. It is used when Redis is not configured.
type MemoryRateLimiter struct {
	mu          sync.Mutex
	entries     map[string]*rateLimitEntry
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

// NewMemoryRateLimiter creates an in-memory rate limiter.
func NewMemoryRateLimiter(maxAttempts int, window time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		entries:     make(map[string]*rateLimitEntry),
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
	}
}

// Allow records an attempt for key and reports whether it is within the limit.
func (rl *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	entry, exists := rl.entries[key]
	if !exists || now.After(entry.resetTime) {
		rl.entries[key] = &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(rl.window),
		}
		return true, 0, nil
	}

	if entry.attempts < rl.maxAttempts {
		entry.attempts++
		return true, 0, nil
	}

	return false, entry.resetTime.Sub(now), nil
}

// Cleanup removes expired entries.
func (rl *MemoryRateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, entry := range rl.entries {
		if now.After(entry.resetTime) {
			delete(rl.entries, key)
		}
	}
}
