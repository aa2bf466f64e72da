package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

func TestTokenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("saved token exists until revoked", func(t *testing.T) {
		_, client := newTestRedis(t)
		store := NewTokenStore(client)
		userID := uuid.New()

		if err := store.Save(ctx, userID, "jti-1", time.Hour); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		exists, err := store.Exists(ctx, "jti-1")
		if err != nil || !exists {
			t.Fatalf("expected token to exist, got %v (err %v)", exists, err)
		}

		if err := store.Revoke(ctx, userID, "jti-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		exists, _ = store.Exists(ctx, "jti-1")
		if exists {
			t.Error("expected token to be revoked")
		}
	})

	t.Run("token expires with its ttl", func(t *testing.T) {
		server, client := newTestRedis(t)
		store := NewTokenStore(client)

		if err := store.Save(ctx, uuid.New(), "jti-short", time.Minute); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		server.FastForward(2 * time.Minute)

		exists, err := store.Exists(ctx, "jti-short")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if exists {
			t.Error("expected token to expire")
		}
	})

	t.Run("RevokeAll only touches the given user", func(t *testing.T) {
		_, client := newTestRedis(t)
		store := NewTokenStore(client)
		alice := uuid.New()
		bob := uuid.New()

		_ = store.Save(ctx, alice, "a1", time.Hour)
		_ = store.Save(ctx, alice, "a2", time.Hour)
		_ = store.Save(ctx, bob, "b1", time.Hour)

		if err := store.RevokeAll(ctx, alice); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, id := range []string{"a1", "a2"} {
			if exists, _ := store.Exists(ctx, id); exists {
				t.Errorf("expected %s to be revoked", id)
			}
		}
		if exists, _ := store.Exists(ctx, "b1"); !exists {
			t.Error("expected other user's token to survive")
		}
	})
}

func TestRedisRateLimiter(t *testing.T) {
	ctx := context.Background()

	t.Run("blocks after max attempts and resets with the window", func(t *testing.T) {
		server, client := newTestRedis(t)
		limiter := NewRedisRateLimiter(client, 3, time.Minute)

		for i := 0; i < 3; i++ {
			allowed, _, err := limiter.Allow(ctx, "login:1.2.3.4")
			if err != nil || !allowed {
				t.Fatalf("attempt %d: expected allowed, got %v (err %v)", i+1, allowed, err)
			}
		}

		allowed, retryAfter, err := limiter.Allow(ctx, "login:1.2.3.4")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if allowed {
			t.Fatal("expected fourth attempt to be blocked")
		}
		if retryAfter <= 0 || retryAfter > time.Minute {
			t.Errorf("expected retry after within the window, got %s", retryAfter)
		}

		if allowed, _, _ := limiter.Allow(ctx, "login:5.6.7.8"); !allowed {
			t.Error("expected a different key to be allowed")
		}

		server.FastForward(61 * time.Second)
		if allowed, _, _ := limiter.Allow(ctx, "login:1.2.3.4"); !allowed {
			t.Error("expected attempts to be allowed after the window")
		}
	})
}

func TestMemoryRateLimiter(t *testing.T) {
	ctx := context.Background()
	current := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	limiter := NewMemoryRateLimiter(2, time.Minute)
	limiter.now = func() time.Time { return current }

	for i := 0; i < 2; i++ {
		if allowed, _, _ := limiter.Allow(ctx, "k"); !allowed {
			t.Fatalf("attempt %d: expected allowed", i+1)
		}
	}

	allowed, retryAfter, _ := limiter.Allow(ctx, "k")
	if allowed {
		t.Fatal("expected third attempt to be blocked")
	}
	if retryAfter != time.Minute {
		t.Errorf("expected retry after 1m, got %s", retryAfter)
	}

	current = current.Add(61 * time.Second)
	limiter.Cleanup()
	if len(limiter.entries) != 0 {
		t.Errorf("expected expired entries to be cleaned up, got %d", len(limiter.entries))
	}
	if allowed, _, _ := limiter.Allow(ctx, "k"); !allowed {
		t.Error("expected a fresh window to allow the attempt")
	}
}

func TestMemoryTokenStore(t *testing.T) {
	ctx := context.Background()
	current := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	store := NewMemoryTokenStore()
	store.now = func() time.Time { return current }
	alice := uuid.New()
	bob := uuid.New()

	_ = store.Save(ctx, alice, "a1", time.Hour)
	_ = store.Save(ctx, alice, "a2", time.Minute)
	_ = store.Save(ctx, bob, "b1", time.Hour)

	if exists, _ := store.Exists(ctx, "a1"); !exists {
		t.Error("expected a1 to exist")
	}

	current = current.Add(2 * time.Minute)
	if exists, _ := store.Exists(ctx, "a2"); exists {
		t.Error("expected a2 to expire")
	}

	if err := store.RevokeAll(ctx, alice); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists, _ := store.Exists(ctx, "a1"); exists {
		t.Error("expected a1 to be revoked")
	}
	if exists, _ := store.Exists(ctx, "b1"); !exists {
		t.Error("expected other user's token to survive")
	}

	_ = store.Revoke(ctx, bob, "b1")
	if exists, _ := store.Exists(ctx, "b1"); exists {
		t.Error("expected b1 to be revoked")
	}
}

func TestNewRedisClient(t *testing.T) {
	ctx := context.Background()

	t.Run("connects to a live server", func(t *testing.T) {
		server := miniredis.RunT(t)
		client, err := NewRedisClient(ctx, "redis://"+server.Addr()+"/0", "", 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer client.Close()

		if err := client.Set(ctx, "k", "v", 0).Err(); err != nil {
			t.Errorf("expected write to succeed, got %v", err)
		}
	})

	t.Run("rejects a malformed url", func(t *testing.T) {
		if _, err := NewRedisClient(ctx, "http://nope", "", 0); err == nil {
			t.Error("expected error for non-redis scheme")
		}
	})
}
