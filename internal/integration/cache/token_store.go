// Package cache implements Redis-backed adapters for short-lived state,
// with in-memory fallbacks for single-instance deployments.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

const (
	refreshTokenKeyPrefix = "auth:refresh:"
	userTokensKeyPrefix   = "auth:user_tokens:"
)

// tokenStore implements adapter.TokenStore on Redis.
// Each token id is a key holding its owner; a per-user set indexes them for RevokeAll.
type tokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a new Redis token store.
func NewTokenStore(client *redis.Client) adapter.TokenStore {
	return &tokenStore{client: client}
}

// Save records tokenID for userID until ttl elapses.
func (s *tokenStore) Save(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	userKey := userTokensKeyPrefix + userID.String()

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, refreshTokenKeyPrefix+tokenID, userID.String(), ttl)
	pipe.SAdd(ctx, userKey, tokenID)
	pipe.Expire(ctx, userKey, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

// Exists reports whether tokenID is still active.
func (s *tokenStore) Exists(ctx context.Context, tokenID string) (bool, error) {
	_, err := s.client.Get(ctx, refreshTokenKeyPrefix+tokenID).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	return true, nil
}

// Revoke removes a single token.
func (s *tokenStore) Revoke(ctx context.Context, userID uuid.UUID, tokenID string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, refreshTokenKeyPrefix+tokenID)
	pipe.SRem(ctx, userTokensKeyPrefix+userID.String(), tokenID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// RevokeAll removes every token of userID.
func (s *tokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	userKey := userTokensKeyPrefix + userID.String()

	tokenIDs, err := s.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list refresh tokens: %w", err)
	}

	keys := make([]string, 0, len(tokenIDs)+1)
	for _, id := range tokenIDs {
		keys = append(keys, refreshTokenKeyPrefix+id)
	}
	keys = append(keys, userKey)

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}

// MemoryTokenStore keeps refresh tokens in process memory. It is used when
// Redis is not configured, so tokens do not survive a restart.
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]memoryToken
	now    func() time.Time
}

type memoryToken struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// NewMemoryTokenStore creates an in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		tokens: make(map[string]memoryToken),
		now:    time.Now,
	}
}

// Save records tokenID for userID until ttl elapses.
func (s *MemoryTokenStore) Save(_ context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[tokenID] = memoryToken{userID: userID, expiresAt: s.now().Add(ttl)}
	return nil
}

// Exists reports whether tokenID is still active.
func (s *MemoryTokenStore) Exists(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[tokenID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(token.expiresAt) {
		delete(s.tokens, tokenID)
		return false, nil
	}
	return true, nil
}

// Revoke removes a single token.
func (s *MemoryTokenStore) Revoke(_ context.Context, _ uuid.UUID, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, tokenID)
	return nil
}

// RevokeAll removes every token of userID.
func (s *MemoryTokenStore) RevokeAll(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, token := range s.tokens {
		if token.userID == userID {
			delete(s.tokens, id)
		}
	}
	return nil
}
