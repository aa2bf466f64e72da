// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenPair represents an access and refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // access token lifetime in seconds
}

// TokenClaims represents the claims contained in a JWT token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// TokenService defines the interface for JWT token operations.
type TokenService interface {
	// GenerateTokenPair generates a new access and refresh token pair.
	GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string) (*TokenPair, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// ValidateRefreshToken validates a refresh token that has not been revoked.
	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)

	// InvalidateRefreshToken revokes a single refresh token.
	InvalidateRefreshToken(ctx context.Context, token string) error

	// InvalidateAllUserTokens revokes every refresh token of a user.
	InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// TokenStore tracks issued refresh tokens so they can be revoked.
type TokenStore interface {
	// Save records tokenID for userID until ttl elapses.
	Save(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error

	// Exists reports whether tokenID is still active.
	Exists(ctx context.Context, tokenID string) (bool, error)

	// Revoke removes a single token.
	Revoke(ctx context.Context, userID uuid.UUID, tokenID string) error

	// RevokeAll removes every token of userID.
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

// RateLimiter counts attempts per key inside a fixed window.
type RateLimiter interface {
	// Allow records an attempt for key and reports whether it is within the limit.
	// When it is not, the returned duration is how long until the window resets.
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}
