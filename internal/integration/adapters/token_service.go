package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	tokenIssuer = "expense-tracker"
)

// ErrTokenRevoked is returned for a well-formed refresh token that is no longer active.
var ErrTokenRevoked = errors.New("refresh token has been revoked")

// CustomClaims represents the custom claims for JWT tokens.
type CustomClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenConfig holds token lifetimes and the signing secret.
type TokenConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// tokenService implements the adapter.TokenService interface.
// Refresh tokens carry a jti that must be present in the token store to be accepted.
type tokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	store      adapter.TokenStore
	now        func() time.Time
}

// NewTokenService creates a new token service instance.
func NewTokenService(cfg TokenConfig, store adapter.TokenStore) adapter.TokenService {
	return &tokenService{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		store:      store,
		now:        time.Now,
	}
}

// GenerateTokenPair generates a new access and refresh token pair.
func (s *tokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string) (*adapter.TokenPair, error) {
	accessToken, err := s.generateJWT(userID, email, tokenTypeAccess, uuid.NewString(), s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshID := uuid.NewString()
	refreshToken, err := s.generateJWT(userID, email, tokenTypeRefresh, refreshID, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.store.Save(ctx, userID, refreshID, s.refreshTTL); err != nil {
		return nil, err
	}

	return &adapter.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *tokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.validate(token, tokenTypeAccess)
}

// ValidateRefreshToken validates a refresh token that has not been revoked.
func (s *tokenService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := s.validate(token, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	active, err := s.store.Exists(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// InvalidateRefreshToken revokes a single refresh token.
func (s *tokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	claims, err := s.validate(token, tokenTypeRefresh)
	if err != nil {
		return err
	}
	return s.store.Revoke(ctx, claims.UserID, claims.TokenID)
}

// InvalidateAllUserTokens revokes every refresh token of a user.
func (s *tokenService) InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	return s.store.RevokeAll(ctx, userID)
}

func (s *tokenService) validate(token, expectedType string) (*adapter.TokenClaims, error) {
	claims, err := s.parseJWT(token)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("invalid token type: expected %s token", expectedType)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in token: %w", err)
	}

	return &adapter.TokenClaims{
		UserID:    userID,
		Email:     claims.Email,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// generateJWT creates a new JWT token with the given parameters.
func (s *tokenService) generateJWT(userID uuid.UUID, email, tokenType, tokenID string, duration time.Duration) (string, error) {
	now := s.now().UTC()
	claims := CustomClaims{
		UserID:    userID.String(),
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// parseJWT parses and validates a JWT token.
func (s *tokenService) parseJWT(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
