// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"log/slog"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	RefreshToken string
}

// LogoutUserUseCase revokes a refresh token.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
	}
}

// Execute performs the logout. It succeeds even when the token is already invalid.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) error {
	if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
		slog.Debug("Logout with an unusable refresh token", "error", err)
	}
	return nil
}
