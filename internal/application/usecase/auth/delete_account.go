// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DeleteAccountConfirmation must be typed by the user to delete an account.
const DeleteAccountConfirmation = "DELETE"

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	UserID       uuid.UUID
	Password     string
	Confirmation string
}

// DeleteAccountUseCase removes a user together with all of their data.
type DeleteAccountUseCase struct {
	userRepo        adapter.UserRepository
	expenseRepo     adapter.ExpenseRepository
	categoryRepo    adapter.CategoryRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(
	userRepo adapter.UserRepository,
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		userRepo:        userRepo,
		expenseRepo:     expenseRepo,
		categoryRepo:    categoryRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the account deletion.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	// 1. Explicit confirmation
	if input.Confirmation != DeleteAccountConfirmation {
		return domainerror.NewAuthError(
			domainerror.ErrCodeInvalidConfirmation,
			"confirmation must be exactly 'DELETE'",
			domainerror.ErrInvalidConfirmation,
		)
	}

	// 2. Re-authenticate
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return domainerror.NewAuthError(
			domainerror.ErrCodeUserNotFound,
			"user not found",
			err,
		)
	}
	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid password",
			domainerror.ErrInvalidCredentials,
		)
	}

	// 3. Revoke sessions, then remove data
	if err := uc.tokenService.InvalidateAllUserTokens(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to invalidate user tokens: %w", err)
	}
	if err := uc.expenseRepo.DeleteAllByUser(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to delete expenses: %w", err)
	}
	if err := uc.categoryRepo.DeleteAllByOwner(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to delete categories: %w", err)
	}
	if err := uc.userRepo.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("Account deleted", "userID", user.ID)
	return nil
}
