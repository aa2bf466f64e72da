// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// UpdatePreferencesInput changes profile settings. Nil fields are left unchanged.
type UpdatePreferencesInput struct {
	UserID       uuid.UUID
	Name         *string
	Timezone     *string
	WeeklyDigest *bool
}

// UpdatePreferencesUseCase updates the name, timezone and digest opt-in of a user.
type UpdatePreferencesUseCase struct {
	userRepo adapter.UserRepository
}

// NewUpdatePreferencesUseCase creates a new UpdatePreferencesUseCase instance.
func NewUpdatePreferencesUseCase(userRepo adapter.UserRepository) *UpdatePreferencesUseCase {
	return &UpdatePreferencesUseCase{
		userRepo: userRepo,
	}
}

// Execute applies the changes and returns the updated user.
func (uc *UpdatePreferencesUseCase) Execute(ctx context.Context, input UpdatePreferencesInput) (*entity.User, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUserNotFound,
			"user not found",
			err,
		)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeMissingFields,
				"name must not be empty",
				nil,
			)
		}
		user.Name = name
	}

	if input.Timezone != nil {
		timezone, err := validateTimezone(*input.Timezone)
		if err != nil {
			return nil, err
		}
		user.Timezone = timezone
	}

	if input.WeeklyDigest != nil {
		user.WeeklyDigest = *input.WeeklyDigest
	}

	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
