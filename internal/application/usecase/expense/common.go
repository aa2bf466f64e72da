// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"amount must not be negative",
			domainerror.ErrInvalidExpenseAmount,
		)
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > entity.MaxDescriptionLength {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", entity.MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	return nil
}

// resolveLeafCategory checks that categoryID exists, is visible to the user and is a leaf.
func resolveLeafCategory(ctx context.Context, repo adapter.CategoryRepository, categoryID string, userID uuid.UUID) (*entity.Category, error) {
	if categoryID == "" {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeMissingExpenseFields,
			"category is required",
			nil,
		)
	}

	category, err := repo.FindByID(ctx, categoryID)
	if err != nil && !errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if err != nil || !category.VisibleTo(userID) {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeExpenseCategoryInvalid,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	if !category.IsLeaf() {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeCategoryNotLeaf,
			"expenses must use a subcategory",
			domainerror.ErrCategoryNotLeaf,
		)
	}

	return category, nil
}

// findOwnedExpense loads an expense and hides the ones of other users.
func findOwnedExpense(ctx context.Context, repo adapter.ExpenseRepository, id, userID uuid.UUID) (*entity.Expense, error) {
	expense, err := repo.FindByID(ctx, id)
	if err != nil && !errors.Is(err, domainerror.ErrExpenseNotFound) {
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}
	if err != nil || expense.UserID != userID {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeExpenseNotFound,
			"expense not found",
			domainerror.ErrExpenseNotFound,
		)
	}
	return expense, nil
}
