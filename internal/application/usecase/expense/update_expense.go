// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// UpdateExpenseInput represents a partial update. Nil fields are left unchanged.
type UpdateExpenseInput struct {
	ExpenseID   uuid.UUID
	UserID      uuid.UUID
	Amount      *decimal.Decimal
	CategoryID  *string
	Description *string
	ExpenseDate *time.Time
}

// UpdateExpenseOutput represents the output of an expense update.
type UpdateExpenseOutput struct {
	Expense *entity.Expense
}

// UpdateExpenseUseCase handles expense update logic.
type UpdateExpenseUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(expenseRepo adapter.ExpenseRepository, categoryRepo adapter.CategoryRepository) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the expense update.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	expense, err := findOwnedExpense(ctx, uc.expenseRepo, input.ExpenseID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		expense.Amount = *input.Amount
	}

	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if err := validateDescription(description); err != nil {
			return nil, err
		}
		expense.Description = description
	}

	if input.CategoryID != nil && *input.CategoryID != expense.CategoryID {
		category, err := resolveLeafCategory(ctx, uc.categoryRepo, *input.CategoryID, input.UserID)
		if err != nil {
			return nil, err
		}
		expense.CategoryID = category.ID
	}

	if input.ExpenseDate != nil && !input.ExpenseDate.IsZero() {
		expense.ExpenseDate = *input.ExpenseDate
	}

	expense.UpdatedAt = time.Now().UTC()

	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return &UpdateExpenseOutput{
		Expense: expense,
	}, nil
}
