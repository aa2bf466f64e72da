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
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// CreateExpenseInput represents the input for expense creation.
type CreateExpenseInput struct {
	UserID      uuid.UUID
	Amount      decimal.Decimal
	CategoryID  string
	Description string
	ExpenseDate time.Time
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense  *entity.Expense
	Category *entity.Category
}

// CreateExpenseUseCase handles expense creation logic.
type CreateExpenseUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(expenseRepo adapter.ExpenseRepository, categoryRepo adapter.CategoryRepository) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the expense creation.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	// 1. Validate fields
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if input.ExpenseDate.IsZero() {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseDate,
			"expense date is required",
			domainerror.ErrInvalidExpenseDate,
		)
	}
	description := strings.TrimSpace(input.Description)
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	// 2. Category must be a visible leaf
	category, err := resolveLeafCategory(ctx, uc.categoryRepo, input.CategoryID, input.UserID)
	if err != nil {
		return nil, err
	}

	// 3. Persist
	expense := entity.NewExpense(input.UserID, input.Amount, category.ID, description, input.ExpenseDate)
	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return &CreateExpenseOutput{
		Expense:  expense,
		Category: category,
	}, nil
}
