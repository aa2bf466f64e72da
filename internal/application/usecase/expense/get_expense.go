// Package expense contains expense-related use cases.
package expense

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// GetExpenseInput represents the input for fetching one expense.
type GetExpenseInput struct {
	ExpenseID uuid.UUID
	UserID    uuid.UUID
}

// GetExpenseUseCase returns one expense of the user.
type GetExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewGetExpenseUseCase creates a new GetExpenseUseCase instance.
func NewGetExpenseUseCase(expenseRepo adapter.ExpenseRepository) *GetExpenseUseCase {
	return &GetExpenseUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute fetches the expense.
func (uc *GetExpenseUseCase) Execute(ctx context.Context, input GetExpenseInput) (*entity.Expense, error) {
	return findOwnedExpense(ctx, uc.expenseRepo, input.ExpenseID, input.UserID)
}
