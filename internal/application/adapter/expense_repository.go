// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseFilter narrows an expense search. Zero values mean "no constraint".
type ExpenseFilter struct {
	UserID      uuid.UUID
	CategoryIDs []string
	StartDate   *time.Time
	EndDate     *time.Time
	MinAmount   *decimal.Decimal
	MaxAmount   *decimal.Decimal
	Search      string
}

// ExpensePagination represents pagination parameters.
type ExpensePagination struct {
	Page  int
	Limit int
}

// ExpenseListResult is one page of expenses plus the total match count.
type ExpenseListResult struct {
	Expenses   []*entity.Expense
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// Create inserts a new expense.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves an expense by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// FindByFilter retrieves a page of expenses matching the filter, newest first.
	FindByFilter(ctx context.Context, filter ExpenseFilter, pagination ExpensePagination) (*ExpenseListResult, error)

	// FindInRange retrieves every expense of a user with start <= expense_date <= end.
	FindInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Expense, error)

	// Update saves changes to an existing expense.
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete removes an expense.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByFilter removes every expense matching the filter and returns how many were removed.
	DeleteByFilter(ctx context.Context, filter ExpenseFilter) (int64, error)

	// DeleteAllByUser removes every expense of a user.
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
}
