// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxDescriptionLength is the longest description an expense may carry.
const MaxDescriptionLength = 255

// Expense represents money spent by a user on a single leaf category.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      decimal.Decimal // Always non-negative
	CategoryID  string
	Description string
	ExpenseDate time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewExpense creates a new Expense entity.
func NewExpense(userID uuid.UUID, amount decimal.Decimal, categoryID, description string, expenseDate time.Time) *Expense {
	now := time.Now().UTC()

	return &Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		CategoryID:  categoryID,
		Description: description,
		ExpenseDate: expenseDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ExpenseWithCategory pairs an expense with its resolved category, which may be nil.
type ExpenseWithCategory struct {
	Expense  *Expense
	Category *Category
}
