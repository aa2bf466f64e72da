package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_expenses_user_date,priority:1"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CategoryID  string          `gorm:"type:varchar(64);not null;index"`
	Description string          `gorm:"type:varchar(255)"`
	ExpenseDate time.Time       `gorm:"not null;index:idx_expenses_user_date,priority:2"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:          m.ID,
		UserID:      m.UserID,
		Amount:      m.Amount,
		CategoryID:  m.CategoryID,
		Description: m.Description,
		ExpenseDate: m.ExpenseDate.UTC(),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
// Dates are stored in UTC so range comparisons behave the same on every driver.
func ExpenseFromEntity(expense *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:          expense.ID,
		UserID:      expense.UserID,
		Amount:      expense.Amount,
		CategoryID:  expense.CategoryID,
		Description: expense.Description,
		ExpenseDate: expense.ExpenseDate.UTC(),
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
}
