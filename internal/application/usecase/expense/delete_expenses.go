// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DeletionScope selects which expenses a data deletion request removes.
type DeletionScope string

const (
	DeletionScopeAll       DeletionScope = "all_expenses"
	DeletionScopeDateRange DeletionScope = "date_range"
	DeletionScopeCategory  DeletionScope = "category"
)

// DeleteExpensesInput represents a data deletion request.
type DeleteExpensesInput struct {
	UserID     uuid.UUID
	Scope      DeletionScope
	StartDate  *time.Time // date_range only
	EndDate    *time.Time // date_range only, inclusive
	CategoryID string     // category only
}

// DeleteExpensesOutput represents the output of a data deletion request.
type DeleteExpensesOutput struct {
	DeletedCount int64
}

// DeleteExpensesUseCase removes a user's expenses by scope.
type DeleteExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewDeleteExpensesUseCase creates a new DeleteExpensesUseCase instance.
func NewDeleteExpensesUseCase(expenseRepo adapter.ExpenseRepository) *DeleteExpensesUseCase {
	return &DeleteExpensesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute performs the deletion.
func (uc *DeleteExpensesUseCase) Execute(ctx context.Context, input DeleteExpensesInput) (*DeleteExpensesOutput, error) {
	filter := adapter.ExpenseFilter{UserID: input.UserID}

	switch input.Scope {
	case DeletionScopeAll:
	case DeletionScopeDateRange:
		if input.StartDate == nil || input.EndDate == nil || input.StartDate.After(*input.EndDate) {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeInvalidDeletionRange,
				"date_range requires start_date before or equal to end_date",
				domainerror.ErrInvalidDeletionScope,
			)
		}
		filter.StartDate = input.StartDate
		filter.EndDate = input.EndDate
	case DeletionScopeCategory:
		if input.CategoryID == "" {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeMissingExpenseFields,
				"category scope requires category_id",
				domainerror.ErrInvalidDeletionScope,
			)
		}
		filter.CategoryIDs = []string{input.CategoryID}
	default:
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidDeletionScope,
			"scope must be: all_expenses, date_range or category",
			domainerror.ErrInvalidDeletionScope,
		)
	}

	deleted, err := uc.expenseRepo.DeleteByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to delete expenses: %w", err)
	}

	slog.Info("Expenses deleted",
		"userID", input.UserID,
		"scope", input.Scope,
		"count", deleted,
	)

	return &DeleteExpensesOutput{
		DeletedCount: deleted,
	}, nil
}
