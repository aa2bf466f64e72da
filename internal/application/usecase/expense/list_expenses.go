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

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListExpensesInput represents the search filters for listing expenses.
type ListExpensesInput struct {
	UserID      uuid.UUID
	CategoryIDs []string
	StartDate   *time.Time
	EndDate     *time.Time
	MinAmount   *decimal.Decimal
	MaxAmount   *decimal.Decimal
	Search      string
	Page        int
	Limit       int
}

// ListExpensesOutput represents one page of expenses with their categories.
type ListExpensesOutput struct {
	Expenses   []*entity.ExpenseWithCategory
	Total      int64
	Page       int
	Limit      int
	TotalPages int
	// PageTotal is the sum of the amounts on this page.
	PageTotal decimal.Decimal
}

// ListExpensesUseCase handles expense search and pagination.
type ListExpensesUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository, categoryRepo adapter.CategoryRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the expense listing.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	// Set default pagination values
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	if input.StartDate != nil && input.EndDate != nil && input.StartDate.After(*input.EndDate) {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseDate,
			"start date must not be after end date",
			domainerror.ErrInvalidExpenseDate,
		)
	}

	filter := adapter.ExpenseFilter{
		UserID:      input.UserID,
		CategoryIDs: input.CategoryIDs,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		MinAmount:   input.MinAmount,
		MaxAmount:   input.MaxAmount,
		Search:      strings.TrimSpace(input.Search),
	}

	result, err := uc.expenseRepo.FindByFilter(ctx, filter, adapter.ExpensePagination{Page: page, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	categories, err := uc.categoryRepo.FindVisible(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	lookup := make(map[string]*entity.Category, len(categories))
	for _, c := range categories {
		lookup[c.ID] = c
	}

	output := &ListExpensesOutput{
		Expenses:   make([]*entity.ExpenseWithCategory, 0, len(result.Expenses)),
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
		PageTotal:  decimal.Zero,
	}
	for _, e := range result.Expenses {
		output.Expenses = append(output.Expenses, &entity.ExpenseWithCategory{
			Expense:  e,
			Category: lookup[e.CategoryID],
		})
		output.PageTotal = output.PageTotal.Add(e.Amount)
	}

	return output, nil
}
