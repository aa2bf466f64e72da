package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CreateExpenseRequest represents the request body for expense creation.
// Amount accepts a JSON number or string.
type CreateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	CategoryID  string           `json:"category_id" binding:"required"`
	Description string           `json:"description,omitempty"`
	Date        string           `json:"date" binding:"required"`
}

// UpdateExpenseRequest represents the request body for expense update.
type UpdateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
	Description *string          `json:"description,omitempty"`
	Date        *string          `json:"date,omitempty"`
}

// DeleteExpensesRequest represents the request body for POST /expenses/delete-request.
type DeleteExpensesRequest struct {
	Scope      string `json:"scope" binding:"required"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
	CategoryID string `json:"category_id,omitempty"`
}

// ExpenseCategoryResponse represents category information in an expense response.
type ExpenseCategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID          string                   `json:"id"`
	Amount      string                   `json:"amount"`
	CategoryID  string                   `json:"category_id"`
	Category    *ExpenseCategoryResponse `json:"category,omitempty"`
	Description string                   `json:"description"`
	Date        time.Time                `json:"date"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// PaginationResponse describes the page returned by a list endpoint.
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ExpenseListResponse represents the response for listing expenses.
type ExpenseListResponse struct {
	Expenses   []ExpenseResponse  `json:"expenses"`
	Pagination PaginationResponse `json:"pagination"`
	PageTotal  string             `json:"page_total"`
}

// DeleteExpensesResponse represents the response for bulk deletion.
type DeleteExpensesResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

// ToExpenseResponse converts a domain Expense, with its optional category, to a DTO.
func ToExpenseResponse(e *entity.Expense, cat *entity.Category) ExpenseResponse {
	resp := ExpenseResponse{
		ID:          e.ID.String(),
		Amount:      e.Amount.StringFixed(2),
		CategoryID:  e.CategoryID,
		Description: e.Description,
		Date:        e.ExpenseDate,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if cat != nil {
		resp.Category = &ExpenseCategoryResponse{
			ID:    cat.ID,
			Name:  cat.Name,
			Color: cat.Color,
			Icon:  cat.Icon,
		}
	}
	return resp
}

// ToExpenseListResponse converts a list output to its DTO.
func ToExpenseListResponse(output *expense.ListExpensesOutput) ExpenseListResponse {
	expenses := make([]ExpenseResponse, len(output.Expenses))
	for i, item := range output.Expenses {
		expenses[i] = ToExpenseResponse(item.Expense, item.Category)
	}
	return ExpenseListResponse{
		Expenses: expenses,
		Pagination: PaginationResponse{
			Page:       output.Page,
			Limit:      output.Limit,
			Total:      output.Total,
			TotalPages: output.TotalPages,
		},
		PageTotal: output.PageTotal.StringFixed(2),
	}
}
