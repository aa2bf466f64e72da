// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

const dateLayout = "2006-01-02"

// ExpenseController handles expense endpoints.
type ExpenseController struct {
	listUseCase       *expense.ListExpensesUseCase
	getUseCase        *expense.GetExpenseUseCase
	createUseCase     *expense.CreateExpenseUseCase
	updateUseCase     *expense.UpdateExpenseUseCase
	deleteUseCase     *expense.DeleteExpenseUseCase
	bulkDeleteUseCase *expense.DeleteExpensesUseCase
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	listUseCase *expense.ListExpensesUseCase,
	getUseCase *expense.GetExpenseUseCase,
	createUseCase *expense.CreateExpenseUseCase,
	updateUseCase *expense.UpdateExpenseUseCase,
	deleteUseCase *expense.DeleteExpenseUseCase,
	bulkDeleteUseCase *expense.DeleteExpensesUseCase,
) *ExpenseController {
	return &ExpenseController{
		listUseCase:       listUseCase,
		getUseCase:        getUseCase,
		createUseCase:     createUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		bulkDeleteUseCase: bulkDeleteUseCase,
	}
}

// List handles GET /expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		missingUser(ctx)
		return
	}

	input := expense.ListExpensesInput{
		UserID: userID,
		Search: ctx.Query("search"),
	}

	if v := ctx.Query("start_date"); v != "" {
		start, err := time.Parse(dateLayout, v)
		if err != nil {
			invalidExpenseDate(ctx)
			return
		}
		input.StartDate = &start
	}
	if v := ctx.Query("end_date"); v != "" {
		end, err := time.Parse(dateLayout, v)
		if err != nil {
			invalidExpenseDate(ctx)
			return
		}
		end = endOfDay(end)
		input.EndDate = &end
	}

	for _, raw := range ctx.QueryArray("category_id") {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				input.CategoryIDs = append(input.CategoryIDs, id)
			}
		}
	}

	if v := ctx.Query("min_amount"); v != "" {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			invalidExpenseAmount(ctx)
			return
		}
		input.MinAmount = &amount
	}
	if v := ctx.Query("max_amount"); v != "" {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			invalidExpenseAmount(ctx)
			return
		}
		input.MaxAmount = &amount
	}

	if page, err := strconv.Atoi(ctx.Query("page")); err == nil {
		input.Page = page
	}
	if limit, err := strconv.Atoi(ctx.Query("limit")); err == nil {
		input.Limit = limit
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output))
}

// Get handles GET /expenses/:id requests.
func (c *ExpenseController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		missingUser(ctx)
		return
	}

	expenseID, ok := parseExpenseID(ctx)
	if !ok {
		return
	}

	e, err := c.getUseCase.Execute(ctx.Request.Context(), expense.GetExpenseInput{
		ExpenseID: expenseID,
		UserID:    userID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(e, nil))
}

// Create handles POST /expenses requests.
func (c *ExpenseController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		missingUser(ctx)
		return
	}

	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body", string(domainerror.ErrCodeMissingExpenseFields))
		return
	}

	date, err := parseExpenseDate(req.Date)
	if err != nil {
		invalidExpenseDate(ctx)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), expense.CreateExpenseInput{
		UserID:      userID,
		Amount:      *req.Amount,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		ExpenseDate: date,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseResponse(output.Expense, output.Category))
}

// Update handles PATCH /expenses/:id requests.
func (c *ExpenseController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		missingUser(ctx)
		return
	}

	expenseID, ok := parseExpenseID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body", string(domainerror.ErrCodeMissingExpenseFields))
		return
	}

	input := expense.UpdateExpenseInput{
		ExpenseID:   expenseID,
		UserID:      userID,
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		Description: req.Description,
	}
	if req.Date != nil {
		date, err := parseExpenseDate(*req.Date)
		if err != nil {
			invalidExpenseDate(ctx)
			return
		}
		input.ExpenseDate = &date
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense, nil))
}

// Delete handles DELETE /expenses/:id requests.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		missingUser(ctx)
		return
	}

	expenseID, ok := parseExpenseID(ctx)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), expense.DeleteExpenseInput{
		ExpenseID: expenseID,
		UserID:    userID,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// DeleteMany handles POST /expenses/delete-request requests.
func (c *ExpenseController) DeleteMany(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		missingUser(ctx)
		return
	}

	var req dto.DeleteExpensesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body", string(domainerror.ErrCodeMissingExpenseFields))
		return
	}

	input := expense.DeleteExpensesInput{
		UserID:     userID,
		Scope:      expense.DeletionScope(req.Scope),
		CategoryID: req.CategoryID,
	}
	if req.StartDate != "" {
		start, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			invalidExpenseDate(ctx)
			return
		}
		input.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			invalidExpenseDate(ctx)
			return
		}
		end = endOfDay(end)
		input.EndDate = &end
	}

	output, err := c.bulkDeleteUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DeleteExpensesResponse{DeletedCount: output.DeletedCount})
}

func parseExpenseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		writeError(ctx, http.StatusNotFound, "Expense not found", string(domainerror.ErrCodeExpenseNotFound))
		return uuid.Nil, false
	}
	return id, true
}

// parseExpenseDate accepts RFC 3339 timestamps and bare YYYY-MM-DD dates.
// Bare dates are pinned to 12:00 UTC so they stay on the same calendar day
// for every offset between -12h and +12h.
func parseExpenseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return d.Add(12 * time.Hour), nil
}

func endOfDay(day time.Time) time.Time {
	return day.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func invalidExpenseDate(ctx *gin.Context) {
	writeError(ctx, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidExpenseDate))
}

func invalidExpenseAmount(ctx *gin.Context) {
	writeError(ctx, http.StatusBadRequest, "Invalid amount", string(domainerror.ErrCodeInvalidExpenseAmount))
}
