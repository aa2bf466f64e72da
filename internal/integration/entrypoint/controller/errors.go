// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// handleDomainError writes the response for an error returned by a use case.
// Typed domain errors keep their code; anything else is a 500.
func handleDomainError(ctx *gin.Context, err error) {
	var (
		authErr      *domainerror.AuthError
		categoryErr  *domainerror.CategoryError
		expenseErr   *domainerror.ExpenseError
		dashboardErr *domainerror.DashboardError
	)

	switch {
	case errors.As(err, &authErr):
		writeError(ctx, getStatusCodeForAuthError(authErr.Code), authErr.Message, string(authErr.Code))
	case errors.As(err, &categoryErr):
		writeError(ctx, getStatusCodeForCategoryError(categoryErr.Code), categoryErr.Message, string(categoryErr.Code))
	case errors.As(err, &expenseErr):
		writeError(ctx, getStatusCodeForExpenseError(expenseErr.Code), expenseErr.Message, string(expenseErr.Code))
	case errors.As(err, &dashboardErr):
		status := getStatusCodeForDashboardError(dashboardErr.Code)
		if status >= http.StatusInternalServerError {
			slog.Error("Dashboard request failed", "path", ctx.FullPath(), "error", err)
		}
		writeError(ctx, status, dashboardErr.Message, string(dashboardErr.Code))
	default:
		slog.Error("Unhandled request error", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

func writeError(ctx *gin.Context, status int, message, code string) {
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// getStatusCodeForAuthError maps auth error codes to HTTP status codes.
func getStatusCodeForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeTermsNotAccepted,
		domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields,
		domainerror.ErrCodeInvalidConfirmation:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForCategoryError maps category error codes to HTTP status codes.
func getStatusCodeForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNameTooLong,
		domainerror.ErrCodeInvalidColorFormat,
		domainerror.ErrCodeMissingCategoryFields,
		domainerror.ErrCodeCategoryTooDeep:
		return http.StatusBadRequest
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryHasChildren:
		return http.StatusConflict
	case domainerror.ErrCodeDefaultCategoryReadOnly:
		return http.StatusForbidden
	case domainerror.ErrCodeSuggestionUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeSuggestionInvalid:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForExpenseError maps expense error codes to HTTP status codes.
func getStatusCodeForExpenseError(code domainerror.ExpenseErrorCode) int {
	switch code {
	case domainerror.ErrCodeExpenseNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidExpenseAmount,
		domainerror.ErrCodeInvalidExpenseDate,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeExpenseCategoryInvalid,
		domainerror.ErrCodeCategoryNotLeaf,
		domainerror.ErrCodeMissingExpenseFields,
		domainerror.ErrCodeInvalidDeletionScope,
		domainerror.ErrCodeInvalidDeletionRange:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForDashboardError maps dashboard error codes to HTTP status codes.
func getStatusCodeForDashboardError(code domainerror.DashboardErrorCode) int {
	switch code {
	case domainerror.ErrCodeUnknownDateRange,
		domainerror.ErrCodeInvalidCustomRange,
		domainerror.ErrCodeInvalidDateFormat,
		domainerror.ErrCodeUnknownTimezone:
		return http.StatusBadRequest
	case domainerror.ErrCodeMalformedRecord:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeDashboardInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func missingUser(ctx *gin.Context) {
	writeError(ctx, http.StatusUnauthorized, "Unauthorized", string(domainerror.ErrCodeMissingToken))
}
