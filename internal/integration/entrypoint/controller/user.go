// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/auth"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// UserController handles user management endpoints.
type UserController struct {
	deleteAccountUseCase     *auth.DeleteAccountUseCase
	updatePreferencesUseCase *auth.UpdatePreferencesUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	deleteAccountUseCase *auth.DeleteAccountUseCase,
	updatePreferencesUseCase *auth.UpdatePreferencesUseCase,
) *UserController {
	return &UserController{
		deleteAccountUseCase:     deleteAccountUseCase,
		updatePreferencesUseCase: updatePreferencesUseCase,
	}
}

// DeleteAccount handles DELETE /users/me requests.
func (c *UserController) DeleteAccount(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		missingUser(ctx)
		return
	}

	var req dto.DeleteAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body", string(domainerror.ErrCodeMissingFields))
		return
	}

	err := c.deleteAccountUseCase.Execute(ctx.Request.Context(), auth.DeleteAccountInput{
		UserID:       userID,
		Password:     req.Password,
		Confirmation: req.Confirmation,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// UpdatePreferences handles PATCH /users/me/preferences requests.
func (c *UserController) UpdatePreferences(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		missingUser(ctx)
		return
	}

	var req dto.UpdatePreferencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, "Invalid request body", string(domainerror.ErrCodeMissingFields))
		return
	}

	user, err := c.updatePreferencesUseCase.Execute(ctx.Request.Context(), auth.UpdatePreferencesInput{
		UserID:       userID,
		Name:         req.Name,
		Timezone:     req.Timezone,
		WeeklyDigest: req.WeeklyDigest,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(user))
}
