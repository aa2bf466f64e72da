// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/dashboard"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	getSummaryUseCase *dashboard.GetSummaryUseCase
	listRangesUseCase *dashboard.ListRangesUseCase
	defaultLocation   *time.Location
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	getSummaryUseCase *dashboard.GetSummaryUseCase,
	listRangesUseCase *dashboard.ListRangesUseCase,
	defaultLocation *time.Location,
) *DashboardController {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}
	return &DashboardController{
		getSummaryUseCase: getSummaryUseCase,
		listRangesUseCase: listRangesUseCase,
		defaultLocation:   defaultLocation,
	}
}

// GetSummary handles GET /dashboard/summary requests.
// Query: range (default last-week), start_date and end_date for custom, tz.
func (c *DashboardController) GetSummary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		missingUser(ctx)
		return
	}

	output, err := c.getSummaryUseCase.Execute(ctx.Request.Context(), dashboard.GetSummaryInput{
		UserID:    userID,
		Range:     ctx.DefaultQuery("range", string(dashboard.DateRangeLastWeek)),
		StartDate: ctx.Query("start_date"),
		EndDate:   ctx.Query("end_date"),
		Timezone:  ctx.Query("tz"),
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output))
}

// ListRanges handles GET /dashboard/ranges requests.
func (c *DashboardController) ListRanges(ctx *gin.Context) {
	loc := c.defaultLocation
	if tz := ctx.Query("tz"); tz != "" {
		var err error
		loc, err = dashboard.LoadLocation(tz)
		if err != nil {
			handleDomainError(ctx, err)
			return
		}
	}

	ctx.JSON(http.StatusOK, dto.ToRangeListResponse(c.listRangesUseCase.Execute(loc), loc))
}
