// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// Clock returns the current instant. Tests replace it to pin "now".
type Clock func() time.Time

// GetSummaryInput represents the input for building a dashboard summary.
type GetSummaryInput struct {
	UserID uuid.UUID
	Range  string
	// StartDate and EndDate are YYYY-MM-DD and only used by the custom range.
	StartDate string
	EndDate   string
	// Timezone is an IANA name. Empty falls back to the user's, then the service default.
	Timezone string
}

// GetSummaryOutput represents the output of building a dashboard summary.
type GetSummaryOutput struct {
	Summary  *Summary
	Location *time.Location
}

// GetSummaryUseCase loads a user's expenses and categories and aggregates them.
type GetSummaryUseCase struct {
	expenseRepo     adapter.ExpenseRepository
	categoryRepo    adapter.CategoryRepository
	userRepo        adapter.UserRepository
	defaultLocation *time.Location
	now             Clock
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	userRepo adapter.UserRepository,
	defaultLocation *time.Location,
	now Clock,
) *GetSummaryUseCase {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &GetSummaryUseCase{
		expenseRepo:     expenseRepo,
		categoryRepo:    categoryRepo,
		userRepo:        userRepo,
		defaultLocation: defaultLocation,
		now:             now,
	}
}

// Execute resolves the requested window and returns its summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	startedAt := time.Now()

	// 1. Validate the selector before touching storage
	dateRange, err := ParseDateRange(input.Range)
	if err != nil {
		return nil, err
	}

	// 2. Pick the location that defines day boundaries
	loc, err := uc.location(ctx, input)
	if err != nil {
		return nil, err
	}

	// 3. Resolve the window
	resolveInput := ResolveInput{Range: dateRange, Now: uc.now().In(loc)}
	if dateRange == DateRangeCustom {
		if input.StartDate != "" {
			start, err := ParseDate(input.StartDate, loc)
			if err != nil {
				return nil, err
			}
			resolveInput.CustomStart = &start
		}
		if input.EndDate != "" {
			end, err := ParseDate(input.EndDate, loc)
			if err != nil {
				return nil, err
			}
			resolveInput.CustomEnd = &end
		}
	}

	window, err := Resolve(resolveInput)
	if err != nil {
		return nil, err
	}

	// 4. Load expenses and categories concurrently
	var (
		expenses   []*entity.Expense
		categories []*entity.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		expenses, err = uc.expenseRepo.FindInRange(gctx, input.UserID, window.Start, window.End)
		if err != nil {
			return fmt.Errorf("failed to load expenses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = uc.categoryRepo.FindVisible(gctx, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, domainerror.NewDashboardError(domainerror.ErrCodeDashboardInternalError, "failed to load summary data", err)
	}

	// 5. Aggregate
	summary := Summarize(expenses, categories, window)

	slog.Debug("Summary computed",
		"userID", input.UserID,
		"range", dateRange,
		"buckets", len(summary.TimeSeries),
		"expenses", summary.ExpenseCount,
		"duration", time.Since(startedAt),
	)

	return &GetSummaryOutput{
		Summary:  summary,
		Location: loc,
	}, nil
}

func (uc *GetSummaryUseCase) location(ctx context.Context, input GetSummaryInput) (*time.Location, error) {
	if input.Timezone != "" {
		return LoadLocation(input.Timezone)
	}

	if uc.userRepo != nil {
		user, err := uc.userRepo.FindByID(ctx, input.UserID)
		if err == nil && user.Timezone != "" {
			if loc, err := time.LoadLocation(user.Timezone); err == nil {
				return loc, nil
			}
			slog.Warn("Ignoring invalid stored timezone",
				"userID", input.UserID,
				"timezone", user.Timezone,
			)
		}
	}

	return uc.defaultLocation, nil
}

// LoadLocation loads an IANA location, reporting unknown names as invalid arguments.
func LoadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, domainerror.NewInvalidArgumentError(
			domainerror.ErrCodeUnknownTimezone,
			fmt.Sprintf("unknown timezone %q", name),
			domainerror.ErrUnknownTimezone,
		)
	}
	return loc, nil
}
