// Package digest contains the weekly summary email use case.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/dashboard"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// DefaultInterval is the minimum time between two digests for the same user.
const DefaultInterval = 7 * 24 * time.Hour

// QueueWeeklyDigestOutput reports what a run did.
type QueueWeeklyDigestOutput struct {
	Queued  int
	Skipped int
	Failed  int
}

// QueueWeeklyDigestUseCase enqueues a last-week summary email for every opted-in user.
type QueueWeeklyDigestUseCase struct {
	userRepo       adapter.UserRepository
	expenseRepo    adapter.ExpenseRepository
	categoryRepo   adapter.CategoryRepository
	emailQueueRepo adapter.EmailQueueRepository
	appURL         string
	interval       time.Duration
	now            dashboard.Clock
}

// NewQueueWeeklyDigestUseCase creates a new QueueWeeklyDigestUseCase instance.
func NewQueueWeeklyDigestUseCase(
	userRepo adapter.UserRepository,
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	emailQueueRepo adapter.EmailQueueRepository,
	appURL string,
	interval time.Duration,
	now dashboard.Clock,
) *QueueWeeklyDigestUseCase {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if now == nil {
		now = time.Now
	}
	return &QueueWeeklyDigestUseCase{
		userRepo:       userRepo,
		expenseRepo:    expenseRepo,
		categoryRepo:   categoryRepo,
		emailQueueRepo: emailQueueRepo,
		appURL:         appURL,
		interval:       interval,
		now:            now,
	}
}

// Execute queues the digests. A failure for one user does not stop the others.
func (uc *QueueWeeklyDigestUseCase) Execute(ctx context.Context) (*QueueWeeklyDigestOutput, error) {
	recipients, err := uc.userRepo.FindDigestRecipients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list digest recipients: %w", err)
	}

	output := &QueueWeeklyDigestOutput{}
	now := uc.now()

	for _, user := range recipients {
		if err := ctx.Err(); err != nil {
			return output, err
		}

		queued, err := uc.queueFor(ctx, user, now)
		switch {
		case err != nil:
			output.Failed++
			slog.Error("Failed to queue weekly digest",
				"userID", user.ID,
				"error", err,
			)
		case queued:
			output.Queued++
		default:
			output.Skipped++
		}
	}

	slog.Info("Weekly digest run finished",
		"queued", output.Queued,
		"skipped", output.Skipped,
		"failed", output.Failed,
	)

	return output, nil
}

func (uc *QueueWeeklyDigestUseCase) queueFor(ctx context.Context, user *entity.User, now time.Time) (bool, error) {
	exists, err := uc.emailQueueRepo.ExistsSince(ctx, user.ID, entity.TemplateWeeklySummary, now.Add(-uc.interval))
	if err != nil {
		return false, fmt.Errorf("failed to check previous digest: %w", err)
	}
	if exists {
		return false, nil
	}

	loc, err := time.LoadLocation(user.Timezone)
	if err != nil {
		loc = time.UTC
	}

	window, err := dashboard.Resolve(dashboard.ResolveInput{Range: dashboard.DateRangeLastWeek, Now: now.In(loc)})
	if err != nil {
		return false, err
	}

	expenses, err := uc.expenseRepo.FindInRange(ctx, user.ID, window.Start, window.End)
	if err != nil {
		return false, fmt.Errorf("failed to load expenses: %w", err)
	}
	if len(expenses) == 0 {
		return false, nil
	}

	categories, err := uc.categoryRepo.FindVisible(ctx, user.ID)
	if err != nil {
		return false, fmt.Errorf("failed to load categories: %w", err)
	}

	summary := dashboard.Summarize(expenses, categories, window)

	job := entity.NewEmailJob(
		user.ID,
		entity.TemplateWeeklySummary,
		user.Email,
		user.Name,
		fmt.Sprintf("Your week in expenses: %s", summary.Total.StringFixed(2)),
		TemplateData(user, summary, uc.appURL),
	)
	job.CreatedAt = now.UTC()
	job.ScheduledAt = job.CreatedAt
	if err := uc.emailQueueRepo.Create(ctx, job); err != nil {
		return false, fmt.Errorf("failed to queue email: %w", err)
	}

	return true, nil
}

// TemplateData flattens a summary into the values the weekly_summary template reads.
func TemplateData(user *entity.User, summary *dashboard.Summary, appURL string) map[string]interface{} {
	days := make([]map[string]interface{}, 0, len(summary.TimeSeries))
	for _, p := range summary.TimeSeries {
		days = append(days, map[string]interface{}{
			"Label": p.Label,
			"Value": p.Value.StringFixed(2),
		})
	}

	top := make([]map[string]interface{}, 0, len(summary.TopCategories))
	for _, c := range summary.TopCategories {
		top = append(top, map[string]interface{}{
			"Label": c.Label,
			"Value": c.Value.StringFixed(2),
		})
	}

	return map[string]interface{}{
		"Name":          user.Name,
		"PeriodStart":   summary.Start.Format("Jan 2"),
		"PeriodEnd":     summary.End.Format("Jan 2"),
		"Total":         summary.Total.StringFixed(2),
		"ExpenseCount":  summary.ExpenseCount,
		"Days":          days,
		"TopCategories": top,
		"DashboardURL":  appURL + "/dashboard",
	}
}
