package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func fixedClock() time.Time { return fixedNow }

func newSummaryUseCase(expenses []*entity.Expense, users map[uuid.UUID]*entity.User) (*GetSummaryUseCase, *mockExpenseRepository) {
	expenseRepo := &mockExpenseRepository{expenses: expenses}
	categoryRepo := &mockCategoryRepository{categories: testCategories()}
	userRepo := &mockUserRepository{users: users}
	return NewGetSummaryUseCase(expenseRepo, categoryRepo, userRepo, time.UTC, fixedClock), expenseRepo
}

func TestGetSummaryUseCase_Execute(t *testing.T) {
	otherUser := uuid.New()
	expenses := []*entity.Expense{
		expenseAt("40", "groceries", fixedNow),
		expenseAt("60", "fuel", fixedNow.AddDate(0, 0, -3)),
		entity.NewExpense(otherUser, decimal.NewFromInt(999), "fuel", "", fixedNow),
	}

	t.Run("summarises the user's expenses", func(t *testing.T) {
		uc, repo := newSummaryUseCase(expenses, nil)

		output, err := uc.Execute(context.Background(), GetSummaryInput{UserID: testUserID, Range: "last-week"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !output.Summary.Total.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected total 100, got %s", output.Summary.Total)
		}
		if len(output.Summary.TimeSeries) != 7 {
			t.Errorf("expected 7 buckets, got %d", len(output.Summary.TimeSeries))
		}
		if !repo.gotStart.Equal(output.Summary.Start) || !repo.gotEnd.Equal(output.Summary.End) {
			t.Errorf("expected repository to be queried with the resolved window")
		}
	})

	t.Run("custom range with explicit dates", func(t *testing.T) {
		uc, _ := newSummaryUseCase(expenses, nil)

		output, err := uc.Execute(context.Background(), GetSummaryInput{
			UserID:    testUserID,
			Range:     "custom",
			StartDate: "2024-03-15",
			EndDate:   "2024-03-15",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !output.Summary.Total.Equal(decimal.NewFromInt(40)) {
			t.Errorf("expected total 40, got %s", output.Summary.Total)
		}
	})

	t.Run("uses the stored user timezone", func(t *testing.T) {
		user := &entity.User{ID: testUserID, Timezone: "Asia/Tokyo"}
		uc, _ := newSummaryUseCase(nil, map[uuid.UUID]*entity.User{testUserID: user})

		output, err := uc.Execute(context.Background(), GetSummaryInput{UserID: testUserID, Range: "last-week"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if output.Location.String() != "Asia/Tokyo" {
			t.Errorf("expected Asia/Tokyo, got %s", output.Location)
		}
	})

	t.Run("custom range across a skipped calendar day", func(t *testing.T) {
		apia, err := time.LoadLocation("Pacific/Apia")
		if err != nil {
			t.Skipf("timezone data unavailable: %v", err)
		}
		uc, _ := newSummaryUseCase([]*entity.Expense{
			expenseAt("12.50", "groceries", time.Date(2011, time.December, 31, 8, 0, 0, 0, apia)),
		}, nil)

		done := make(chan struct{})
		var output *GetSummaryOutput
		go func() {
			defer close(done)
			output, err = uc.Execute(context.Background(), GetSummaryInput{
				UserID:    testUserID,
				Range:     "custom",
				StartDate: "2011-12-25",
				EndDate:   "2012-01-05",
				Timezone:  "Pacific/Apia",
			})
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("expected the summary to finish")
		}
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(output.Summary.TimeSeries) != 11 {
			t.Errorf("expected 11 buckets, got %d", len(output.Summary.TimeSeries))
		}
		if !output.Summary.Total.Equal(decimal.RequireFromString("12.50")) {
			t.Errorf("expected total 12.50, got %s", output.Summary.Total)
		}
	})

	t.Run("invalid arguments", func(t *testing.T) {
		tests := []struct {
			name  string
			input GetSummaryInput
			code  domainerror.DashboardErrorCode
		}{
			{"unknown range", GetSummaryInput{Range: "fortnight"}, domainerror.ErrCodeUnknownDateRange},
			{"bad date", GetSummaryInput{Range: "custom", StartDate: "03/01/2024"}, domainerror.ErrCodeInvalidDateFormat},
			{"reversed dates", GetSummaryInput{Range: "custom", StartDate: "2024-03-10", EndDate: "2024-03-01"}, domainerror.ErrCodeInvalidCustomRange},
			{"unknown timezone", GetSummaryInput{Range: "last-week", Timezone: "Mars/Olympus"}, domainerror.ErrCodeUnknownTimezone},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc, _ := newSummaryUseCase(expenses, nil)
				tt.input.UserID = testUserID

				_, err := uc.Execute(context.Background(), tt.input)

				var dashErr *domainerror.DashboardError
				if !errors.As(err, &dashErr) {
					t.Fatalf("expected DashboardError, got %v", err)
				}
				if dashErr.Code != tt.code {
					t.Errorf("expected code %s, got %s", tt.code, dashErr.Code)
				}
				if !errors.Is(err, domainerror.ErrInvalidArgument) {
					t.Error("expected error to match ErrInvalidArgument")
				}
			})
		}
	})

	t.Run("repository failure is reported as an internal error", func(t *testing.T) {
		uc, repo := newSummaryUseCase(expenses, nil)
		repo.err = errors.New("connection refused")

		_, err := uc.Execute(context.Background(), GetSummaryInput{UserID: testUserID, Range: "last-month"})

		var dashErr *domainerror.DashboardError
		if !errors.As(err, &dashErr) {
			t.Fatalf("expected DashboardError, got %v", err)
		}
		if dashErr.Code != domainerror.ErrCodeDashboardInternalError {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeDashboardInternalError, dashErr.Code)
		}
		if errors.Is(err, domainerror.ErrInvalidArgument) {
			t.Error("expected repository failure not to match ErrInvalidArgument")
		}
	})
}

func TestListRangesUseCase_Execute(t *testing.T) {
	options := NewListRangesUseCase(fixedClock).Execute(time.UTC)

	if len(options) != len(SupportedRanges()) {
		t.Fatalf("expected %d options, got %d", len(SupportedRanges()), len(options))
	}
	if options[0].Range != DateRangeLastWeek || options[0].Buckets != 7 {
		t.Errorf("expected last-week with 7 buckets, got %s with %d", options[0].Range, options[0].Buckets)
	}
}
