package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// Friday afternoon in a leap year.
var fixedNow = time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

func mustResolve(t *testing.T, input ResolveInput) *ResolvedRange {
	t.Helper()
	resolved, err := Resolve(input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return resolved
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestResolve_NamedRanges(t *testing.T) {
	endOfToday := time.Date(2024, time.March, 15, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)

	tests := []struct {
		name        string
		dateRange   DateRange
		start       time.Time
		unit        BucketUnit
		buckets     int
		firstLabel  string
		lastLabel   string
		lastBucketS time.Time
	}{
		{"last week", DateRangeLastWeek, date(2024, time.March, 9), BucketUnitDay, 7, "Sat", "Fri", date(2024, time.March, 15)},
		{"last month", DateRangeLastMonth, date(2024, time.February, 15), BucketUnitDay, 30, "Feb 15", "Mar 15", date(2024, time.March, 15)},
		{"last quarter", DateRangeLastQuarter, date(2023, time.October, 1), BucketUnitMonth, 6, "Oct", "Mar", date(2024, time.March, 1)},
		{"last year", DateRangeLastYear, date(2023, time.January, 1), BucketUnitMonth, 15, "Jan", "Mar", date(2024, time.March, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := mustResolve(t, ResolveInput{Range: tt.dateRange, Now: fixedNow})

			if !resolved.Start.Equal(tt.start) {
				t.Errorf("expected start %v, got %v", tt.start, resolved.Start)
			}
			if !resolved.End.Equal(endOfToday) {
				t.Errorf("expected end %v, got %v", endOfToday, resolved.End)
			}
			if resolved.Unit != tt.unit {
				t.Errorf("expected unit %s, got %s", tt.unit, resolved.Unit)
			}

			boundaries := resolved.BucketBoundaries()
			if len(boundaries) != tt.buckets {
				t.Fatalf("expected %d buckets, got %d", tt.buckets, len(boundaries))
			}
			if label := resolved.BucketLabel(boundaries[0]); label != tt.firstLabel {
				t.Errorf("expected first label %q, got %q", tt.firstLabel, label)
			}
			last := boundaries[len(boundaries)-1]
			if label := resolved.BucketLabel(last); label != tt.lastLabel {
				t.Errorf("expected last label %q, got %q", tt.lastLabel, label)
			}
			if !last.Equal(tt.lastBucketS) {
				t.Errorf("expected last bucket to start %v, got %v", tt.lastBucketS, last)
			}
			if _, end := resolved.BucketWindow(last); !end.Equal(resolved.End) {
				t.Errorf("expected last bucket to be clamped to %v, got %v", resolved.End, end)
			}
		})
	}
}

func TestResolve_WholeDayWindow(t *testing.T) {
	early := time.Date(2024, time.March, 15, 0, 0, 1, 0, time.UTC)
	late := time.Date(2024, time.March, 15, 23, 59, 58, 0, time.UTC)

	a := mustResolve(t, ResolveInput{Range: DateRangeLastWeek, Now: early})
	b := mustResolve(t, ResolveInput{Range: DateRangeLastWeek, Now: late})

	if !a.Start.Equal(b.Start) || !a.End.Equal(b.End) {
		t.Errorf("expected the same window regardless of time of day, got [%v, %v] and [%v, %v]", a.Start, a.End, b.Start, b.End)
	}
}

func TestResolve_Custom(t *testing.T) {
	t.Run("defaults to the trailing seven days", func(t *testing.T) {
		resolved := mustResolve(t, ResolveInput{Range: DateRangeCustom, Now: fixedNow})

		if !resolved.Start.Equal(date(2024, time.March, 9)) {
			t.Errorf("expected start 2024-03-09, got %v", resolved.Start)
		}
		if resolved.Days() != 7 {
			t.Errorf("expected 7 days, got %d", resolved.Days())
		}
		if resolved.Unit != BucketUnitDay {
			t.Errorf("expected daily buckets, got %s", resolved.Unit)
		}
		if label := resolved.BucketLabel(resolved.Start); label != "Mar 9" {
			t.Errorf("expected label Mar 9, got %q", label)
		}
	})

	t.Run("up to 31 days is daily", func(t *testing.T) {
		start, end := date(2024, time.January, 1), date(2024, time.January, 31)
		resolved := mustResolve(t, ResolveInput{Range: DateRangeCustom, Now: fixedNow, CustomStart: &start, CustomEnd: &end})

		if resolved.Unit != BucketUnitDay {
			t.Errorf("expected daily buckets, got %s", resolved.Unit)
		}
		if n := len(resolved.BucketBoundaries()); n != 31 {
			t.Errorf("expected 31 buckets, got %d", n)
		}
	})

	t.Run("up to 90 days is weekly from the start date", func(t *testing.T) {
		start, end := date(2024, time.January, 1), date(2024, time.March, 1)
		resolved := mustResolve(t, ResolveInput{Range: DateRangeCustom, Now: fixedNow, CustomStart: &start, CustomEnd: &end})

		if resolved.Unit != BucketUnitWeek {
			t.Fatalf("expected weekly buckets, got %s", resolved.Unit)
		}
		boundaries := resolved.BucketBoundaries()
		if len(boundaries) != 9 {
			t.Fatalf("expected 9 buckets, got %d", len(boundaries))
		}
		last := boundaries[len(boundaries)-1]
		if !last.Equal(date(2024, time.February, 26)) {
			t.Errorf("expected last bucket to start 2024-02-26, got %v", last)
		}
		if label := resolved.BucketLabel(last); label != "Feb 26" {
			t.Errorf("expected label Feb 26, got %q", label)
		}
	})

	t.Run("longer spans are monthly", func(t *testing.T) {
		start, end := date(2024, time.January, 15), date(2024, time.June, 10)
		resolved := mustResolve(t, ResolveInput{Range: DateRangeCustom, Now: fixedNow, CustomStart: &start, CustomEnd: &end})

		boundaries := resolved.BucketBoundaries()
		if len(boundaries) != 6 {
			t.Fatalf("expected 6 buckets, got %d", len(boundaries))
		}
		if label := resolved.BucketLabel(boundaries[0]); label != "Jan 2024" {
			t.Errorf("expected label Jan 2024, got %q", label)
		}
		_, firstEnd := resolved.BucketWindow(boundaries[0])
		if want := time.Date(2024, time.January, 31, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC); !firstEnd.Equal(want) {
			t.Errorf("expected first bucket to end %v, got %v", want, firstEnd)
		}
		if !boundaries[1].Equal(date(2024, time.February, 1)) {
			t.Errorf("expected second bucket to start on the first of the month, got %v", boundaries[1])
		}
	})

	t.Run("single day", func(t *testing.T) {
		day := date(2024, time.February, 29)
		resolved := mustResolve(t, ResolveInput{Range: DateRangeCustom, Now: fixedNow, CustomStart: &day, CustomEnd: &day})

		if n := len(resolved.BucketBoundaries()); n != 1 {
			t.Errorf("expected 1 bucket, got %d", n)
		}
	})

	t.Run("start after end is rejected", func(t *testing.T) {
		start, end := date(2024, time.March, 10), date(2024, time.March, 1)
		_, err := Resolve(ResolveInput{Range: DateRangeCustom, Now: fixedNow, CustomStart: &start, CustomEnd: &end})

		if !errors.Is(err, domainerror.ErrInvalidArgument) {
			t.Fatalf("expected invalid argument, got %v", err)
		}
		if !errors.Is(err, domainerror.ErrInvalidCustomRange) {
			t.Errorf("expected invalid custom range, got %v", err)
		}
		var dashErr *domainerror.DashboardError
		if !errors.As(err, &dashErr) || dashErr.Code != domainerror.ErrCodeInvalidCustomRange {
			t.Errorf("expected code %s, got %v", domainerror.ErrCodeInvalidCustomRange, err)
		}
	})
}

func TestResolve_UnknownRange(t *testing.T) {
	_, err := Resolve(ResolveInput{Range: "last-decade", Now: fixedNow})

	var dashErr *domainerror.DashboardError
	if !errors.As(err, &dashErr) {
		t.Fatalf("expected DashboardError, got %v", err)
	}
	if dashErr.Code != domainerror.ErrCodeUnknownDateRange {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeUnknownDateRange, dashErr.Code)
	}
	if !errors.Is(err, domainerror.ErrInvalidArgument) {
		t.Error("expected error to match ErrInvalidArgument")
	}
}

func loadZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	return loc
}

func expectPartition(t *testing.T, resolved *ResolvedRange) []time.Time {
	t.Helper()
	boundaries := resolved.BucketBoundaries()
	if len(boundaries) == 0 {
		t.Fatal("expected at least one bucket")
	}
	if !boundaries[0].Equal(resolved.Start) {
		t.Fatalf("expected first bucket to start at %v, got %v", resolved.Start, boundaries[0])
	}
	for i, b := range boundaries {
		if b.Hour() != 0 || b.Minute() != 0 {
			t.Errorf("expected bucket %d to start at midnight, got %v", i, b)
		}
		_, end := resolved.BucketWindow(b)
		if i == len(boundaries)-1 {
			if !end.Equal(resolved.End) {
				t.Errorf("expected last bucket to end at %v, got %v", resolved.End, end)
			}
			continue
		}
		if !boundaries[i+1].After(b) {
			t.Fatalf("expected bucket %d to start after %v, got %v", i+1, b, boundaries[i+1])
		}
		if !end.Add(time.Nanosecond).Equal(boundaries[i+1]) {
			t.Errorf("expected bucket %d to end right before %v, got %v", i, boundaries[i+1], end)
		}
	}
	return boundaries
}

func TestResolve_BucketsPartitionTheWindow(t *testing.T) {
	newYork := loadZone(t, "America/New_York")
	apia := loadZone(t, "Pacific/Apia")

	tests := []struct {
		name string
		now  time.Time
	}{
		{"utc", fixedNow},
		{"new york spring forward", time.Date(2024, time.March, 12, 12, 0, 0, 0, newYork)},
		{"new york fall back", time.Date(2024, time.November, 5, 12, 0, 0, 0, newYork)},
		{"apia after the skipped day", time.Date(2012, time.January, 3, 12, 0, 0, 0, apia)},
	}

	for _, tt := range tests {
		for _, r := range SupportedRanges() {
			t.Run(tt.name+" "+string(r), func(t *testing.T) {
				expectPartition(t, mustResolve(t, ResolveInput{Range: r, Now: tt.now}))
			})
		}
	}
}

func TestResolve_ZoneTransitions(t *testing.T) {
	newYork := loadZone(t, "America/New_York")
	apia := loadZone(t, "Pacific/Apia")

	tests := []struct {
		name      string
		now       time.Time
		from, to  time.Time
		buckets   int
		skipLabel string
	}{
		{"new york spring forward", time.Date(2024, time.December, 1, 12, 0, 0, 0, newYork), date(2024, time.March, 8), date(2024, time.March, 12), 5, ""},
		{"new york fall back", time.Date(2024, time.December, 1, 12, 0, 0, 0, newYork), date(2024, time.November, 1), date(2024, time.November, 5), 5, ""},
		{"apia skips december 30", time.Date(2012, time.June, 1, 12, 0, 0, 0, apia), date(2011, time.December, 25), date(2012, time.January, 5), 11, "Dec 30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.from, tt.to
			resolved := mustResolve(t, ResolveInput{Range: DateRangeCustom, Now: tt.now, CustomStart: &start, CustomEnd: &end})

			boundaries := expectPartition(t, resolved)
			if len(boundaries) != tt.buckets {
				t.Errorf("expected %d buckets, got %d", tt.buckets, len(boundaries))
			}
			for _, b := range boundaries {
				if tt.skipLabel != "" && resolved.BucketLabel(b) == tt.skipLabel {
					t.Errorf("expected no bucket for %s", tt.skipLabel)
				}
			}
		})
	}

	t.Run("apia series adds up to the total", func(t *testing.T) {
		start, end := date(2011, time.December, 25), date(2012, time.January, 5)
		resolved := mustResolve(t, ResolveInput{
			Range:       DateRangeCustom,
			Now:         time.Date(2012, time.June, 1, 12, 0, 0, 0, apia),
			CustomStart: &start,
			CustomEnd:   &end,
		})

		expenses := []*entity.Expense{
			expenseAt("10", "groceries", time.Date(2011, time.December, 29, 23, 30, 0, 0, apia)),
			expenseAt("20", "groceries", time.Date(2011, time.December, 31, 0, 30, 0, 0, apia)),
			expenseAt("5", "fuel", time.Date(2012, time.January, 5, 9, 0, 0, 0, apia)),
		}
		summary := Summarize(expenses, testCategories(), resolved)

		if !summary.Total.Equal(decimal.NewFromInt(35)) {
			t.Errorf("expected total 35, got %s", summary.Total)
		}
		if got := sumSeries(summary.TimeSeries); !got.Equal(summary.Total) {
			t.Errorf("expected series to sum to %s, got %s", summary.Total, got)
		}
		if len(summary.TimeSeries) != 11 {
			t.Errorf("expected 11 buckets, got %d", len(summary.TimeSeries))
		}
	})
}

func TestParseDateRange(t *testing.T) {
	t.Run("accepts mixed case", func(t *testing.T) {
		r, err := ParseDateRange(" Last-Month ")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if r != DateRangeLastMonth {
			t.Errorf("expected %s, got %s", DateRangeLastMonth, r)
		}
	})

	t.Run("rejects empty", func(t *testing.T) {
		if _, err := ParseDateRange(""); !errors.Is(err, domainerror.ErrUnknownDateRange) {
			t.Errorf("expected ErrUnknownDateRange, got %v", err)
		}
	})
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-02-29", time.UTC)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !got.Equal(date(2024, time.February, 29)) {
		t.Errorf("expected 2024-02-29, got %v", got)
	}

	if _, err := ParseDate("29/02/2024", time.UTC); !errors.Is(err, domainerror.ErrInvalidDateFormat) {
		t.Errorf("expected ErrInvalidDateFormat, got %v", err)
	}

	t.Run("skipped date moves to the next day", func(t *testing.T) {
		apia := loadZone(t, "Pacific/Apia")
		got, err := ParseDate("2011-12-30", apia)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		// Apia went from UTC-10 to UTC+14 at 10:00 UTC on December 30.
		if want := time.Date(2011, time.December, 30, 10, 0, 0, 0, time.UTC); !got.Equal(want) || got.Day() != 31 {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}
