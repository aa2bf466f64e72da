// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DateRange selects the window a summary covers.
type DateRange string

const (
	DateRangeLastWeek    DateRange = "last-week"
	DateRangeLastMonth   DateRange = "last-month"
	DateRangeLastQuarter DateRange = "last-quarter"
	DateRangeLastYear    DateRange = "last-year"
	DateRangeCustom      DateRange = "custom"
)

// SupportedRanges lists every selector Resolve accepts, in display order.
func SupportedRanges() []DateRange {
	return []DateRange{
		DateRangeLastWeek,
		DateRangeLastMonth,
		DateRangeLastQuarter,
		DateRangeLastYear,
		DateRangeCustom,
	}
}

// IsValid checks if the date range is a supported selector.
func (r DateRange) IsValid() bool {
	for _, supported := range SupportedRanges() {
		if r == supported {
			return true
		}
	}
	return false
}

// BucketUnit is the width of one time-series bucket.
type BucketUnit string

const (
	BucketUnitDay   BucketUnit = "day"
	BucketUnitWeek  BucketUnit = "week"
	BucketUnitMonth BucketUnit = "month"
)

// Custom ranges coarsen their buckets once the span outgrows these day counts.
const (
	customDailyMaxDays  = 31
	customWeeklyMaxDays = 90
)

// DefaultCustomSpanDays is the custom window used when no bounds are given.
const DefaultCustomSpanDays = 7

// ResolveInput represents the input for resolving a date range.
type ResolveInput struct {
	Range DateRange
	// Now is the evaluation instant. Its location defines day boundaries.
	Now time.Time
	// CustomStart and CustomEnd are only read for DateRangeCustom. Only their
	// calendar date matters.
	CustomStart *time.Time
	CustomEnd   *time.Time
}

// ResolvedRange is a concrete whole-day window with its bucketing rules.
type ResolvedRange struct {
	Range DateRange
	Start time.Time
	End   time.Time
	Unit  BucketUnit

	labelLayout string
}

// Resolve turns a range selector into a concrete window.
// Start is midnight of the first day and End is the last nanosecond of the last day,
// both in the location of input.Now.
func Resolve(input ResolveInput) (*ResolvedRange, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := startOfDay(now)
	end := endOfDay(today)

	switch input.Range {
	case DateRangeLastWeek:
		return &ResolvedRange{
			Range:       input.Range,
			Start:       addDays(today, -6),
			End:         end,
			Unit:        BucketUnitDay,
			labelLayout: "Mon",
		}, nil

	case DateRangeLastMonth:
		return &ResolvedRange{
			Range:       input.Range,
			Start:       addDays(today, -29),
			End:         end,
			Unit:        BucketUnitDay,
			labelLayout: "Jan 2",
		}, nil

	case DateRangeLastQuarter:
		quarterStartMonth := time.Month((int(today.Month())-1)/3*3 + 1)
		return &ResolvedRange{
			Range:       input.Range,
			Start:       firstDayFrom(time.Date(today.Year(), quarterStartMonth-3, 1, 0, 0, 0, 0, time.UTC), today.Location()),
			End:         end,
			Unit:        BucketUnitMonth,
			labelLayout: "Jan",
		}, nil

	case DateRangeLastYear:
		return &ResolvedRange{
			Range:       input.Range,
			Start:       firstDayFrom(time.Date(today.Year()-1, time.January, 1, 0, 0, 0, 0, time.UTC), today.Location()),
			End:         end,
			Unit:        BucketUnitMonth,
			labelLayout: "Jan",
		}, nil

	case DateRangeCustom:
		return resolveCustom(input, today)

	default:
		return nil, domainerror.NewInvalidArgumentError(
			domainerror.ErrCodeUnknownDateRange,
			fmt.Sprintf("unknown date range %q", input.Range),
			domainerror.ErrUnknownDateRange,
		)
	}
}

func resolveCustom(input ResolveInput, today time.Time) (*ResolvedRange, error) {
	loc := today.Location()

	first := addDays(today, -(DefaultCustomSpanDays - 1))
	if input.CustomStart != nil {
		first = calendarDay(*input.CustomStart, loc)
	}
	last := today
	if input.CustomEnd != nil {
		last = calendarDay(*input.CustomEnd, loc)
	}

	if first.After(last) {
		return nil, domainerror.NewInvalidArgumentError(
			domainerror.ErrCodeInvalidCustomRange,
			fmt.Sprintf("custom range starts %s, after it ends %s", first.Format(time.DateOnly), last.Format(time.DateOnly)),
			domainerror.ErrInvalidCustomRange,
		)
	}

	resolved := &ResolvedRange{
		Range: DateRangeCustom,
		Start: first,
		End:   endOfDay(last),
	}

	switch days := daysBetween(first, last) + 1; {
	case days <= customDailyMaxDays:
		resolved.Unit = BucketUnitDay
		resolved.labelLayout = "Jan 2"
	case days <= customWeeklyMaxDays:
		resolved.Unit = BucketUnitWeek
		resolved.labelLayout = "Jan 2"
	default:
		resolved.Unit = BucketUnitMonth
		resolved.labelLayout = "Jan 2006"
	}

	return resolved, nil
}

// BucketBoundaries returns the start of every bucket, beginning at Start.
// The count depends only on the window, never on expense data.
func (r *ResolvedRange) BucketBoundaries() []time.Time {
	var boundaries []time.Time
	for b := r.Start; !b.After(r.End); {
		boundaries = append(boundaries, b)
		next := r.next(b)
		if !next.After(b) {
			break
		}
		b = next
	}
	return boundaries
}

// BucketWindow returns the inclusive bounds of the bucket starting at bucketStart.
// The final bucket is clamped to End.
func (r *ResolvedRange) BucketWindow(bucketStart time.Time) (time.Time, time.Time) {
	bucketEnd := r.next(bucketStart).Add(-time.Nanosecond)
	if bucketEnd.After(r.End) {
		bucketEnd = r.End
	}
	return bucketStart, bucketEnd
}

// BucketLabel formats the display label of the bucket starting at bucketStart.
func (r *ResolvedRange) BucketLabel(bucketStart time.Time) string {
	return bucketStart.Format(r.labelLayout)
}

// Days returns the number of calendar days the window covers.
func (r *ResolvedRange) Days() int {
	return daysBetween(r.Start, startOfDay(r.End)) + 1
}

func (r *ResolvedRange) next(b time.Time) time.Time {
	switch r.Unit {
	case BucketUnitWeek:
		return addDays(b, 7)
	case BucketUnitMonth:
		return firstDayFrom(time.Date(b.Year(), b.Month()+1, 1, 0, 0, 0, 0, time.UTC), b.Location())
	default:
		return addDays(b, 1)
	}
}

// ParseDateRange parses a selector as sent by clients. Matching ignores case
// and surrounding spaces.
func ParseDateRange(value string) (DateRange, error) {
	r := DateRange(strings.ToLower(strings.TrimSpace(value)))
	if !r.IsValid() {
		return "", domainerror.NewInvalidArgumentError(
			domainerror.ErrCodeUnknownDateRange,
			fmt.Sprintf("unknown date range %q", value),
			domainerror.ErrUnknownDateRange,
		)
	}
	return r, nil
}

// ParseDate parses a YYYY-MM-DD date as the first instant of that day in loc.
// A date the zone skipped entirely resolves to the next day.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, domainerror.NewInvalidArgumentError(
			domainerror.ErrCodeInvalidDateFormat,
			fmt.Sprintf("invalid date %q", value),
			domainerror.ErrInvalidDateFormat,
		)
	}
	return firstDayFrom(t, loc), nil
}

// Day arithmetic works on calendar dates held in UTC and maps each date back
// to its first local instant. Dates a zone skipped (Pacific/Apia 2011-12-30)
// have no instants and fold into the following day.

func startOfDay(t time.Time) time.Time {
	if start, ok := dayStart(t.Year(), t.Month(), t.Day(), t.Location()); ok {
		return start
	}
	return t
}

func endOfDay(t time.Time) time.Time {
	return addDays(startOfDay(t), 1).Add(-time.Nanosecond)
}

func addDays(t time.Time, days int) time.Time {
	return firstDayFrom(time.Date(t.Year(), t.Month(), t.Day()+days, 0, 0, 0, 0, time.UTC), t.Location())
}

func calendarDay(t time.Time, loc *time.Location) time.Time {
	return firstDayFrom(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), loc)
}

// firstDayFrom returns the start of the calendar date of date (read in UTC)
// in loc, moving forward past skipped dates.
func firstDayFrom(date time.Time, loc *time.Location) time.Time {
	for i := 0; i < 3; i++ {
		if start, ok := dayStart(date.Year(), date.Month(), date.Day(), loc); ok {
			return start
		}
		date = date.AddDate(0, 0, 1)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
}

// dayStart returns the first instant of y-m-d in loc. ok is false when the
// zone has no such date.
func dayStart(y int, m time.Month, d int, loc *time.Location) (time.Time, bool) {
	target := dateKey(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))

	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if dateKey(midnight) == target && dateKey(midnight.Add(-time.Nanosecond)) < target {
		return midnight, true
	}

	noon := time.Date(y, m, d, 12, 0, 0, 0, loc)
	if dateKey(noon) != target {
		return time.Time{}, false
	}

	// Midnight fell into a transition: search for the first second of the date.
	lo, hi := noon.Add(-72*time.Hour).Unix(), noon.Unix()
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if dateKey(time.Unix(mid, 0).In(loc)) < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return time.Unix(hi, 0).In(loc), true
}

func dateKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
