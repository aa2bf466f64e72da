// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"time"
)

// RangeOption describes a selectable range resolved against the current clock.
type RangeOption struct {
	Range   DateRange
	Start   time.Time
	End     time.Time
	Unit    BucketUnit
	Buckets int
}

// ListRangesUseCase lists the supported ranges and the window each one covers today.
type ListRangesUseCase struct {
	now Clock
}

// NewListRangesUseCase creates a new ListRangesUseCase instance.
func NewListRangesUseCase(now Clock) *ListRangesUseCase {
	if now == nil {
		now = time.Now
	}
	return &ListRangesUseCase{now: now}
}

// Execute resolves every supported range in loc. Custom uses its default bounds.
func (uc *ListRangesUseCase) Execute(loc *time.Location) []RangeOption {
	if loc == nil {
		loc = time.UTC
	}
	now := uc.now().In(loc)

	options := make([]RangeOption, 0, len(SupportedRanges()))
	for _, r := range SupportedRanges() {
		resolved, err := Resolve(ResolveInput{Range: r, Now: now})
		if err != nil {
			continue
		}
		options = append(options, RangeOption{
			Range:   r,
			Start:   resolved.Start,
			End:     resolved.End,
			Unit:    resolved.Unit,
			Buckets: len(resolved.BucketBoundaries()),
		})
	}
	return options
}
