// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// TopCategoriesLimit is the maximum number of entries in Summary.TopCategories.
const TopCategoriesLimit = 5

// SeriesPoint is one bucket of the time series.
type SeriesPoint struct {
	Label string
	Start time.Time
	End   time.Time
	Value decimal.Decimal
}

// CategoryTotal is a ranked category with its summed amount.
type CategoryTotal struct {
	CategoryID string
	Label      string
	Value      decimal.Decimal
}

// Summary holds the aggregates of the expenses inside a resolved window.
type Summary struct {
	Range DateRange
	Start time.Time
	End   time.Time
	Unit  BucketUnit

	Total        decimal.Decimal
	ExpenseCount int
	// Unattributed is the part of Total whose category did not resolve.
	Unattributed decimal.Decimal

	// ByCategory is keyed by the leaf category id an expense carries.
	ByCategory map[string]decimal.Decimal
	// ByMainCategory rolls ByCategory up to the parent of each category.
	ByMainCategory map[string]decimal.Decimal
	// Labels maps every id in ByCategory and ByMainCategory to a display name.
	Labels map[string]string

	TimeSeries    []SeriesPoint
	TopCategories []CategoryTotal
}

// Summarize aggregates the expenses that fall inside window.
// It only reads its arguments and is safe for concurrent use.
func Summarize(expenses []*entity.Expense, categories []*entity.Category, window *ResolvedRange) *Summary {
	lookup := make(map[string]*entity.Category, len(categories))
	for _, c := range categories {
		if c == nil {
			continue
		}
		if _, exists := lookup[c.ID]; !exists {
			lookup[c.ID] = c
		}
	}

	boundaries := window.BucketBoundaries()
	series := make([]SeriesPoint, len(boundaries))
	for i, b := range boundaries {
		start, end := window.BucketWindow(b)
		series[i] = SeriesPoint{
			Label: window.BucketLabel(b),
			Start: start,
			End:   end,
			Value: decimal.Zero,
		}
	}

	summary := &Summary{
		Range:          window.Range,
		Start:          window.Start,
		End:            window.End,
		Unit:           window.Unit,
		Total:          decimal.Zero,
		Unattributed:   decimal.Zero,
		ByCategory:     make(map[string]decimal.Decimal),
		ByMainCategory: make(map[string]decimal.Decimal),
		Labels:         make(map[string]string),
		TimeSeries:     series,
		TopCategories:  []CategoryTotal{},
	}

	var seen []string
	for _, e := range expenses {
		if e == nil || e.ExpenseDate.Before(window.Start) || e.ExpenseDate.After(window.End) {
			continue
		}

		summary.Total = summary.Total.Add(e.Amount)
		summary.ExpenseCount++

		if idx := bucketIndex(boundaries, e.ExpenseDate); idx >= 0 {
			series[idx].Value = series[idx].Value.Add(e.Amount)
		}

		category, ok := lookup[e.CategoryID]
		if !ok {
			summary.Unattributed = summary.Unattributed.Add(e.Amount)
			continue
		}

		current, exists := summary.ByCategory[e.CategoryID]
		if !exists {
			seen = append(seen, e.CategoryID)
			current = decimal.Zero
		}
		summary.ByCategory[e.CategoryID] = current.Add(e.Amount)

		mainID := category.ID
		if !category.IsMain() {
			mainID = *category.ParentID
		}
		if prev, ok := summary.ByMainCategory[mainID]; ok {
			summary.ByMainCategory[mainID] = prev.Add(e.Amount)
		} else {
			summary.ByMainCategory[mainID] = e.Amount
		}

		summary.Labels[e.CategoryID] = categoryLabel(e.CategoryID, lookup)
		summary.Labels[mainID] = categoryLabel(mainID, lookup)
	}

	summary.TopCategories = rankCategories(seen, summary.ByCategory, lookup)

	return summary
}

// bucketIndex finds the bucket whose start is the last boundary not after t.
func bucketIndex(boundaries []time.Time, t time.Time) int {
	return sort.Search(len(boundaries), func(i int) bool {
		return boundaries[i].After(t)
	}) - 1
}

// rankCategories orders totals descending. Equal totals keep the order in
// which their categories first appeared.
func rankCategories(order []string, totals map[string]decimal.Decimal, lookup map[string]*entity.Category) []CategoryTotal {
	ranked := make([]CategoryTotal, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, CategoryTotal{
			CategoryID: id,
			Label:      categoryLabel(id, lookup),
			Value:      totals[id],
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value.GreaterThan(ranked[j].Value)
	})

	if len(ranked) > TopCategoriesLimit {
		ranked = ranked[:TopCategoriesLimit]
	}
	return ranked
}

func categoryLabel(id string, lookup map[string]*entity.Category) string {
	if c, ok := lookup[id]; ok && c.Name != "" {
		return c.Name
	}
	return id
}
