package dto

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/dashboard"
)

// SeriesPointResponse is one bucket of the time series.
type SeriesPointResponse struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Value string    `json:"value"`
}

// CategoryTotalResponse is a category with its summed amount.
type CategoryTotalResponse struct {
	CategoryID string `json:"category_id"`
	Label      string `json:"label"`
	Value      string `json:"value"`
}

// SummaryResponse represents the response for GET /dashboard/summary.
type SummaryResponse struct {
	Range          string                  `json:"range"`
	Timezone       string                  `json:"timezone"`
	Start          time.Time               `json:"start"`
	End            time.Time               `json:"end"`
	Granularity    string                  `json:"granularity"`
	Total          string                  `json:"total"`
	ExpenseCount   int                     `json:"expense_count"`
	Unattributed   string                  `json:"unattributed"`
	ByCategory     []CategoryTotalResponse `json:"by_category"`
	ByMainCategory []CategoryTotalResponse `json:"by_main_category"`
	TimeSeries     []SeriesPointResponse   `json:"time_series"`
	TopCategories  []CategoryTotalResponse `json:"top_categories"`
}

// RangeOptionResponse describes one selectable range resolved against now.
type RangeOptionResponse struct {
	Range       string    `json:"range"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Granularity string    `json:"granularity"`
	Buckets     int       `json:"buckets"`
}

// RangeListResponse represents the response for GET /dashboard/ranges.
type RangeListResponse struct {
	Timezone string                `json:"timezone"`
	Ranges   []RangeOptionResponse `json:"ranges"`
}

// ToSummaryResponse converts a GetSummaryOutput to its DTO.
func ToSummaryResponse(output *dashboard.GetSummaryOutput) SummaryResponse {
	s := output.Summary

	series := make([]SeriesPointResponse, len(s.TimeSeries))
	for i, p := range s.TimeSeries {
		series[i] = SeriesPointResponse{
			Label: p.Label,
			Start: p.Start,
			End:   p.End,
			Value: p.Value.StringFixed(2),
		}
	}

	top := make([]CategoryTotalResponse, len(s.TopCategories))
	for i, c := range s.TopCategories {
		top[i] = CategoryTotalResponse{
			CategoryID: c.CategoryID,
			Label:      c.Label,
			Value:      c.Value.StringFixed(2),
		}
	}

	return SummaryResponse{
		Range:          string(s.Range),
		Timezone:       output.Location.String(),
		Start:          s.Start,
		End:            s.End,
		Granularity:    string(s.Unit),
		Total:          s.Total.StringFixed(2),
		ExpenseCount:   s.ExpenseCount,
		Unattributed:   s.Unattributed.StringFixed(2),
		ByCategory:     totalsByID(s.ByCategory, s.Labels),
		ByMainCategory: totalsByID(s.ByMainCategory, s.Labels),
		TimeSeries:     series,
		TopCategories:  top,
	}
}

// totalsByID flattens a total map into a list sorted by id so responses are stable.
func totalsByID(totals map[string]decimal.Decimal, labels map[string]string) []CategoryTotalResponse {
	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]CategoryTotalResponse, len(ids))
	for i, id := range ids {
		label, ok := labels[id]
		if !ok {
			label = id
		}
		out[i] = CategoryTotalResponse{
			CategoryID: id,
			Label:      label,
			Value:      totals[id].StringFixed(2),
		}
	}
	return out
}

// ToRangeListResponse converts resolved range options to their DTO.
func ToRangeListResponse(options []dashboard.RangeOption, loc *time.Location) RangeListResponse {
	ranges := make([]RangeOptionResponse, len(options))
	for i, opt := range options {
		ranges[i] = RangeOptionResponse{
			Range:       string(opt.Range),
			Start:       opt.Start,
			End:         opt.End,
			Granularity: string(opt.Unit),
			Buckets:     opt.Buckets,
		}
	}
	return RangeListResponse{
		Timezone: loc.String(),
		Ranges:   ranges,
	}
}
