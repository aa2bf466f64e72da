package dashboard

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

var testUserID = uuid.MustParse("7b0e9c2a-3f51-4f0e-9a43-2d6f1c8e5b10")

func strPtr(s string) *string { return &s }

func testCategories() []*entity.Category {
	return []*entity.Category{
		{ID: "food", Name: "Food"},
		{ID: "groceries", Name: "Groceries", ParentID: strPtr("food")},
		{ID: "dining_out", Name: "Dining Out", ParentID: strPtr("food")},
		{ID: "transport", Name: "Transportation"},
		{ID: "fuel", Name: "Fuel", ParentID: strPtr("transport")},
	}
}

func expenseAt(amount string, categoryID string, at time.Time) *entity.Expense {
	return entity.NewExpense(testUserID, decimal.RequireFromString(amount), categoryID, "", at)
}

func lastWeek(t *testing.T) *ResolvedRange {
	t.Helper()
	return mustResolve(t, ResolveInput{Range: DateRangeLastWeek, Now: fixedNow})
}

func sumSeries(points []SeriesPoint) decimal.Decimal {
	total := decimal.Zero
	for _, p := range points {
		total = total.Add(p.Value)
	}
	return total
}

func TestSummarize_EmptyExpenses(t *testing.T) {
	summary := Summarize(nil, testCategories(), lastWeek(t))

	if !summary.Total.IsZero() {
		t.Errorf("expected total 0, got %s", summary.Total)
	}
	if len(summary.ByCategory) != 0 {
		t.Errorf("expected empty byCategory, got %v", summary.ByCategory)
	}
	if len(summary.TimeSeries) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(summary.TimeSeries))
	}
	for i, p := range summary.TimeSeries {
		if !p.Value.IsZero() {
			t.Errorf("expected bucket %d to be 0, got %s", i, p.Value)
		}
	}
	if summary.TopCategories == nil || len(summary.TopCategories) != 0 {
		t.Errorf("expected empty top categories, got %v", summary.TopCategories)
	}
}

func TestSummarize_SameCategoryToday(t *testing.T) {
	expenses := []*entity.Expense{
		expenseAt("100", "groceries", fixedNow),
		expenseAt("50", "groceries", fixedNow.Add(-time.Hour)),
	}

	summary := Summarize(expenses, testCategories(), lastWeek(t))

	if !summary.Total.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected total 150, got %s", summary.Total)
	}
	if got := summary.ByCategory["groceries"]; !got.Equal(decimal.NewFromInt(150)) || len(summary.ByCategory) != 1 {
		t.Errorf("expected byCategory {groceries: 150}, got %v", summary.ByCategory)
	}
	if got := summary.ByMainCategory["food"]; !got.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected food rollup 150, got %s", got)
	}

	last := len(summary.TimeSeries) - 1
	if !summary.TimeSeries[last].Value.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected today's bucket to be 150, got %s", summary.TimeSeries[last].Value)
	}
	for i := 0; i < last; i++ {
		if !summary.TimeSeries[i].Value.IsZero() {
			t.Errorf("expected bucket %d to be 0, got %s", i, summary.TimeSeries[i].Value)
		}
	}

	if len(summary.TopCategories) != 1 {
		t.Fatalf("expected 1 top category, got %d", len(summary.TopCategories))
	}
	top := summary.TopCategories[0]
	if top.Label != "Groceries" || !top.Value.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected {Groceries 150}, got {%s %s}", top.Label, top.Value)
	}
}

func TestSummarize_WindowBoundariesAreInclusive(t *testing.T) {
	window := lastWeek(t)
	expenses := []*entity.Expense{
		expenseAt("10", "fuel", window.Start),
		expenseAt("5", "fuel", window.End),
		expenseAt("99", "fuel", window.Start.Add(-time.Nanosecond)),
		expenseAt("99", "fuel", window.End.Add(time.Nanosecond)),
	}

	summary := Summarize(expenses, testCategories(), window)

	if !summary.Total.Equal(decimal.NewFromInt(15)) {
		t.Errorf("expected total 15, got %s", summary.Total)
	}
	if !summary.TimeSeries[0].Value.Equal(decimal.NewFromInt(10)) {
		t.Errorf("expected first bucket 10, got %s", summary.TimeSeries[0].Value)
	}
	if !summary.TimeSeries[6].Value.Equal(decimal.NewFromInt(5)) {
		t.Errorf("expected last bucket 5, got %s", summary.TimeSeries[6].Value)
	}
	if summary.ExpenseCount != 2 {
		t.Errorf("expected 2 expenses in window, got %d", summary.ExpenseCount)
	}
}

func TestSummarize_UnresolvedCategory(t *testing.T) {
	expenses := []*entity.Expense{
		expenseAt("20", "nonexistent-id", fixedNow),
		expenseAt("30", "groceries", fixedNow),
	}

	summary := Summarize(expenses, testCategories(), lastWeek(t))

	if !summary.Total.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected total 50, got %s", summary.Total)
	}
	if _, ok := summary.ByCategory["nonexistent-id"]; ok {
		t.Error("expected unresolved category to be absent from byCategory")
	}
	if !summary.Unattributed.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected unattributed 20, got %s", summary.Unattributed)
	}
	for _, top := range summary.TopCategories {
		if top.CategoryID == "nonexistent-id" {
			t.Error("expected unresolved category to be absent from top categories")
		}
	}
}

func TestSummarize_TopFive(t *testing.T) {
	var categories []*entity.Category
	var expenses []*entity.Expense
	for i := 1; i <= 10; i++ {
		id := fmt.Sprintf("leaf-%02d", i)
		categories = append(categories, &entity.Category{ID: id, Name: fmt.Sprintf("Leaf %d", i), ParentID: strPtr("main")})
		expenses = append(expenses, expenseAt(fmt.Sprintf("%d.25", i*10), id, fixedNow))
	}

	summary := Summarize(expenses, categories, lastWeek(t))

	if len(summary.TopCategories) != TopCategoriesLimit {
		t.Fatalf("expected %d top categories, got %d", TopCategoriesLimit, len(summary.TopCategories))
	}
	want := []string{"leaf-10", "leaf-09", "leaf-08", "leaf-07", "leaf-06"}
	for i, top := range summary.TopCategories {
		if top.CategoryID != want[i] {
			t.Errorf("expected rank %d to be %s, got %s", i, want[i], top.CategoryID)
		}
		if i > 0 && !summary.TopCategories[i-1].Value.GreaterThan(top.Value) {
			t.Errorf("expected strictly descending totals at rank %d", i)
		}
	}
}

func TestSummarize_TiesKeepFirstSeenOrder(t *testing.T) {
	expenses := []*entity.Expense{
		expenseAt("10", "fuel", fixedNow),
		expenseAt("10", "dining_out", fixedNow),
		expenseAt("25", "groceries", fixedNow),
	}

	summary := Summarize(expenses, testCategories(), lastWeek(t))

	got := make([]string, len(summary.TopCategories))
	for i, top := range summary.TopCategories {
		got[i] = top.CategoryID
	}
	want := []string{"groceries", "fuel", "dining_out"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSummarize_EmptyCategories(t *testing.T) {
	expenses := []*entity.Expense{expenseAt("12.50", "groceries", fixedNow)}

	summary := Summarize(expenses, nil, lastWeek(t))

	if len(summary.ByCategory) != 0 {
		t.Errorf("expected empty byCategory, got %v", summary.ByCategory)
	}
	if !summary.Total.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("expected total 12.50, got %s", summary.Total)
	}
}

func TestSummarize_Properties(t *testing.T) {
	window := mustResolve(t, ResolveInput{Range: DateRangeLastYear, Now: fixedNow})

	var expenses []*entity.Expense
	categoryIDs := []string{"groceries", "dining_out", "fuel", "unknown", "food"}
	for day := 0; day < 500; day += 3 {
		at := window.Start.AddDate(0, 0, day).Add(time.Duration(day%24) * time.Hour)
		amount := fmt.Sprintf("%d.%02d", day%97, day%100)
		expenses = append(expenses, expenseAt(amount, categoryIDs[day%len(categoryIDs)], at))
	}

	first := Summarize(expenses, testCategories(), window)
	second := Summarize(expenses, testCategories(), window)

	t.Run("idempotent", func(t *testing.T) {
		if !reflect.DeepEqual(first, second) {
			t.Error("expected identical summaries for identical inputs")
		}
	})

	t.Run("conservation", func(t *testing.T) {
		attributed := decimal.Zero
		for _, v := range first.ByCategory {
			attributed = attributed.Add(v)
		}
		if !attributed.Add(first.Unattributed).Equal(first.Total) {
			t.Errorf("expected %s + %s to equal %s", attributed, first.Unattributed, first.Total)
		}
		if attributed.GreaterThan(first.Total) {
			t.Errorf("expected attributed %s not to exceed total %s", attributed, first.Total)
		}
	})

	t.Run("bucket coverage", func(t *testing.T) {
		if got := sumSeries(first.TimeSeries); !got.Equal(first.Total) {
			t.Errorf("expected series sum %s to equal total %s", got, first.Total)
		}
	})

	t.Run("bucket count does not depend on data", func(t *testing.T) {
		empty := Summarize(nil, nil, window)
		if len(empty.TimeSeries) != len(first.TimeSeries) {
			t.Errorf("expected %d buckets, got %d", len(first.TimeSeries), len(empty.TimeSeries))
		}
	})

	t.Run("top categories bounded and sorted", func(t *testing.T) {
		if len(first.TopCategories) > TopCategoriesLimit {
			t.Errorf("expected at most %d entries, got %d", TopCategoriesLimit, len(first.TopCategories))
		}
		for i := 1; i < len(first.TopCategories); i++ {
			if first.TopCategories[i].Value.GreaterThan(first.TopCategories[i-1].Value) {
				t.Errorf("expected non-increasing totals at rank %d", i)
			}
		}
	})
}
