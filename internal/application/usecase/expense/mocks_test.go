package expense

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type memoryExpenseRepository struct {
	expenses map[uuid.UUID]*entity.Expense
}

func newMemoryExpenseRepository() *memoryExpenseRepository {
	return &memoryExpenseRepository{expenses: make(map[uuid.UUID]*entity.Expense)}
}

func (r *memoryExpenseRepository) matches(e *entity.Expense, f adapter.ExpenseFilter) bool {
	if e.UserID != f.UserID {
		return false
	}
	if len(f.CategoryIDs) > 0 {
		found := false
		for _, id := range f.CategoryIDs {
			found = found || id == e.CategoryID
		}
		if !found {
			return false
		}
	}
	if f.StartDate != nil && e.ExpenseDate.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && e.ExpenseDate.After(*f.EndDate) {
		return false
	}
	if f.MinAmount != nil && e.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && e.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	return f.Search == "" || strings.Contains(strings.ToLower(e.Description), strings.ToLower(f.Search))
}

func (r *memoryExpenseRepository) Create(_ context.Context, e *entity.Expense) error {
	r.expenses[e.ID] = e
	return nil
}

func (r *memoryExpenseRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Expense, error) {
	e, ok := r.expenses[id]
	if !ok {
		return nil, domainerror.ErrExpenseNotFound
	}
	return e, nil
}

func (r *memoryExpenseRepository) FindByFilter(_ context.Context, f adapter.ExpenseFilter, p adapter.ExpensePagination) (*adapter.ExpenseListResult, error) {
	var all []*entity.Expense
	for _, e := range r.expenses {
		if r.matches(e, f) {
			all = append(all, e)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ExpenseDate.After(all[j].ExpenseDate) })

	start := (p.Page - 1) * p.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + p.Limit
	if end > len(all) {
		end = len(all)
	}
	return &adapter.ExpenseListResult{
		Expenses:   all[start:end],
		Total:      int64(len(all)),
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: (len(all) + p.Limit - 1) / p.Limit,
	}, nil
}

func (r *memoryExpenseRepository) FindInRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Expense, error) {
	var result []*entity.Expense
	for _, e := range r.expenses {
		if r.matches(e, adapter.ExpenseFilter{UserID: userID, StartDate: &start, EndDate: &end}) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *memoryExpenseRepository) Update(_ context.Context, e *entity.Expense) error {
	r.expenses[e.ID] = e
	return nil
}

func (r *memoryExpenseRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.expenses, id)
	return nil
}

func (r *memoryExpenseRepository) DeleteByFilter(_ context.Context, f adapter.ExpenseFilter) (int64, error) {
	var n int64
	for id, e := range r.expenses {
		if r.matches(e, f) {
			delete(r.expenses, id)
			n++
		}
	}
	return n, nil
}

func (r *memoryExpenseRepository) DeleteAllByUser(_ context.Context, userID uuid.UUID) error {
	_, err := r.DeleteByFilter(context.Background(), adapter.ExpenseFilter{UserID: userID})
	return err
}

type memoryCategoryRepository struct {
	adapter.CategoryRepository
	categories map[string]*entity.Category
}

func newMemoryCategoryRepository() *memoryCategoryRepository {
	repo := &memoryCategoryRepository{categories: make(map[string]*entity.Category)}
	for _, c := range entity.DefaultCategories() {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *memoryCategoryRepository) FindByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return c, nil
}

func (r *memoryCategoryRepository) FindVisible(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var result []*entity.Category
	for _, c := range r.categories {
		if c.VisibleTo(userID) {
			result = append(result, c)
		}
	}
	return result, nil
}
