package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type mockExpenseRepository struct {
	adapter.ExpenseRepository
	expenses []*entity.Expense
	err      error

	gotStart, gotEnd time.Time
}

func (m *mockExpenseRepository) FindInRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Expense, error) {
	m.gotStart, m.gotEnd = start, end
	if m.err != nil {
		return nil, m.err
	}
	var result []*entity.Expense
	for _, e := range m.expenses {
		if e.UserID == userID && !e.ExpenseDate.Before(start) && !e.ExpenseDate.After(end) {
			result = append(result, e)
		}
	}
	return result, nil
}

type mockCategoryRepository struct {
	adapter.CategoryRepository
	categories []*entity.Category
	err        error
}

func (m *mockCategoryRepository) FindVisible(_ context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []*entity.Category
	for _, c := range m.categories {
		if c.VisibleTo(userID) {
			result = append(result, c)
		}
	}
	return result, nil
}

type mockUserRepository struct {
	adapter.UserRepository
	users map[uuid.UUID]*entity.User
}

func (m *mockUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return user, nil
}
