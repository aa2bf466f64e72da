package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{
		db: db,
	}
}

// Create inserts a new expense.
func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Create(model.ExpenseFromEntity(expense)).Error
}

// FindByID retrieves an expense by its ID.
func (r *expenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expenseModel model.ExpenseModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&expenseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrExpenseNotFound
		}
		return nil, result.Error
	}
	return expenseModel.ToEntity(), nil
}

// FindByFilter retrieves a page of expenses matching the filter, newest first.
func (r *expenseRepository) FindByFilter(ctx context.Context, filter adapter.ExpenseFilter, pagination adapter.ExpensePagination) (*adapter.ExpenseListResult, error) {
	query := applyExpenseFilter(r.db.WithContext(ctx).Model(&model.ExpenseModel{}), filter)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.Limit < 1 {
		pagination.Limit = 20
	}
	offset := (pagination.Page - 1) * pagination.Limit
	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	if totalPages == 0 {
		totalPages = 1
	}

	var expenseModels []model.ExpenseModel
	result := query.
		Order("expense_date DESC, created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}

	return &adapter.ExpenseListResult{
		Expenses:   toExpenseEntities(expenseModels),
		Total:      total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
	}, nil
}

// FindInRange retrieves every expense of a user with start <= expense_date <= end.
func (r *expenseRepository) FindInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Expense, error) {
	var expenseModels []model.ExpenseModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("expense_date >= ? AND expense_date <= ?", start.UTC(), end.UTC()).
		Order("expense_date ASC, created_at ASC").
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toExpenseEntities(expenseModels), nil
}

// Update saves changes to an existing expense.
func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	result := r.db.WithContext(ctx).Save(model.ExpenseFromEntity(expense))
	return result.Error
}

// Delete removes an expense.
func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ExpenseModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrExpenseNotFound
	}
	return nil
}

// DeleteByFilter removes every expense matching the filter.
func (r *expenseRepository) DeleteByFilter(ctx context.Context, filter adapter.ExpenseFilter) (int64, error) {
	result := applyExpenseFilter(r.db.WithContext(ctx), filter).Delete(&model.ExpenseModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteAllByUser removes every expense of a user.
func (r *expenseRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.ExpenseModel{}).Error
}

func applyExpenseFilter(query *gorm.DB, filter adapter.ExpenseFilter) *gorm.DB {
	query = query.Where("user_id = ?", filter.UserID)

	if filter.StartDate != nil {
		query = query.Where("expense_date >= ?", filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		query = query.Where("expense_date <= ?", filter.EndDate.UTC())
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if filter.MinAmount != nil {
		query = query.Where("amount >= ?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		query = query.Where("amount <= ?", *filter.MaxAmount)
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(description) LIKE ?", searchPattern)
	}
	return query
}

func toExpenseEntities(models []model.ExpenseModel) []*entity.Expense {
	expenses := make([]*entity.Expense, len(models))
	for i := range models {
		expenses[i] = models[i].ToEntity()
	}
	return expenses
}
