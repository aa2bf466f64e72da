// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// FindVisible retrieves the built-in categories plus the ones owned by userID.
// Mains come before leaves so a tree can be built in one pass.
func (r *categoryRepository) FindVisible(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	result := r.db.WithContext(ctx).
		Where("owner_id IS NULL OR owner_id = ?", userID).
		Order("CASE WHEN parent_id IS NULL THEN 0 ELSE 1 END, created_at ASC, id ASC").
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id string) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(model.CategoryFromEntity(category)).Error
}

// Update saves changes to an existing category.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Save(model.CategoryFromEntity(category)).Error
}

// Delete removes a category from the database.
func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.CategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}

// HasChildren reports whether any category points at id as its parent.
func (r *categoryRepository) HasChildren(ctx context.Context, id string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.CategoryModel{}).Where("parent_id = ?", id).Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// UpsertDefaults inserts the built-in taxonomy, refreshing name, icon, color and parent
// of rows that already exist. Running it twice leaves the table unchanged.
func (r *categoryRepository) UpsertDefaults(ctx context.Context, categories []*entity.Category) error {
	if len(categories) == 0 {
		return nil
	}

	models := make([]*model.CategoryModel, len(categories))
	for i, category := range categories {
		models[i] = model.CategoryFromEntity(category)
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "icon", "color", "parent_id", "updated_at"}),
		}).
		Create(&models).Error
}

// DeleteAllByOwner removes every category owned by a user. Leaves go first so
// no row is left pointing at a deleted parent.
func (r *categoryRepository) DeleteAllByOwner(ctx context.Context, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ? AND parent_id IS NOT NULL", ownerID).Delete(&model.CategoryModel{}).Error; err != nil {
			return err
		}
		return tx.Where("owner_id = ?", ownerID).Delete(&model.CategoryModel{}).Error
	})
}
