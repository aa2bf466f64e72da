// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID string
	UserID     uuid.UUID
}

// DeleteCategoryUseCase handles category deletion logic.
// Expenses that pointed at the category are kept and stop being attributed.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	category, err := findOwned(ctx, uc.categoryRepo, input.CategoryID, input.UserID)
	if err != nil {
		return err
	}

	if category.IsMain() {
		hasChildren, err := uc.categoryRepo.HasChildren(ctx, category.ID)
		if err != nil {
			return fmt.Errorf("failed to check subcategories: %w", err)
		}
		if hasChildren {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryHasChildren,
				"delete the subcategories first",
				domainerror.ErrCategoryHasChildren,
			)
		}
	}

	if err := uc.categoryRepo.Delete(ctx, category.ID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
