// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	UserID   uuid.UUID
	Name     string
	Color    string  // Optional, defaults to DefaultCategoryColor
	Icon     string  // Optional, defaults to DefaultCategoryIcon
	ParentID *string // Optional, nil creates a main category
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name := strings.TrimSpace(input.Name)

	// 1. Validate fields
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateColor(input.Color); err != nil {
		return nil, err
	}

	// 2. A parent must be a visible main category
	var parentID *string
	if input.ParentID != nil && *input.ParentID != "" {
		parent, err := findVisible(ctx, uc.categoryRepo, *input.ParentID, input.UserID)
		if err != nil {
			return nil, err
		}
		if !parent.IsMain() {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryTooDeep,
				"subcategories can only be created under a main category",
				domainerror.ErrCategoryTooDeep,
			)
		}
		parentID = &parent.ID
	}

	// 3. Apply defaults for optional fields
	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	icon := input.Icon
	if icon == "" {
		icon = entity.DefaultCategoryIcon
	}

	category := entity.NewCategory(name, icon, color, parentID, input.UserID)

	// 4. Persist
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}
