// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// hexColorRegex is compiled once at package level for performance.
var hexColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// isValidHexColor validates hex color format (#XXXXXX or #XXX).
func isValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

func categoryNotFound() error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNotFound,
		"category not found",
		domainerror.ErrCategoryNotFound,
	)
}

// findVisible loads a category and hides the ones owned by somebody else.
func findVisible(ctx context.Context, repo adapter.CategoryRepository, id string, userID uuid.UUID) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, categoryNotFound()
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if !category.VisibleTo(userID) {
		return nil, categoryNotFound()
	}
	return category, nil
}

// findOwned loads a category the user may change. Built-in categories are read-only.
func findOwned(ctx context.Context, repo adapter.CategoryRepository, id string, userID uuid.UUID) (*entity.Category, error) {
	category, err := findVisible(ctx, repo, id, userID)
	if err != nil {
		return nil, err
	}
	if category.IsDefault() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeDefaultCategoryReadOnly,
			"default categories cannot be modified",
			domainerror.ErrDefaultCategoryReadOnly,
		)
	}
	return category, nil
}

func validateName(name string) error {
	if name == "" {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"name is required",
			nil,
		)
	}
	if len(name) > entity.MaxCategoryNameLength {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", entity.MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}
	return nil
}

func validateColor(color string) error {
	if color != "" && !isValidHexColor(color) {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidColorFormat,
			"color must be a valid hex format (#XXXXXX)",
			domainerror.ErrInvalidColorFormat,
		)
	}
	return nil
}
