// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// SeedDefaultsUseCase installs the built-in taxonomy. Running it again refreshes
// names and styling without duplicating rows.
type SeedDefaultsUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewSeedDefaultsUseCase creates a new SeedDefaultsUseCase instance.
func NewSeedDefaultsUseCase(categoryRepo adapter.CategoryRepository) *SeedDefaultsUseCase {
	return &SeedDefaultsUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute seeds the default categories.
func (uc *SeedDefaultsUseCase) Execute(ctx context.Context) error {
	defaults := entity.DefaultCategories()

	if err := uc.categoryRepo.UpsertDefaults(ctx, defaults); err != nil {
		return fmt.Errorf("failed to seed default categories: %w", err)
	}

	slog.Info("Default categories seeded", "count", len(defaults))
	return nil
}
