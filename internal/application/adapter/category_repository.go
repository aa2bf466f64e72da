// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// FindVisible retrieves the built-in categories plus the ones owned by userID.
	FindVisible(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id string) (*entity.Category, error)

	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// Update saves changes to an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category from the database.
	Delete(ctx context.Context, id string) error

	// HasChildren reports whether any category points at id as its parent.
	HasChildren(ctx context.Context, id string) (bool, error)

	// UpsertDefaults inserts or refreshes the built-in taxonomy.
	UpsertDefaults(ctx context.Context, categories []*entity.Category) error

	// DeleteAllByOwner removes every category owned by a user.
	DeleteAllByOwner(ctx context.Context, ownerID uuid.UUID) error
}
