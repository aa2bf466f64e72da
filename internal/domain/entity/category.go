// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// MaxCategoryNameLength is the longest category name accepted.
const MaxCategoryNameLength = 50

// Category is a node of the two-level taxonomy. Main categories have no parent;
// leaf categories point at a main category and are the only ones expenses use.
type Category struct {
	ID        string
	Name      string
	Icon      string
	Color     string
	ParentID  *string
	OwnerID   *uuid.UUID // nil for built-in categories
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a user-owned category with a generated id.
// Color and icon defaults are applied by the caller.
func NewCategory(name, icon, color string, parentID *string, ownerID uuid.UUID) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.NewString(),
		Name:      name,
		Icon:      icon,
		Color:     color,
		ParentID:  parentID,
		OwnerID:   &ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsMain reports whether the category groups other categories.
func (c *Category) IsMain() bool {
	return c.ParentID == nil || *c.ParentID == ""
}

// IsLeaf reports whether expenses can be assigned to the category.
func (c *Category) IsLeaf() bool {
	return !c.IsMain()
}

// IsDefault reports whether the category is part of the built-in taxonomy.
func (c *Category) IsDefault() bool {
	return c.OwnerID == nil
}

// VisibleTo reports whether userID can see and use the category.
func (c *Category) VisibleTo(userID uuid.UUID) bool {
	return c.OwnerID == nil || *c.OwnerID == userID
}

// CategoryNode is a main category with its leaves, used for tree listings.
type CategoryNode struct {
	Category *Category
	Children []*Category
}
