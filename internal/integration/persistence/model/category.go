// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
// Built-in categories have a NULL owner_id and keep their slug as id.
type CategoryModel struct {
	ID        string     `gorm:"type:varchar(64);primaryKey"`
	Name      string     `gorm:"type:varchar(50);not null"`
	Color     string     `gorm:"type:varchar(7);not null"`
	Icon      string     `gorm:"type:varchar(50);not null"`
	ParentID  *string    `gorm:"type:varchar(64);index"`
	OwnerID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:        m.ID,
		Name:      m.Name,
		Color:     m.Color,
		Icon:      m.Icon,
		ParentID:  m.ParentID,
		OwnerID:   m.OwnerID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	parentID := category.ParentID
	if parentID != nil && *parentID == "" {
		parentID = nil
	}

	return &CategoryModel{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		ParentID:  parentID,
		OwnerID:   category.OwnerID,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}
