package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// UserModel represents the user table in the database.
type UserModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email           string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name            string    `gorm:"type:varchar(100);not null"`
	PasswordHash    string    `gorm:"type:varchar(255);not null"`
	Timezone        string    `gorm:"type:varchar(64);not null"`
	WeeklyDigest    bool      `gorm:"not null;index"`
	TermsAcceptedAt time.Time `gorm:"not null"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:              m.ID,
		Email:           m.Email,
		Name:            m.Name,
		PasswordHash:    m.PasswordHash,
		Timezone:        m.Timezone,
		WeeklyDigest:    m.WeeklyDigest,
		TermsAcceptedAt: m.TermsAcceptedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromEntity creates a UserModel from a domain User entity.
func FromEntity(user *entity.User) *UserModel {
	timezone := user.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	return &UserModel{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		PasswordHash:    user.PasswordHash,
		Timezone:        timezone,
		WeeklyDigest:    user.WeeklyDigest,
		TermsAcceptedAt: user.TermsAcceptedAt,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}

// AllModels lists every model managed by AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&CategoryModel{},
		&ExpenseModel{},
		&EmailQueueModel{},
	}
}
