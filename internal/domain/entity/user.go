// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account owner in the Expense Tracker system.
type User struct {
	ID              uuid.UUID
	Email           string
	Name            string
	PasswordHash    string
	Timezone        string // IANA name used for day boundaries in summaries
	WeeklyDigest    bool
	TermsAcceptedAt time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser creates a new User with default preferences.
func NewUser(email, name, passwordHash string, termsAcceptedAt time.Time) *User {
	now := time.Now().UTC()
	return &User{
		ID:              uuid.New(),
		Email:           email,
		Name:            name,
		PasswordHash:    passwordHash,
		Timezone:        "UTC",
		WeeklyDigest:    true,
		TermsAcceptedAt: termsAcceptedAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
