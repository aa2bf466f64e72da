// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// CategoryOption is a leaf category offered to the suggester.
type CategoryOption struct {
	ID         string
	Name       string
	ParentName string
}

// CategorySuggestion is the suggester's pick for a description.
type CategorySuggestion struct {
	CategoryID string
	Confidence float64
	Reasoning  string
}

// CategorySuggester proposes a leaf category for an expense description.
type CategorySuggester interface {
	// Suggest returns the best matching option for description.
	Suggest(ctx context.Context, description string, options []CategoryOption) (*CategorySuggestion, error)

	// IsAvailable checks if the provider is configured.
	IsAvailable() bool
}
