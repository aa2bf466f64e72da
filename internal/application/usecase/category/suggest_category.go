// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// SuggestCategoryInput represents the input for a category suggestion.
type SuggestCategoryInput struct {
	UserID      uuid.UUID
	Description string
}

// SuggestCategoryOutput represents the suggested leaf category.
type SuggestCategoryOutput struct {
	Category   *entity.Category
	Confidence float64
	Reasoning  string
}

// SuggestCategoryUseCase asks the suggester for the leaf category that best fits a description.
type SuggestCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	suggester    adapter.CategorySuggester
}

// NewSuggestCategoryUseCase creates a new SuggestCategoryUseCase instance.
func NewSuggestCategoryUseCase(categoryRepo adapter.CategoryRepository, suggester adapter.CategorySuggester) *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{
		categoryRepo: categoryRepo,
		suggester:    suggester,
	}
}

// Execute returns the suggestion.
func (uc *SuggestCategoryUseCase) Execute(ctx context.Context, input SuggestCategoryInput) (*SuggestCategoryOutput, error) {
	if uc.suggester == nil || !uc.suggester.IsAvailable() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeSuggestionUnavailable,
			"category suggestion is not configured",
			domainerror.ErrSuggestionUnavailable,
		)
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"description is required",
			nil,
		)
	}

	categories, err := uc.categoryRepo.FindVisible(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	leaves := make(map[string]*entity.Category)
	options := make([]adapter.CategoryOption, 0, len(categories))
	for _, c := range categories {
		if !c.IsLeaf() {
			continue
		}
		leaves[c.ID] = c
		options = append(options, adapter.CategoryOption{
			ID:         c.ID,
			Name:       c.Name,
			ParentName: names[*c.ParentID],
		})
	}

	suggestion, err := uc.suggester.Suggest(ctx, description, options)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest category: %w", err)
	}

	category, ok := leaves[suggestion.CategoryID]
	if !ok {
		slog.Warn("Suggester answered with an unknown category",
			"userID", input.UserID,
			"categoryID", suggestion.CategoryID,
		)
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeSuggestionInvalid,
			"no matching category found",
			domainerror.ErrSuggestionInvalid,
		)
	}

	return &SuggestCategoryOutput{
		Category:   category,
		Confidence: suggestion.Confidence,
		Reasoning:  suggestion.Reasoning,
	}, nil
}
