package dto

import (
	"time"

	"github.com/expense-tracker/backend/internal/application/usecase/category"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name     string  `json:"name" binding:"required,min=1"`
	Color    string  `json:"color,omitempty"`
	Icon     string  `json:"icon,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,min=1"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

// SuggestCategoryRequest represents the request body for category suggestion.
type SuggestCategoryRequest struct {
	Description string `json:"description" binding:"required,min=1,max=255"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Color     string     `json:"color"`
	Icon      string     `json:"icon"`
	ParentID  *string    `json:"parent_id"`
	IsDefault bool       `json:"is_default"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// CategoryNodeResponse is a main category with its leaves.
type CategoryNodeResponse struct {
	CategoryResponse
	Children []CategoryResponse `json:"children"`
}

// CategoryTreeResponse represents the response for listing categories.
type CategoryTreeResponse struct {
	Categories []CategoryNodeResponse `json:"categories"`
}

// CategorySuggestionResponse represents the response for category suggestion.
type CategorySuggestionResponse struct {
	Category   CategoryResponse `json:"category"`
	Confidence float64          `json:"confidence"`
	Reasoning  string           `json:"reasoning,omitempty"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	resp := CategoryResponse{
		ID:        cat.ID,
		Name:      cat.Name,
		Color:     cat.Color,
		Icon:      cat.Icon,
		IsDefault: cat.IsDefault(),
	}
	if cat.IsLeaf() {
		parentID := *cat.ParentID
		resp.ParentID = &parentID
	}
	if !cat.CreatedAt.IsZero() {
		createdAt := cat.CreatedAt
		resp.CreatedAt = &createdAt
	}
	return resp
}

// ToCategoryTreeResponse converts a list output to the nested tree DTO.
func ToCategoryTreeResponse(output *category.ListCategoriesOutput) CategoryTreeResponse {
	nodes := make([]CategoryNodeResponse, len(output.Tree))
	for i, node := range output.Tree {
		children := make([]CategoryResponse, len(node.Children))
		for j, child := range node.Children {
			children[j] = ToCategoryResponse(child)
		}
		nodes[i] = CategoryNodeResponse{
			CategoryResponse: ToCategoryResponse(node.Category),
			Children:         children,
		}
	}
	return CategoryTreeResponse{Categories: nodes}
}

// ToCategorySuggestionResponse converts a suggestion output to its DTO.
func ToCategorySuggestionResponse(output *category.SuggestCategoryOutput) CategorySuggestionResponse {
	return CategorySuggestionResponse{
		Category:   ToCategoryResponse(output.Category),
		Confidence: output.Confidence,
		Reasoning:  output.Reasoning,
	}
}
