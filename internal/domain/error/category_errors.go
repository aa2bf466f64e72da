// Package error defines domain-specific errors for the Expense Tracker application.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found or not visible to the user.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameTooLong is returned when the category name exceeds the maximum length.
	ErrCategoryNameTooLong = errors.New("category name too long")

	// ErrInvalidColorFormat is returned when the category color is not a hex color.
	ErrInvalidColorFormat = errors.New("invalid color format")

	// ErrCategoryTooDeep is returned when a category would become a third level.
	ErrCategoryTooDeep = errors.New("categories can only be nested one level deep")

	// ErrCategoryHasChildren is returned when deleting a main category that still has leaves.
	ErrCategoryHasChildren = errors.New("category still has subcategories")

	// ErrDefaultCategoryReadOnly is returned when modifying a built-in category.
	ErrDefaultCategoryReadOnly = errors.New("default categories cannot be modified")

	// ErrSuggestionUnavailable is returned when no suggestion provider is configured.
	ErrSuggestionUnavailable = errors.New("category suggestion is not available")

	// ErrSuggestionInvalid is returned when the provider answers with an unusable category.
	ErrSuggestionInvalid = errors.New("suggested category is not a known leaf category")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryNameTooLong   CategoryErrorCode = "CAT-010001"
	ErrCodeInvalidColorFormat    CategoryErrorCode = "CAT-010002"
	ErrCodeCategoryNotFound      CategoryErrorCode = "CAT-010004"
	ErrCodeMissingCategoryFields CategoryErrorCode = "CAT-010008"

	// Hierarchy errors (02XXXX)
	ErrCodeCategoryTooDeep         CategoryErrorCode = "CAT-020001"
	ErrCodeCategoryHasChildren     CategoryErrorCode = "CAT-020002"
	ErrCodeDefaultCategoryReadOnly CategoryErrorCode = "CAT-020003"

	// Suggestion errors (03XXXX)
	ErrCodeSuggestionUnavailable CategoryErrorCode = "CAT-030001"
	ErrCodeSuggestionInvalid     CategoryErrorCode = "CAT-030002"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
