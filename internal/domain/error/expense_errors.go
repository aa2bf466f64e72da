// Package error defines domain-specific errors for the Expense Tracker application.
package error

import "errors"

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense does not exist or belongs to another user.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrInvalidExpenseAmount is returned for negative or unparsable amounts.
	ErrInvalidExpenseAmount = errors.New("amount must be a non-negative number")

	// ErrInvalidExpenseDate is returned when the expense date is missing or invalid.
	ErrInvalidExpenseDate = errors.New("invalid expense date")

	// ErrDescriptionTooLong is returned when the description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrCategoryNotLeaf is returned when an expense is assigned to a main category.
	ErrCategoryNotLeaf = errors.New("expenses must use a subcategory")

	// ErrInvalidDeletionScope is returned for an unknown data deletion request.
	ErrInvalidDeletionScope = errors.New("scope must be: all_expenses, date_range or category")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidExpenseAmount   ExpenseErrorCode = "EXP-010001"
	ErrCodeInvalidExpenseDate     ExpenseErrorCode = "EXP-010002"
	ErrCodeDescriptionTooLong     ExpenseErrorCode = "EXP-010003"
	ErrCodeExpenseCategoryInvalid ExpenseErrorCode = "EXP-010004"
	ErrCodeCategoryNotLeaf        ExpenseErrorCode = "EXP-010005"
	ErrCodeMissingExpenseFields   ExpenseErrorCode = "EXP-010006"

	// Lookup errors (02XXXX)
	ErrCodeExpenseNotFound ExpenseErrorCode = "EXP-020001"

	// Deletion errors (03XXXX)
	ErrCodeInvalidDeletionScope ExpenseErrorCode = "EXP-030001"
	ErrCodeInvalidDeletionRange ExpenseErrorCode = "EXP-030002"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
