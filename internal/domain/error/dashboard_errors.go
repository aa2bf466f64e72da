// Package error defines domain-specific errors for the Expense Tracker application.
package error

import "errors"

// Dashboard domain errors.
var (
	// ErrInvalidArgument is the root of every caller mistake in a summary request.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformedRecord is returned for an expense or category whose fields cannot be parsed.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrUnknownDateRange is returned when the range selector is not supported.
	ErrUnknownDateRange = errors.New("range must be: last-week, last-month, last-quarter, last-year or custom")

	// ErrInvalidCustomRange is returned when a custom range starts after it ends.
	ErrInvalidCustomRange = errors.New("custom range start must not be after its end")

	// ErrInvalidDateFormat is returned when date format is invalid.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrUnknownTimezone is returned when the requested location cannot be loaded.
	ErrUnknownTimezone = errors.New("unknown timezone")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Invalid argument errors (01XXXX)
	ErrCodeUnknownDateRange   DashboardErrorCode = "DSH-010001"
	ErrCodeInvalidCustomRange DashboardErrorCode = "DSH-010002"
	ErrCodeInvalidDateFormat  DashboardErrorCode = "DSH-010003"
	ErrCodeUnknownTimezone    DashboardErrorCode = "DSH-010004"

	// Record errors (02XXXX)
	ErrCodeMalformedRecord DashboardErrorCode = "DSH-020001"

	// Internal errors (99XXXX)
	ErrCodeDashboardInternalError DashboardErrorCode = "DSH-990001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewInvalidArgumentError wraps cause so that errors.Is matches both cause and ErrInvalidArgument.
func NewInvalidArgumentError(code DashboardErrorCode, message string, cause error) *DashboardError {
	return NewDashboardError(code, message, errors.Join(ErrInvalidArgument, cause))
}

// NewMalformedRecordError reports a record that could not be parsed.
func NewMalformedRecordError(message string, cause error) *DashboardError {
	if cause == nil {
		return NewDashboardError(ErrCodeMalformedRecord, message, ErrMalformedRecord)
	}
	return NewDashboardError(ErrCodeMalformedRecord, message, errors.Join(ErrMalformedRecord, cause))
}
