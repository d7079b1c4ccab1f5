// Package errors provides the error taxonomy for the selfbank API.
// Services return *AppError values so handlers can map them to consistent
// JSON responses without leaking storage details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so that
// errors.Is(err, ErrInUse) matches copies made by Wrap and WithMessage.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrValidation     = &AppError{Code: "VALIDATION_ERROR", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrDuplicateName  = &AppError{Code: "DUPLICATE_NAME", Message: "A record with this name already exists", StatusCode: http.StatusConflict}
	ErrInUse          = &AppError{Code: "IN_USE", Message: "Record is referenced by other records", StatusCode: http.StatusConflict}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Money movement errors.
var (
	ErrInvalidAmount     = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be positive, at most 9999999999.99, with at most two decimal places", StatusCode: http.StatusBadRequest}
	ErrSameAsset         = &AppError{Code: "SAME_ASSET", Message: "Cannot transfer to the same asset", StatusCode: http.StatusBadRequest}
	ErrAssetNotFound     = &AppError{Code: "ASSET_NOT_FOUND", Message: "Asset not found", StatusCode: http.StatusNotFound}
	ErrInsufficientFunds = &AppError{Code: "INSUFFICIENT_FUNDS", Message: "Insufficient funds in source asset", StatusCode: http.StatusBadRequest}
	ErrTransferFailed    = &AppError{Code: "TRANSFER_FAILED", Message: "Transfer could not be completed", StatusCode: http.StatusInternalServerError}
)

// Transaction journal errors.
var (
	ErrInvalidMonthFormat      = &AppError{Code: "INVALID_MONTH_FORMAT", Message: "Month must be formatted as YYYY-MM", StatusCode: http.StatusBadRequest}
	ErrMissingExpenseReference = &AppError{Code: "MISSING_EXPENSE_REFERENCE", Message: "A payment must reference an expense", StatusCode: http.StatusBadRequest}
	ErrInvalidTransactionType  = &AppError{Code: "VALIDATION_ERROR", Message: "Unsupported transaction type", StatusCode: http.StatusBadRequest}
)
