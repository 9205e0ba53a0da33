// Package errors defines the application error taxonomy. Every failure an
// engine can produce maps onto one of these values so the HTTP layer can
// translate errors into responses without inspecting engine internals.
package errors

import (
	"net/http"

	"addrbook/internal/errors"
)

// AppError is the contract between the engines and the delivery layer.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Machine-readable business error code
	Message() string   // User-facing error message
	Details() string   // Extra context, operator-facing only
}

// BaseError is the canonical AppError implementation.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-facing error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy of the error carrying extra detail text.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// WithMessage returns a copy of the error with a different user-facing
// message. The HTTP code and error code stay fixed.
func (e *BaseError) WithMessage(message string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   message,
		details:   e.details,
	}
}

// Predefined error types.
var (
	// ErrUnauthorized covers every authentication failure. A missing
	// header, a malformed token, an unknown client and a wrong secret all
	// collapse to this value so callers cannot tell which step failed.
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Unauthorized",
		"",
	)

	// ErrBadRequest covers malformed path or query identifiers.
	ErrBadRequest = NewBaseError(
		http.StatusBadRequest,
		"BAD_REQUEST",
		"Invalid request",
		"",
	)

	// ErrValidationFailed covers payloads rejected by the address schema.
	// Use WithMessage to carry the field-level reason.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Validation failed",
		"",
	)

	// ErrDuplicateAddress is returned when a creation payload matches an
	// existing record on all six comparable fields. The message is fixed.
	ErrDuplicateAddress = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_ADDRESS",
		"An identical address already exists for this user",
		"",
	)

	// ErrInternalError is the generic server-side failure.
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// DatabaseExecuteError wraps a storage-layer failure. The raw error text is
// exposed through Details for operator diagnosis only; the client always
// sees the generic message.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error.
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface.
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code.
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code.
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-facing error message.
func (e *DatabaseExecuteError) Message() string {
	return "Internal server error"
}

// Details returns the underlying storage error text.
func (e *DatabaseExecuteError) Details() string {
	if e.details != "" {
		return e.details + ": " + e.err.Error()
	}

	return e.err.Error()
}

// Unwrap exposes the wrapped storage error.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}
