// Package errors defines the storefront's application error taxonomy.
package errors

import (
	"net/http"

	"megamart/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Network errors: no response received from the backend at all.
	ErrNetworkUnavailable = NewBaseError(
		http.StatusBadGateway,
		"NETWORK_ERROR",
		"Could not reach the store. Please check your connection.",
		"",
	)

	// Auth errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Incorrect email or password.",
		"",
	)

	ErrAuthRequired = NewBaseError(
		http.StatusUnauthorized,
		"AUTH_REQUIRED",
		"Please sign in to continue.",
		"",
	)

	// ErrSessionExpired is the hard-logout error: the access token was
	// rejected and the refresh attempt failed, so no session state survives.
	ErrSessionExpired = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_EXPIRED",
		"Your session has expired. Please sign in again.",
		"",
	)

	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"The submitted data is invalid.",
		"",
	)

	// Resource errors
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"The requested resource was not found.",
		"",
	)

	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"This product is no longer available.",
		"",
	)

	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"No order with that reference exists.",
		"",
	)

	ErrInvalidStatusChange = NewBaseError(
		http.StatusConflict,
		"INVALID_STATUS_CHANGE",
		"The order cannot move to that status.",
		"",
	)

	ErrEmptyCart = NewBaseError(
		http.StatusConflict,
		"EMPTY_CART",
		"Your cart is empty.",
		"",
	)

	// Storage errors
	ErrStorageFailed = NewBaseError(
		http.StatusInternalServerError,
		"STORAGE_FAILED",
		"Local storage operation failed.",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Something went wrong.",
		"",
	)
)

// RemoteCallError represents a non-2xx reply from the backend REST API,
// implementing the AppError interface with the server-provided message.
type RemoteCallError struct {
	status  int
	message string
	details string
}

// NewRemoteCallError creates a backend-reply error. An empty message falls
// back to the generic status text.
func NewRemoteCallError(status int, message, details string) AppError {
	if message == "" {
		message = http.StatusText(status)
	}

	return &RemoteCallError{
		status:  status,
		message: message,
		details: details,
	}
}

// Error implements the error interface
func (e *RemoteCallError) Error() string {
	return e.message
}

// HTTPCode returns the HTTP status code reported by the backend
func (e *RemoteCallError) HTTPCode() int {
	return e.status
}

// ErrorCode returns the business error code
func (e *RemoteCallError) ErrorCode() string {
	if e.status >= http.StatusBadRequest && e.status < http.StatusInternalServerError {
		return "BACKEND_REJECTED"
	}

	return "BACKEND_ERROR"
}

// Message returns the user-friendly error message
func (e *RemoteCallError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *RemoteCallError) Details() string {
	return e.details
}
