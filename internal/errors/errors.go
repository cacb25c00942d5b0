package errors

import (
	"fmt"
	"net/http"
)

// Kind categorizes application errors.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindInvalidKey      Kind = "invalid_key"
	KindUnknownMethod   Kind = "unknown_method"
	KindDegenerateImage Kind = "degenerate_image"
	KindShapeMismatch   Kind = "shape_mismatch"
	KindNetwork         Kind = "network"
	KindProcessing      Kind = "processing"
	KindNotFound        Kind = "not_found"
	KindInternal        Kind = "internal"
)

// AppError is a structured application error with an HTTP status mapping.
type AppError struct {
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	StatusCode int    `json:"status_code"`
	Cause      error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewInvalidKeyError reports a key outside [1,255].
func NewInvalidKeyError(key int) *AppError {
	return &AppError{
		Kind:       KindInvalidKey,
		Message:    fmt.Sprintf("key must be in [1,255], got %d", key),
		StatusCode: http.StatusBadRequest,
	}
}

// NewUnknownMethodError reports a method outside the fixed set.
func NewUnknownMethodError(method string) *AppError {
	return &AppError{
		Kind:       KindUnknownMethod,
		Message:    fmt.Sprintf("unknown transform method %q", method),
		StatusCode: http.StatusBadRequest,
	}
}

// NewDegenerateImageError reports a zero-area buffer.
func NewDegenerateImageError(width, height int) *AppError {
	return &AppError{
		Kind:       KindDegenerateImage,
		Message:    fmt.Sprintf("degenerate image: %dx%d", width, height),
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// NewShapeMismatchError reports a transform result whose shape diverged
// from its input. This is an internal invariant violation and must never
// surface in correct code; it is checked defensively.
func NewShapeMismatchError(message string) *AppError {
	return &AppError{
		Kind:       KindShapeMismatch,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// NewNetworkError creates a new network error.
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindNetwork,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewProcessingError creates a new processing error.
func NewProcessingError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindProcessing,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Kind:       KindInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsKind checks if the error is of a specific kind.
func IsKind(err error, kind Kind) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Kind == kind
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error.
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
