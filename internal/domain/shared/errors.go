package shared

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorf creates a new domain error with a formatted message
func NewDomainErrorf(code, format string, args ...any) *DomainError {
	return &DomainError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error codes shared across the domain
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeConfiguration     = "CONFIGURATION_ERROR"
	CodeStoreUnavailable  = "STORE_UNAVAILABLE"
	CodeNotFound          = "NOT_FOUND"
	CodeAlreadyExists     = "ALREADY_EXISTS"
	CodeUnauthorized      = "UNAUTHORIZED"
)

// Common domain errors
var (
	ErrNotFound          = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists     = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrValidation        = NewDomainError(CodeValidation, "Invalid input provided")
	ErrInsufficientStock = NewDomainError(CodeInsufficientStock, "Insufficient stock available")
	ErrConfiguration     = NewDomainError(CodeConfiguration, "Required reference entity is missing")
	ErrStoreUnavailable  = NewDomainError(CodeStoreUnavailable, "The backing store rejected the operation")
	ErrUnauthorized      = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
)

// Is matches domain errors by code, so errors.Is works against the
// sentinel values above regardless of the concrete message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// CodeOf extracts the domain error code, or "" for non-domain errors
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsNotFound reports whether err carries the NOT_FOUND code
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// NewStoreError wraps a store-level failure, preserving the driver message
func NewStoreError(err error) *DomainError {
	return NewDomainErrorf(CodeStoreUnavailable, "store operation failed: %v", err)
}
