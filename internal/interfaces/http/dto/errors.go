package dto

import (
	"net/http"

	"github.com/dreamshub/backend/internal/domain/shared"
)

// HTTP-layer error codes without a domain counterpart
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeForbidden is used when the actor lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:        http.StatusBadRequest,
	shared.CodeNotFound:          http.StatusNotFound,
	shared.CodeAlreadyExists:     http.StatusConflict,
	shared.CodeInsufficientStock: http.StatusUnprocessableEntity,
	shared.CodeConfiguration:     http.StatusInternalServerError,
	shared.CodeStoreUnavailable:  http.StatusServiceUnavailable,
	shared.CodeUnauthorized:      http.StatusUnauthorized,

	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeForbidden:  http.StatusForbidden,
	ErrCodeInternal:   http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
