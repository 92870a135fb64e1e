package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrMemberNotFound is returned when a roster member is not found.
	ErrMemberNotFound = errors.New("member not found")
	// ErrPermissionDenied is returned when a member lacks a required flag.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrAdminOnly is returned when a non-admin calls an admin operation.
	ErrAdminOnly = errors.New("admin access required")
	// ErrInvalidCategory is returned for an unknown announcement category.
	ErrInvalidCategory = errors.New("invalid announcement category")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrMemberNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "MEMBER_NOT_FOUND")
	case ErrPermissionDenied:
		return NewHTTPError(http.StatusForbidden, err.Error(), "PERMISSION_DENIED")
	case ErrAdminOnly:
		return NewHTTPError(http.StatusForbidden, err.Error(), "ADMIN_ONLY")
	case ErrInvalidCategory:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CATEGORY")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
