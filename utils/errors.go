package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain error codes. Each maps to a distinct caller-visible status so the
// UI can tell "log in again" from "account suspended" from "not found".
const (
	CodeUnauthenticated   = "unauthenticated"
	CodeForbidden         = "forbidden"
	CodeNotFound          = "notFound"
	CodeValidationFailed  = "validationFailed"
	CodeDuplicateReview   = "duplicateReview"
	CodeHasActiveBookings = "hasActiveBookings"
	CodeUploadFailed      = "uploadFailed"
)

// FieldError describes one offending field in a validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// AppError is the domain error carried from services to the HTTP boundary.
type AppError struct {
	Code    string
	Message string
	Fields  []FieldError
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NewValidationError builds a ValidationFailed error carrying the complete
// list of offending fields.
func NewValidationError(fields []FieldError) *AppError {
	return &AppError{
		Code:    CodeValidationFailed,
		Message: "request validation failed",
		Fields:  fields,
	}
}

// AsAppError unwraps err into an *AppError if it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HTTPStatus maps a domain error code to its HTTP status.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidationFailed:
		return http.StatusBadRequest
	case CodeDuplicateReview, CodeHasActiveBookings:
		return http.StatusConflict
	case CodeUploadFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
