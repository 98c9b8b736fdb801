package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormatBindingError converts a gin binding failure into a ValidationFailed
// domain error listing every offending field, not just the first.
func FormatBindingError(err error) *AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{
				Field:   strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
				Message: validationMessage(fe),
				Value:   fe.Value(),
			})
		}
		return NewValidationError(fields)
	}
	return &AppError{Code: CodeValidationFailed, Message: "malformed request body"}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	default:
		return "is invalid"
	}
}
