// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	if err == nil {
		return nil
	}

	var errors []ValidationError

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationError{{
			Field:   "request",
			Tag:     "invalid",
			Message: err.Error(),
		}}
	}

	for _, fieldErr := range validationErrors {
		errors = append(errors, ValidationError{
			Field:   toSnakeCase(fieldErr.Field()),
			Tag:     fieldErr.Tag(),
			Value:   fieldErr.Param(),
			Message: validationMessage(fieldErr),
		})
	}

	return errors
}

func validationMessage(fieldErr validator.FieldError) string {
	field := toSnakeCase(fieldErr.Field())
	switch fieldErr.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return field + " must be one of: " + fieldErr.Param()
	default:
		return field + " is invalid"
	}
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
