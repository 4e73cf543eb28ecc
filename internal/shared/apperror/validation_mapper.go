package apperror

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	// postalCode -> postal code, line_1 -> line 1
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_':
			b.WriteRune(' ')
		case i > 0 && r >= 'A' && r <= 'Z':
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	caser := cases.Title(language.English)
	return caser.String(b.String())
}

func fieldKey(e validator.FieldError) string {
	// Namespace: CreateClientRequest.address.postalCode -> address.postalCode
	ns := e.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return e.Field()
}

func fieldMessage(e validator.FieldError) string {
	name := formatFieldName(e.Field())
	switch e.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "uuid", "uuid4":
		return name + " must be a valid UUID"
	case "min":
		return name + " must be at least " + e.Param() + " characters"
	case "max":
		return name + " must be at most " + e.Param() + " characters"
	case "len":
		return name + " must be exactly " + e.Param() + " characters"
	case "oneof":
		return name + " must be one of " + e.Param()
	case "gte", "gt":
		return name + " is too small"
	case "lte", "lt":
		return name + " is too large"
	case "dgt0":
		return name + " must be positive"
	case "dgte0":
		return name + " must not be negative"
	case "dstep":
		return name + " must be a multiple of " + e.Param()
	default:
		return name + " is invalid"
	}
}

// MapValidationError turns a binding error into VALIDATION_ERROR with a
// field -> message map in Details.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		details := make(map[string]string, len(errs))
		for _, e := range errs {
			key := fieldKey(e)
			if _, exists := details[key]; !exists {
				details[key] = fieldMessage(e)
			}
		}
		return Validation(details)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return Validation(map[string]string{
			typeErr.Field: formatFieldName(typeErr.Field) + " has an invalid type",
		})
	case errors.As(err, &syntaxErr):
		return ErrInvalidInput
	}

	return ErrInvalidInput
}
