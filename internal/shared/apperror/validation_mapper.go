package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// assignation_id -> Assignation Id
func formatFieldName(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}

// ruleReason describes a failed binding rule in words an API client can act on.
// An empty result falls back to a generic "is invalid".
func ruleReason(tag, param string) string {
	switch tag {
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "money":
		return "must be a non-negative amount with at most 2 decimals"
	case "isodate":
		return "must be a date formatted YYYY-MM-DD"
	case "min", "gte":
		return "must be at least " + param
	case "max", "lte":
		return "must be at most " + param
	default:
		return ""
	}
}

// MapValidationError turns the first binding failure into an INVALID_INPUT AppError.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return New(CodeInvalidInput, "Invalid input", http.StatusBadRequest).WithCause(err)
	}

	e := errs[0]
	field := formatFieldName(e.Field())

	switch e.Tag() {
	case "required", "required_with", "required_without":
		return RequiredField(field)
	}

	reason := ruleReason(e.Tag(), e.Param())
	if reason == "" {
		return InvalidField(field)
	}
	return New(CodeInvalidInput, fmt.Sprintf("%s %s", field, reason), http.StatusBadRequest).
		WithDetails(map[string]string{"field": field, "rule": e.Tag()})
}
