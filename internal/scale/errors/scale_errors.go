package scaleerrors

import (
	"net/http"

	"go-mission/internal/shared/apperror"
)

var (
	ErrScaleNotFound = apperror.New(
		apperror.CodeNotFound,
		"no compensation scale matches this category and expense",
		http.StatusNotFound,
	)
	ErrInvalidScaleTarget = apperror.New(
		apperror.CodeInvalidInput,
		"exactly one of expense_type_id or transport_id must be set",
		http.StatusBadRequest,
	)
	ErrInvalidCategoryID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee category id",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be a non-negative decimal",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidEffectiveRange = apperror.New(
		apperror.CodeInvalidInput,
		"effective_from must be before or equal effective_to",
		http.StatusBadRequest,
	)
)
