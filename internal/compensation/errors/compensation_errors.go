package compensationerrors

import (
	"net/http"

	"go-mission/internal/shared/apperror"
)

var (
	ErrInvalidDateRange = apperror.New(
		apperror.CodeUnprocessable,
		"return must be after departure and departure cannot precede the mission start date",
		http.StatusUnprocessableEntity,
	)
	ErrRecomputeConflict = apperror.New(
		apperror.CodeConflict,
		"a recompute for this assignation is already in progress",
		http.StatusConflict,
	)
	ErrAssignationAlreadyPaid = apperror.New(
		apperror.CodeInvalidState,
		"assignation has paid compensation lines and cannot be recomputed",
		http.StatusConflict,
	)
	ErrMissionNotPayable = apperror.New(
		apperror.CodeInvalidState,
		"mission validation chain is not fully approved",
		http.StatusConflict,
	)
	ErrInvalidAssignationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid assignation id",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"status must be paid or not-paid",
		http.StatusBadRequest,
	)
	ErrInvalidPaidRange = apperror.New(
		apperror.CodeInvalidInput,
		"from and to must be YYYY-MM-DD with from on or before to",
		http.StatusBadRequest,
	)
)
