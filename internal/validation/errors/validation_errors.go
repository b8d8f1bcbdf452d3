package validationerrors

import (
	"net/http"

	"go-mission/internal/shared/apperror"
)

var (
	ErrValidationNotFound = apperror.New(
		apperror.CodeNotFound,
		"mission validation step not found",
		http.StatusNotFound,
	)
	ErrAlreadyResolved = apperror.New(
		apperror.CodeInvalidState,
		"validation step is already resolved",
		http.StatusConflict,
	)
	ErrOutOfOrderValidation = apperror.New(
		apperror.CodeInvalidState,
		"an earlier validation step is still pending",
		http.StatusConflict,
	)
	ErrChainRejected = apperror.New(
		apperror.CodeInvalidState,
		"validation chain was rejected at an earlier step",
		http.StatusConflict,
	)
	ErrValidationConflict = apperror.New(
		apperror.CodeConflict,
		"validation step was modified concurrently",
		http.StatusConflict,
	)
	ErrChainAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"mission already has a validation chain",
		http.StatusConflict,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"decision must be APPROVED or REJECTED",
		http.StatusBadRequest,
	)
	ErrInvalidChainRoles = apperror.New(
		apperror.CodeInvalidInput,
		"validation roles must be non-empty and unique",
		http.StatusBadRequest,
	)
	ErrInvalidMissionID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid mission id",
		http.StatusBadRequest,
	)
)
