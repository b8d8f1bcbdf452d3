package paymenterrors

import (
	"net/http"

	"go-mission/internal/shared/apperror"
)

var (
	ErrIntegrityMismatch = apperror.New(
		apperror.CodeIntegrityMismatch,
		"payment view total does not match the compensation ledger",
		http.StatusInternalServerError,
	)
	ErrInvalidExportFormat = apperror.New(
		apperror.CodeInvalidInput,
		"format must be pdf or csv",
		http.StatusBadRequest,
	)
	ErrArchiveDisabled = apperror.New(
		apperror.CodeServiceUnavailable,
		"export archive storage is not configured",
		http.StatusServiceUnavailable,
	)
	ErrInvalidPairID = apperror.New(
		apperror.CodeInvalidInput,
		"missionId and employeeId must be valid uuids",
		http.StatusBadRequest,
	)
)
