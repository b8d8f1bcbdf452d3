package missionerrors

import (
	"net/http"

	"go-mission/internal/shared/apperror"
)

var (
	ErrMissionNotFound = apperror.New(
		apperror.CodeNotFound,
		"mission not found",
		http.StatusNotFound,
	)
	ErrAssignationNotFound = apperror.New(
		apperror.CodeNotFound,
		"mission assignation not found",
		http.StatusNotFound,
	)
	ErrExpenseTypesMissing = apperror.New(
		apperror.CodeInvalidState,
		"expense type reference data is incomplete",
		http.StatusConflict,
	)
)
