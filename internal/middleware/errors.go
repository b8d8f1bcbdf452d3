package middleware

import (
	"net/http"

	"go-mission/internal/shared/apperror"
)

var (
	ErrTokenMissing = apperror.New(
		apperror.CodeUnauthorized,
		"token not found",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"token expired",
		http.StatusUnauthorized,
	)
	ErrRequestInFlight = apperror.New(
		apperror.CodeConflict,
		"a request with this idempotency key is still being processed",
		http.StatusConflict,
	)
)
