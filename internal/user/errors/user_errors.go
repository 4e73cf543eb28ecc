package usererrors

import (
	"go-gemtrack/internal/shared/apperror"
	"net/http"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrEmailInUse = apperror.New(
		apperror.CodeConflict,
		"Email already in use",
		http.StatusConflict,
	)
)
