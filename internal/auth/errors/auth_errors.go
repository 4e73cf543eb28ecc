package autherrors

import (
	"go-gemtrack/internal/shared/apperror"
	"net/http"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"No user found with this email address",
		http.StatusNotFound,
	)
	ErrWrongPassword = apperror.New(
		apperror.CodeUnauthorized,
		"The password is incorrect",
		http.StatusUnauthorized,
	)
	ErrEmailAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"Email already registered",
		http.StatusConflict,
	)
	ErrTokenNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"Session token not found",
		http.StatusUnauthorized,
	)
	ErrInvalidToken = apperror.New(
		apperror.CodeInvalidToken,
		"Invalid session token",
		http.StatusUnauthorized,
	)
	ErrTokenExpired = apperror.New(
		apperror.CodeTokenExpired,
		"Session token has expired",
		http.StatusUnauthorized,
	)
	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Failed to issue session token",
		http.StatusInternalServerError,
	)
	ErrSessionUserNotFound = apperror.New(
		apperror.CodeUnauthorized,
		"Session user no longer exists",
		http.StatusUnauthorized,
	)
)
