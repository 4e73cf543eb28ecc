package clienterrors

import (
	"go-gemtrack/internal/shared/apperror"
	"net/http"
)

var (
	ErrClientNotFound = apperror.New(
		apperror.CodeNotFound,
		"Client not found",
		http.StatusNotFound,
	)
	ErrClientIDAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Client ID already exists",
		http.StatusConflict,
	)
	ErrClientInUse = apperror.New(
		apperror.CodeConflict,
		"Client still has diamond packets or reports",
		http.StatusConflict,
	)
)
