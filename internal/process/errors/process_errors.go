package processerrors

import (
	"go-gemtrack/internal/shared/apperror"
	"net/http"
)

var (
	ErrProcessNotFound = apperror.New(
		apperror.CodeNotFound,
		"Process not found",
		http.StatusNotFound,
	)
	ErrProcessIDAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Process ID already exists",
		http.StatusConflict,
	)
	ErrProcessInUse = apperror.New(
		apperror.CodeConflict,
		"Process is still assigned to diamond packets",
		http.StatusConflict,
	)
)
