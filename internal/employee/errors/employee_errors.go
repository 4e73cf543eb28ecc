package employeeerrors

import (
	"go-gemtrack/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeIDAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee ID already exists",
		http.StatusConflict,
	)
	ErrEmployeeInUse = apperror.New(
		apperror.CodeConflict,
		"Employee still has process assignments",
		http.StatusConflict,
	)
)
