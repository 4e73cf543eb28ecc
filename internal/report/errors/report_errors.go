package reporterrors

import (
	"go-gemtrack/internal/shared/apperror"
	"net/http"
)

var (
	ErrReportNotFound = apperror.New(
		apperror.CodeNotFound,
		"Report not found or access denied",
		http.StatusNotFound,
	)
	ErrReportIDAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Report ID already exists",
		http.StatusConflict,
	)
	ErrPacketsNotFound = apperror.New(
		apperror.CodeNotFound,
		"Some diamond packets were not found",
		http.StatusNotFound,
	)
)
