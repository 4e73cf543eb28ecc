package packeterrors

import (
	"go-gemtrack/internal/shared/apperror"
	"net/http"
)

var (
	ErrPacketNotFound = apperror.New(
		apperror.CodeNotFound,
		"Diamond packet not found",
		http.StatusNotFound,
	)
	ErrPacketIDAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Diamond packet ID already exists",
		http.StatusConflict,
	)
	ErrPacketInUse = apperror.New(
		apperror.CodeConflict,
		"Diamond packet is referenced by a report",
		http.StatusConflict,
	)
)
