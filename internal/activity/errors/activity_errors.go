package activityerrors

import (
	"go-gemtrack/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidEvent = apperror.New(
		apperror.CodeInvalidState,
		"Activity event is missing its owner or id",
		http.StatusUnprocessableEntity,
	)
)
