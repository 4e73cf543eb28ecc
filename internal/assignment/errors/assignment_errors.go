package assignmenterrors

import (
	"go-gemtrack/internal/shared/apperror"
	"net/http"
)

var ErrAssignmentNotFound = apperror.New(
	apperror.CodeNotFound,
	"Assigned process not found or access denied",
	http.StatusNotFound,
)
