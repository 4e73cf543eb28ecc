package addresserrors

import (
	"go-gemtrack/internal/shared/apperror"
	"net/http"
)

var (
	ErrAddressNotFound = apperror.New(
		apperror.CodeNotFound,
		"Address not found or access denied",
		http.StatusNotFound,
	)
)
