package client

import (
	"errors"

	clienterrors "go-gemtrack/internal/client/errors"
	"go-gemtrack/internal/shared/dbtx"

	"gorm.io/gorm"
)

const uniqueClientID = "uq_clients_user_client_code"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return clienterrors.ErrClientNotFound
	}
	// clients carry a single unique index, so a translated duplicate without a
	// constraint name is still a client id collision.
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		dbtx.IsUniqueViolation(err, uniqueClientID) ||
		dbtx.IsUniqueViolation(err, "clients.client_code") {
		return clienterrors.ErrClientIDAlreadyExists
	}
	if dbtx.IsForeignKeyViolation(err) {
		return clienterrors.ErrClientInUse
	}

	return err
}
