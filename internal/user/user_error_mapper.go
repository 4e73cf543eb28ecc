package user

import (
	"errors"

	"go-gemtrack/internal/shared/dbtx"
	usererrors "go-gemtrack/internal/user/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}
	if dbtx.IsUniqueViolation(err, "uq_users_email") || dbtx.IsUniqueViolation(err, "users.email") {
		return usererrors.ErrEmailInUse
	}

	return err
}
