package process

import (
	"errors"

	processerrors "go-gemtrack/internal/process/errors"
	"go-gemtrack/internal/shared/dbtx"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return processerrors.ErrProcessNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		dbtx.IsUniqueViolation(err, "uq_processes_user_process_code"),
		dbtx.IsUniqueViolation(err, "processes.process_code"):
		return processerrors.ErrProcessIDAlreadyExists
	case dbtx.IsForeignKeyViolation(err):
		return processerrors.ErrProcessInUse
	}

	return err
}
