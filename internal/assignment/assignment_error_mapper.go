package assignment

import (
	"errors"

	assignmenterrors "go-gemtrack/internal/assignment/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return assignmenterrors.ErrAssignmentNotFound
	}
	return err
}

// mapLookupError turns a missing referenced row into that feature's NotFound.
func mapLookupError(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}
