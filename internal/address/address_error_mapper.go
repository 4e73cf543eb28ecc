package address

import (
	"errors"

	addresserrors "go-gemtrack/internal/address/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return addresserrors.ErrAddressNotFound
	}

	return err
}
