package packet

import (
	"errors"

	packeterrors "go-gemtrack/internal/packet/errors"
	"go-gemtrack/internal/shared/dbtx"

	"gorm.io/gorm"
)

const uniquePacketID = "uq_diamond_packets_user_diamond_packet_code"

func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return packeterrors.ErrPacketNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		dbtx.IsUniqueViolation(err, uniquePacketID),
		dbtx.IsUniqueViolation(err, "diamond_packets.diamond_packet_code"):
		return packeterrors.ErrPacketIDAlreadyExists
	case dbtx.IsForeignKeyViolation(err):
		return packeterrors.ErrPacketInUse
	default:
		return err
	}
}
