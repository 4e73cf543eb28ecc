package user

import (
	"time"

	"go-gemtrack/internal/address"

	"github.com/google/uuid"
)

// User is the root tenant: every other owned row carries its id as user_id.
type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(255);not null"`
	Email     string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Password  string    `gorm:"column:password;type:text;not null"`
	PhoneNo   string    `gorm:"column:phone_no;type:varchar(20);not null"`
	GstInNo   string    `gorm:"column:gst_in_no;type:varchar(15);not null"`
	AddressID uuid.UUID `gorm:"column:address_id;type:uuid;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Address *address.Address `gorm:"foreignKey:AddressID;references:ID;constraint:OnDelete:RESTRICT"`
}
