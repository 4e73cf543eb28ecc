package address

import (
	"time"

	"github.com/google/uuid"
)

// Address is referenced by exactly one user, client or employee row and is
// never shared between them.
type Address struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Line1      string    `gorm:"type:varchar(255);not null"`
	Line2      *string   `gorm:"type:varchar(255)"`
	City       string    `gorm:"type:varchar(100);not null"`
	State      string    `gorm:"type:varchar(100);not null"`
	Country    string    `gorm:"type:varchar(100);not null"`
	PostalCode string    `gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
