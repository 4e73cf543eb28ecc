package process

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Process is a reusable catalog entry such as cutting or polishing.
type Process struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	ProcessCode string          `gorm:"column:process_code;type:varchar(50);not null;uniqueIndex:uq_processes_user_process_code,priority:2"`
	Name        string          `gorm:"column:name;type:varchar(255);not null"`
	Description *string         `gorm:"column:description;type:text"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(12,2);not null"`
	Cost        decimal.Decimal `gorm:"column:cost;type:decimal(12,2);not null"`
	UserID      uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:uq_processes_user_process_code,priority:1"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
