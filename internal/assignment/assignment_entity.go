package assignment

import (
	"time"

	"go-gemtrack/internal/employee"
	"go-gemtrack/internal/packet"
	"go-gemtrack/internal/process"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiamondPacketProcess records one pass of a packet through a process. Rows
// are history and are never overwritten by a later assignment.
type DiamondPacketProcess struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	DiamondPacketID uuid.UUID        `gorm:"column:diamond_packet_id;type:uuid;not null;index"`
	ProcessID       uuid.UUID        `gorm:"column:process_id;type:uuid;not null;index"`
	EmployeeID      uuid.UUID        `gorm:"column:employee_id;type:uuid;not null;index"`
	Status          string           `gorm:"column:status;type:varchar(20);not null;default:PENDING"`
	StartDateTime   time.Time        `gorm:"column:start_date_time;not null"`
	EndDateTime     *time.Time       `gorm:"column:end_date_time"`
	BeforeWeight    decimal.Decimal  `gorm:"column:before_weight;type:decimal(12,4);not null"`
	AfterWeight     *decimal.Decimal `gorm:"column:after_weight;type:decimal(12,4)"`
	Remarks         *string          `gorm:"column:remarks;type:varchar(1000)"`
	UserID          uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`

	Packet   *packet.DiamondPacket `gorm:"foreignKey:DiamondPacketID;references:ID;constraint:OnDelete:CASCADE"`
	Process  *process.Process      `gorm:"foreignKey:ProcessID;references:ID;constraint:OnDelete:RESTRICT"`
	Employee *employee.Employee    `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:RESTRICT"`
}

func (DiamondPacketProcess) TableName() string { return "diamond_packet_processes" }
