package report

import (
	"time"

	"go-gemtrack/internal/client"
	"go-gemtrack/internal/packet"

	"github.com/google/uuid"
)

type Report struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ReportID  string    `gorm:"column:report_id;type:varchar(50);not null;uniqueIndex:uq_reports_user_report_id,priority:2"`
	ClientID  uuid.UUID `gorm:"column:client_id;type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:uq_reports_user_report_id,priority:1"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Client *client.Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:RESTRICT"`
	Items  []ReportItem   `gorm:"foreignKey:ReportID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Report) TableName() string { return "reports" }

// ReportItem links a packet to a report. Position keeps attach order.
type ReportItem struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ReportID        uuid.UUID `gorm:"column:report_id;type:uuid;not null;uniqueIndex:uq_report_items_report_packet,priority:1"`
	DiamondPacketID uuid.UUID `gorm:"column:diamond_packet_id;type:uuid;not null;index;uniqueIndex:uq_report_items_report_packet,priority:2"`
	Position        int       `gorm:"column:position;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Packet *packet.DiamondPacket `gorm:"foreignKey:DiamondPacketID;references:ID;constraint:OnDelete:RESTRICT"`
}

func (ReportItem) TableName() string { return "report_items" }
