package packet

import (
	"time"

	"go-gemtrack/internal/client"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiamondPacket struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	PacketCode         string          `gorm:"column:diamond_packet_code;type:varchar(50);not null;uniqueIndex:uq_diamond_packets_user_diamond_packet_code,priority:2"`
	BatchNo            string          `gorm:"column:batch_no;type:varchar(50);not null"`
	EvNo               *string         `gorm:"column:ev_no;type:varchar(50)"`
	PacketNo           string          `gorm:"column:packet_no;type:varchar(50);not null"`
	Lot                int             `gorm:"column:lot;not null"`
	Piece              int             `gorm:"column:piece;not null"`
	MakeableWeight     decimal.Decimal `gorm:"column:makeable_weight;type:decimal(12,4);not null"`
	ExpectedWeight     decimal.Decimal `gorm:"column:expected_weight;type:decimal(12,4);not null"`
	BooterWeight       decimal.Decimal `gorm:"column:booter_weight;type:decimal(12,4);not null"`
	DiamondShape       string          `gorm:"column:diamond_shape;type:varchar(20);not null;default:ASSCHER"`
	DiamondColor       string          `gorm:"column:diamond_color;type:varchar(2);not null;default:D"`
	DiamondPurity      string          `gorm:"column:diamond_purity;type:varchar(4);not null;default:IF"`
	Size               decimal.Decimal `gorm:"column:size;type:decimal(12,4);not null"`
	ExpectedPercentage decimal.Decimal `gorm:"column:expected_percentage;type:decimal(10,4);not null"`
	ReceiveDateTime    time.Time       `gorm:"column:receive_date_time;not null"`
	DeliveryDateTime   *time.Time      `gorm:"column:delivery_date_time"`
	ClientID           uuid.UUID       `gorm:"column:client_id;type:uuid;not null;index"`
	UserID             uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:uq_diamond_packets_user_diamond_packet_code,priority:1"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime"`

	Client *client.Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:RESTRICT"`
}

func (DiamondPacket) TableName() string { return "diamond_packets" }

// HistoryEntry is the slice of an assignment record the derived fields need.
type HistoryEntry struct {
	ID              uuid.UUID        `gorm:"column:id"`
	DiamondPacketID uuid.UUID        `gorm:"column:diamond_packet_id"`
	Status          string           `gorm:"column:status"`
	AfterWeight     *decimal.Decimal `gorm:"column:after_weight"`
	StartDateTime   time.Time        `gorm:"column:start_date_time"`
	CreatedAt       time.Time        `gorm:"column:created_at"`
}
