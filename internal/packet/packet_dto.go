package packet

import (
	"time"

	"go-gemtrack/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PacketRequest is used for both create and full update. size and
// expectedPercentage are always recomputed and never read from input.
type PacketRequest struct {
	DiamondPacketID  string           `json:"diamondPacketId" binding:"required,max=50"`
	BatchNo          string           `json:"batchNo" binding:"required,max=50"`
	EvNo             *string          `json:"evNo" binding:"omitempty,max=50"`
	PacketNo         string           `json:"packetNo" binding:"required,max=50"`
	Lot              int              `json:"lot" binding:"required,gt=0"`
	Piece            int              `json:"piece" binding:"required,gt=0"`
	MakeableWeight   *decimal.Decimal `json:"makeableWeight" binding:"required,dgt0,dstep=0.0001"`
	ExpectedWeight   *decimal.Decimal `json:"expectedWeight" binding:"required,dgt0,dstep=0.0001"`
	BooterWeight     *decimal.Decimal `json:"booterWeight" binding:"required,dgte0,dstep=0.0001"`
	DiamondShape     string           `json:"diamondShape" binding:"omitempty,oneof=ROUND PRINCESS CUSHION EMERALD OVAL PEAR MARQUISE RADIANT ASSCHER HEART"`
	DiamondColor     string           `json:"diamondColor" binding:"omitempty,oneof=D E F G H I J K L M"`
	DiamondPurity    string           `json:"diamondPurity" binding:"omitempty,oneof=FL IF VVS1 VVS2 VS1 VS2 SI1 SI2 I1 I2 I3"`
	ReceiveDateTime  time.Time        `json:"receiveDateTime" binding:"required"`
	DeliveryDateTime *time.Time       `json:"deliveryDateTime" binding:"omitempty"`
	ClientID         string           `json:"clientId" binding:"required,uuid"`
}

type ClientSummary struct {
	ID       string `json:"id"`
	ClientID string `json:"clientId"`
	Name     string `json:"name"`
}

type PacketResponse struct {
	ID                 string           `json:"id"`
	DiamondPacketID    string           `json:"diamondPacketId"`
	BatchNo            string           `json:"batchNo"`
	EvNo               *string          `json:"evNo"`
	PacketNo           string           `json:"packetNo"`
	Lot                int              `json:"lot"`
	Piece              int              `json:"piece"`
	MakeableWeight     decimal.Decimal  `json:"makeableWeight"`
	ExpectedWeight     decimal.Decimal  `json:"expectedWeight"`
	BooterWeight       decimal.Decimal  `json:"booterWeight"`
	DiamondShape       string           `json:"diamondShape"`
	DiamondColor       string           `json:"diamondColor"`
	DiamondPurity      string           `json:"diamondPurity"`
	Size               decimal.Decimal  `json:"size"`
	ExpectedPercentage decimal.Decimal  `json:"expectedPercentage"`
	FinalWeight        *decimal.Decimal `json:"finalWeight,omitempty"`
	FinalPercentage    *decimal.Decimal `json:"finalPercentage,omitempty"`
	ReceiveDateTime    time.Time        `json:"receiveDateTime"`
	DeliveryDateTime   *time.Time       `json:"deliveryDateTime"`
	ClientID           string           `json:"clientId"`
	Client             *ClientSummary   `json:"client,omitempty"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

type PacketOptionResponse struct {
	ID              string `json:"id"`
	DiamondPacketID string `json:"diamondPacketId"`
	ClientID        string `json:"clientId"`
}

func ToResponse(p DiamondPacket) PacketResponse {
	res := PacketResponse{
		ID:                 p.ID.String(),
		DiamondPacketID:    p.PacketCode,
		BatchNo:            p.BatchNo,
		EvNo:               p.EvNo,
		PacketNo:           p.PacketNo,
		Lot:                p.Lot,
		Piece:              p.Piece,
		MakeableWeight:     p.MakeableWeight,
		ExpectedWeight:     p.ExpectedWeight,
		BooterWeight:       p.BooterWeight,
		DiamondShape:       p.DiamondShape,
		DiamondColor:       p.DiamondColor,
		DiamondPurity:      p.DiamondPurity,
		Size:               p.Size,
		ExpectedPercentage: p.ExpectedPercentage,
		ReceiveDateTime:    p.ReceiveDateTime,
		DeliveryDateTime:   p.DeliveryDateTime,
		ClientID:           p.ClientID.String(),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	if p.Client != nil {
		res.Client = &ClientSummary{ID: p.Client.ID.String(), ClientID: p.Client.ClientCode, Name: p.Client.Name}
	}
	return res
}

func toOptions(packets []DiamondPacket) []PacketOptionResponse {
	res := make([]PacketOptionResponse, len(packets))
	for i, p := range packets {
		res[i] = PacketOptionResponse{ID: p.ID.String(), DiamondPacketID: p.PacketCode, ClientID: p.ClientID.String()}
	}
	return res
}

// withFinalWeight attaches the final weight read from completed assignments.
func withFinalWeight(p DiamondPacket, history []HistoryEntry) PacketResponse {
	res := ToResponse(p)
	stats := ComputeFinalWeightStats(p, history, FallbackZero)
	res.FinalWeight = &stats.FinalWeight
	res.FinalPercentage = &stats.FinalPercentage
	return res
}

func (r PacketRequest) applyTo(p *DiamondPacket) {
	p.PacketCode = r.DiamondPacketID
	p.BatchNo = r.BatchNo
	p.EvNo = r.EvNo
	p.PacketNo = r.PacketNo
	p.Lot = r.Lot
	p.Piece = r.Piece
	p.MakeableWeight = *r.MakeableWeight
	p.ExpectedWeight = *r.ExpectedWeight
	p.BooterWeight = *r.BooterWeight
	p.DiamondShape = orDefault(r.DiamondShape, domain.DefaultDiamondShape)
	p.DiamondColor = orDefault(r.DiamondColor, domain.DefaultDiamondColor)
	p.DiamondPurity = orDefault(r.DiamondPurity, domain.DefaultDiamondPurity)
	p.ReceiveDateTime = r.ReceiveDateTime
	p.DeliveryDateTime = r.DeliveryDateTime
	p.ClientID = uuid.MustParse(r.ClientID)

	derived := ComputePacketDerivedFields(p.MakeableWeight, p.ExpectedWeight, p.Piece)
	p.Size = derived.Size
	p.ExpectedPercentage = derived.ExpectedPercentage
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
