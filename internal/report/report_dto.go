package report

import (
	"time"

	"go-gemtrack/internal/client"

	"github.com/shopspring/decimal"
)

// CreateReportRequest attaches packets in the given order. An empty ReportID
// is generated from the user's counter.
type CreateReportRequest struct {
	ReportID         string   `json:"reportId" binding:"omitempty,max=50"`
	ClientID         string   `json:"clientId" binding:"required,uuid"`
	DiamondPacketIDs []string `json:"diamondPacketIds" binding:"required,min=1,max=500,dive,uuid"`
}

type ClientInfo struct {
	ID       string `json:"id"`
	ClientID string `json:"clientId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhoneNo  string `json:"phoneNo"`
	GstInNo  string `json:"gstInNo"`
}

type ReportResponse struct {
	ID          string      `json:"id"`
	ReportID    string      `json:"reportId"`
	ClientID    string      `json:"clientId"`
	Client      *ClientInfo `json:"client,omitempty"`
	PacketCount int         `json:"packetCount"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// PacketSnapshot is one packet as seen by a report at read time.
type PacketSnapshot struct {
	ID                 string          `json:"id"`
	DiamondPacketID    string          `json:"diamondPacketId"`
	BatchNo            string          `json:"batchNo"`
	EvNo               *string         `json:"evNo"`
	PacketNo           string          `json:"packetNo"`
	Lot                int             `json:"lot"`
	Piece              int             `json:"piece"`
	MakeableWeight     decimal.Decimal `json:"makeableWeight"`
	ExpectedWeight     decimal.Decimal `json:"expectedWeight"`
	BooterWeight       decimal.Decimal `json:"booterWeight"`
	DiamondShape       string          `json:"diamondShape"`
	DiamondColor       string          `json:"diamondColor"`
	DiamondPurity      string          `json:"diamondPurity"`
	Size               decimal.Decimal `json:"size"`
	ExpectedPercentage decimal.Decimal `json:"expectedPercentage"`
	FinalWeight        decimal.Decimal `json:"finalWeight"`
	FinalPercentage    decimal.Decimal `json:"finalPercentage"`
}

type ReportStatistics struct {
	TotalLot            int             `json:"totalLot"`
	TotalPiece          int             `json:"totalPiece"`
	TotalMakeableWeight decimal.Decimal `json:"totalMakeableWeight"`
	TotalExpectedWeight decimal.Decimal `json:"totalExpectedWeight"`
	TotalFinalWeight    decimal.Decimal `json:"totalFinalWeight"`
}

type ReportDetailResponse struct {
	ReportResponse
	Packets    []PacketSnapshot `json:"packets"`
	Statistics ReportStatistics `json:"statistics"`
}

func toClientInfo(c *client.Client) *ClientInfo {
	if c == nil {
		return nil
	}
	return &ClientInfo{
		ID:       c.ID.String(),
		ClientID: c.ClientCode,
		Name:     c.Name,
		Email:    c.Email,
		PhoneNo:  c.PhoneNo,
		GstInNo:  c.GstInNo,
	}
}

func ToResponse(r Report) ReportResponse {
	return ReportResponse{
		ID:          r.ID.String(),
		ReportID:    r.ReportID,
		ClientID:    r.ClientID.String(),
		Client:      toClientInfo(r.Client),
		PacketCount: len(r.Items),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
