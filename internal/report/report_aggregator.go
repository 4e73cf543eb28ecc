package report

import (
	"go-gemtrack/internal/packet"

	"github.com/shopspring/decimal"
)

// BuildSnapshots derives each packet's final weight from its history. Packets
// without a completed assignment report their makeable weight.
func BuildSnapshots(packets []packet.DiamondPacket, history map[string][]packet.HistoryEntry) []PacketSnapshot {
	out := make([]PacketSnapshot, len(packets))
	for i, p := range packets {
		stats := packet.ComputeFinalWeightStats(p, history[p.ID.String()], packet.FallbackMakeable)
		out[i] = PacketSnapshot{
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
			FinalWeight:        stats.FinalWeight,
			FinalPercentage:    stats.FinalPercentage,
		}
	}
	return out
}

func ComputeReportStatistics(snapshots []PacketSnapshot) ReportStatistics {
	stats := ReportStatistics{
		TotalMakeableWeight: decimal.Zero,
		TotalExpectedWeight: decimal.Zero,
		TotalFinalWeight:    decimal.Zero,
	}
	for _, s := range snapshots {
		stats.TotalLot += s.Lot
		stats.TotalPiece += s.Piece
		stats.TotalMakeableWeight = stats.TotalMakeableWeight.Add(s.MakeableWeight)
		stats.TotalExpectedWeight = stats.TotalExpectedWeight.Add(s.ExpectedWeight)
		stats.TotalFinalWeight = stats.TotalFinalWeight.Add(s.FinalWeight)
	}
	return stats
}
