package packet

import (
	"go-gemtrack/internal/domain"

	"github.com/shopspring/decimal"
)

const derivedPlaces = 4

var hundred = decimal.NewFromInt(100)

type DerivedFields struct {
	Size               decimal.Decimal
	ExpectedPercentage decimal.Decimal
}

// ComputePacketDerivedFields returns size = makeable/piece and
// expectedPercentage = expected/makeable*100, both rounded to 4 places.
// A piece of zero or less counts as one.
func ComputePacketDerivedFields(makeableWeight, expectedWeight decimal.Decimal, piece int) DerivedFields {
	if piece <= 0 {
		piece = 1
	}

	size := makeableWeight.Div(decimal.NewFromInt(int64(piece)))
	pct := decimal.Zero
	if !makeableWeight.IsZero() {
		pct = expectedWeight.Div(makeableWeight).Mul(hundred)
	}

	return DerivedFields{
		Size:               size.Round(derivedPlaces),
		ExpectedPercentage: pct.Round(derivedPlaces),
	}
}

// FinalWeightFallback picks the final weight of a packet without a usable
// COMPLETED assignment.
type FinalWeightFallback int

const (
	// FallbackZero is used for single packet reads.
	FallbackZero FinalWeightFallback = iota
	// FallbackMakeable is used when aggregating reports.
	FallbackMakeable
)

type FinalWeightStats struct {
	FinalWeight     decimal.Decimal
	FinalPercentage decimal.Decimal
}

// LatestCompleted returns the COMPLETED entry with the greatest CreatedAt.
// Ties go to the later StartDateTime, then to the higher id.
func LatestCompleted(history []HistoryEntry) (HistoryEntry, bool) {
	var (
		best  HistoryEntry
		found bool
	)
	for _, h := range history {
		if h.Status != domain.StatusCompleted {
			continue
		}
		if !found || newer(h, best) {
			best, found = h, true
		}
	}
	return best, found
}

func newer(a, b HistoryEntry) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	if !a.StartDateTime.Equal(b.StartDateTime) {
		return a.StartDateTime.After(b.StartDateTime)
	}
	return a.ID.String() > b.ID.String()
}

// ComputeFinalWeightStats derives finalWeight from the packet's latest
// COMPLETED assignment and finalPercentage = finalWeight/expected*100.
func ComputeFinalWeightStats(p DiamondPacket, history []HistoryEntry, fallback FinalWeightFallback) FinalWeightStats {
	final := decimal.Zero
	if fallback == FallbackMakeable {
		final = p.MakeableWeight
	}
	if latest, ok := LatestCompleted(history); ok && latest.AfterWeight != nil {
		final = *latest.AfterWeight
	}

	pct := decimal.Zero
	if !p.ExpectedWeight.IsZero() {
		pct = final.Div(p.ExpectedWeight).Mul(hundred).Round(derivedPlaces)
	}

	return FinalWeightStats{FinalWeight: final, FinalPercentage: pct}
}
