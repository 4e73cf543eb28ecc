package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const exportDateLayout = "1/2/2006"

var exportHeader = []string{
	"Report ID", "Client ID", "Client Name", "Diamond Packet ID", "Batch No", "EV No",
	"Packet No", "Lot", "Piece", "Makeable Weight", "Expected Weight", "Booter Weight",
	"Diamond Shape", "Diamond Color", "Diamond Purity", "Size", "Expected %",
	"Final Weight", "Final %",
}

// ExportFilename is the attachment name served for a report export.
func ExportFilename(reportID string) string {
	return "report-" + reportID + ".csv"
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func fixed(d decimal.Decimal) string {
	return d.StringFixed(4)
}

func blanks(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = `""`
	}
	return out
}

// RenderCSV lays out a report as a metadata line, the header, one row per
// packet in attach order and a totals row. Text columns are quoted; evNo and
// numbers are not.
func RenderCSV(detail ReportDetailResponse, generatedAt time.Time) string {
	var c ClientInfo
	if detail.Client != nil {
		c = *detail.Client
	}

	lines := make([]string, 0, len(detail.Packets)+5)
	lines = append(lines, strings.Join([]string{
		"",
		quote("Report Generated: " + generatedAt.Format(exportDateLayout)),
		quote("Client: " + c.Name),
		quote("Contact: " + c.Email),
		quote("Phone: " + c.PhoneNo),
		quote("GSTIN: " + c.GstInNo),
	}, ","))
	lines = append(lines, "", strings.Join(exportHeader, ","))

	for _, p := range detail.Packets {
		evNo := ""
		if p.EvNo != nil {
			evNo = *p.EvNo
		}
		lines = append(lines, strings.Join([]string{
			quote(detail.ReportID),
			quote(c.ClientID),
			quote(c.Name),
			quote(p.DiamondPacketID),
			quote(p.BatchNo),
			evNo,
			quote(p.PacketNo),
			strconv.Itoa(p.Lot),
			strconv.Itoa(p.Piece),
			fixed(p.MakeableWeight),
			fixed(p.ExpectedWeight),
			fixed(p.BooterWeight),
			quote(p.DiamondShape),
			quote(p.DiamondColor),
			quote(p.DiamondPurity),
			fixed(p.Size),
			fixed(p.ExpectedPercentage),
			fixed(p.FinalWeight),
			fixed(p.FinalPercentage),
		}, ","))
	}

	s := detail.Statistics
	totals := []string{`"TOTALS"`}
	totals = append(totals, blanks(6)...)
	totals = append(totals,
		strconv.Itoa(s.TotalLot),
		strconv.Itoa(s.TotalPiece),
		fixed(s.TotalMakeableWeight),
		fixed(s.TotalExpectedWeight),
	)
	totals = append(totals, blanks(6)...)
	totals = append(totals, fixed(s.TotalFinalWeight), `""`)

	lines = append(lines, "", strings.Join(totals, ","))
	return strings.Join(lines, "\n")
}
