package report

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/theirongolddev/bookfees/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PatronJSON is the JSON shape of one ledger entry. Fees are strings so
// the two-decimal formatting survives.
type PatronJSON struct {
	PatronID  string `json:"patron_id"`
	LateFees  string `json:"late_fees"`
	Loans     int    `json:"loans"`
	LateLoans int    `json:"late_loans"`
	DaysLate  int    `json:"days_late"`
}

// DocumentJSON wraps a full report.
type DocumentJSON struct {
	Records   int          `json:"records"`
	Patrons   int          `json:"patrons"`
	LateLoans int          `json:"late_loans"`
	TotalFees string       `json:"total_fees"`
	Ledger    []PatronJSON `json:"ledger"`
}

// WriteJSON encodes the ledger and its summary as an indented JSON document.
func WriteJSON(w io.Writer, summary model.ReportSummary, patrons []model.PatronFees) error {
	doc := DocumentJSON{
		Records:   summary.Records,
		Patrons:   summary.Patrons,
		LateLoans: summary.LateLoans,
		TotalFees: summary.TotalFees.StringFixed(2),
		Ledger:    make([]PatronJSON, 0, len(patrons)),
	}
	for _, p := range patrons {
		doc.Ledger = append(doc.Ledger, PatronJSON{
			PatronID:  p.PatronID,
			LateFees:  p.LateFees.StringFixed(2),
			Loans:     p.Loans,
			LateLoans: p.LateLoans,
			DaysLate:  p.DaysLate,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
