package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PatronFees holds the accumulated late fees for one patron.
type PatronFees struct {
	PatronID  string
	LateFees  decimal.Decimal
	Loans     int
	LateLoans int
	DaysLate  int
}

// ReportSummary holds totals across every patron in a report.
type ReportSummary struct {
	Records   int
	Patrons   int
	LateLoans int
	TotalFees decimal.Decimal
}

// ReportRun is one generated report, as kept in the run history.
type ReportRun struct {
	ID          string
	Input       string
	Output      string
	GeneratedAt time.Time
	Records     int
	Patrons     int
	TotalFees   decimal.Decimal
}
