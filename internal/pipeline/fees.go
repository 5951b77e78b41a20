package pipeline

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bookfees/internal/dates"
	"github.com/theirongolddev/bookfees/internal/model"
)

// lateFeePerDay is charged for every day a loan comes back after its due date.
var lateFeePerDay = decimal.New(25, -2)

// LateFeeRate returns the fixed daily late fee.
func LateFeeRate() decimal.Decimal {
	return lateFeePerDay
}

// DaysLate returns how many whole days after its due date the loan was
// returned. On-time and early returns are zero days late.
func DaysLate(r model.LoanRecord) int {
	if !r.Late() {
		return 0
	}
	return dates.DaysBetween(r.DateDue, r.DateReturned)
}

// LateFee computes the fee a single loan contributes to its patron's total.
func LateFee(r model.LoanRecord) decimal.Decimal {
	days := DaysLate(r)
	if days == 0 {
		return decimal.Zero
	}
	return lateFeePerDay.Mul(decimal.NewFromInt(int64(days)))
}
