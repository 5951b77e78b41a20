// Package pipeline loads loan records and aggregates them into per-patron
// late-fee ledgers.
package pipeline

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bookfees/internal/model"
)

// Ledger accumulates late fees per patron. Its keys are the set of every
// patron seen, fee or not. Amounts only ever grow.
type Ledger struct {
	entries map[string]*model.PatronFees
	records int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[string]*model.PatronFees)}
}

// Aggregate builds a ledger from records in a single pass.
func Aggregate(records []model.LoanRecord) *Ledger {
	l := NewLedger()
	for _, r := range records {
		l.Add(r)
	}
	return l
}

// Add records a loan against its patron, adding any late fee it accrued.
func (l *Ledger) Add(r model.LoanRecord) {
	l.records++

	pf, ok := l.entries[r.PatronID]
	if !ok {
		pf = &model.PatronFees{PatronID: r.PatronID, LateFees: decimal.Zero}
		l.entries[r.PatronID] = pf
	}
	pf.Loans++

	days := DaysLate(r)
	if days == 0 {
		return
	}
	pf.LateLoans++
	pf.DaysLate += days
	pf.LateFees = pf.LateFees.Add(LateFee(r))
}

// Fees returns the accumulated fee for a patron; zero for unknown patrons.
func (l *Ledger) Fees(patronID string) decimal.Decimal {
	if pf, ok := l.entries[patronID]; ok {
		return pf.LateFees
	}
	return decimal.Zero
}

// Has reports whether the patron appeared in any record.
func (l *Ledger) Has(patronID string) bool {
	_, ok := l.entries[patronID]
	return ok
}

// Len returns the number of distinct patrons.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Patrons returns one entry per patron, sorted by patron id.
func (l *Ledger) Patrons() []model.PatronFees {
	out := make([]model.PatronFees, 0, len(l.entries))
	for _, pf := range l.entries {
		out = append(out, *pf)
	}
	SortByID(out)
	return out
}

// Summary returns totals across the whole ledger.
func (l *Ledger) Summary() model.ReportSummary {
	s := model.ReportSummary{
		Records:   l.records,
		Patrons:   len(l.entries),
		TotalFees: decimal.Zero,
	}
	for _, pf := range l.entries {
		s.LateLoans += pf.LateLoans
		s.TotalFees = s.TotalFees.Add(pf.LateFees)
	}
	return s
}

// SortByID orders patrons by patron id, byte-wise.
func SortByID(patrons []model.PatronFees) {
	sort.Slice(patrons, func(i, j int) bool {
		return patrons[i].PatronID < patrons[j].PatronID
	})
}

// SortByFees orders patrons by fee descending, then by patron id.
func SortByFees(patrons []model.PatronFees) {
	sort.SliceStable(patrons, func(i, j int) bool {
		if c := patrons[i].LateFees.Cmp(patrons[j].LateFees); c != 0 {
			return c > 0
		}
		return patrons[i].PatronID < patrons[j].PatronID
	})
}
