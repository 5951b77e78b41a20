// Package model defines domain types for bookfees loans and fee reports.
package model

import "time"

// LoanRecord is one row of the loans table: a book lent to a patron,
// the date it was due and the date it came back.
type LoanRecord struct {
	Row          int // 1-based data row, header excluded
	PatronID     string
	DateDue      time.Time
	DateReturned time.Time
}

// Late reports whether the loan was returned strictly after its due date.
func (r LoanRecord) Late() bool {
	return r.DateReturned.After(r.DateDue)
}
