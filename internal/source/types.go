package source

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Column names the loans table must provide.
const (
	ColPatronID     = "patron_id"
	ColDateDue      = "date_due"
	ColDateReturned = "date_returned"
)

// RequiredColumns lists the header fields every loans table must carry.
var RequiredColumns = []string{ColPatronID, ColDateDue, ColDateReturned}

// ErrSchema is wrapped by every SchemaError.
var ErrSchema = errors.New("loans table schema mismatch")

// SchemaError reports required fields missing from the header (Row 0)
// or from a data row.
type SchemaError struct {
	Missing []string
	Row     int
}

func (e *SchemaError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("header is missing required column(s): %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("row %d is missing field(s): %s", e.Row, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

// DiscoveredFile represents a CSV file found in the data directory.
type DiscoveredFile struct {
	Path    string
	Name    string // path relative to the data directory
	Size    int64
	ModTime time.Time
}
