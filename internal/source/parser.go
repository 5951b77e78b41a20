// Package source reads loan records from CSV tables.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/theirongolddev/bookfees/internal/dates"
	"github.com/theirongolddev/bookfees/internal/model"
)

// ParseFile reads every loan record from the CSV file at path.
func ParseFile(path string) ([]model.LoanRecord, error) {
	f, err := os.Open(path) //nolint:gosec // path is chosen by the caller
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}

// ReadRecords parses a loans table. The header may list the required
// columns in any order, next to any number of extra columns.
//
// Header names are matched after trimming spaces and a BOM. When a name
// repeats, its last occurrence is the one read.
//
// Reading stops at the first problem:
//   - missing header or required column  → *SchemaError (Row 0)
//   - data row too short for a column    → *SchemaError (Row n)
//   - malformed or empty date            → *dates.ParseError wrapped with the row
//
// An empty patron_id is a valid key.
func ReadRecords(r io.Reader) ([]model.LoanRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // short rows are reported as schema errors
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &SchemaError{Missing: RequiredColumns}
	}
	if err != nil {
		return nil, err
	}

	idx, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var records []model.LoanRecord
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		rec, err := parseRow(row, fields, idx)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

// columnIndex maps each required column to its position in the header.
type columnIndex map[string]int

func indexColumns(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(RequiredColumns))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		idx[name] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	return idx, nil
}

func parseRow(row int, fields []string, idx columnIndex) (model.LoanRecord, error) {
	var missing []string
	for _, col := range RequiredColumns {
		if idx[col] >= len(fields) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return model.LoanRecord{}, &SchemaError{Missing: missing, Row: row}
	}

	field := func(col string) string {
		return strings.TrimSpace(fields[idx[col]])
	}

	dueAt, err := dates.ParseUS(field(ColDateDue))
	if err != nil {
		return model.LoanRecord{}, fmt.Errorf("row %d %s: %w", row, ColDateDue, err)
	}
	returnedAt, err := dates.ParseUS(field(ColDateReturned))
	if err != nil {
		return model.LoanRecord{}, fmt.Errorf("row %d %s: %w", row, ColDateReturned, err)
	}

	return model.LoanRecord{
		Row:          row,
		PatronID:     field(ColPatronID),
		DateDue:      dueAt,
		DateReturned: returnedAt,
	}, nil
}
