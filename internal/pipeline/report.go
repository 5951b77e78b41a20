package pipeline

import (
	"fmt"
	"io"

	"github.com/theirongolddev/bookfees/internal/model"
	"github.com/theirongolddev/bookfees/internal/report"
	"github.com/theirongolddev/bookfees/internal/source"
)

// Generate reads a loans table from in and writes the per-patron late-fee
// report to out. Nothing is written unless every row parsed.
func Generate(in io.Reader, out io.Writer) (*Ledger, error) {
	records, err := source.ReadRecords(in)
	if err != nil {
		return nil, err
	}

	ledger := Aggregate(records)
	if err := report.Write(out, ledger.Patrons()); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}
	return ledger, nil
}

// GenerateFile is Generate over file paths. The output file is replaced
// atomically, so a failed run leaves any previous report untouched.
func GenerateFile(inPath, outPath string) (*Ledger, error) {
	result, err := Load(inPath)
	if err != nil {
		return nil, err
	}

	return Report(result.Records, outPath)
}

// Report aggregates already-parsed records and writes the report file.
func Report(records []model.LoanRecord, outPath string) (*Ledger, error) {
	ledger := Aggregate(records)
	if err := report.WriteFile(outPath, ledger.Patrons()); err != nil {
		return nil, err
	}
	return ledger, nil
}
