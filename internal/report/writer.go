// Package report writes per-patron late-fee summaries.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/theirongolddev/bookfees/internal/model"
)

// Header is the first row of every fee report.
var Header = []string{"patron_id", "late_fees"}

// Write emits the CSV report: a header, then one row per patron with the
// fee fixed to two decimals.
func Write(w io.Writer, patrons []model.PatronFees) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, p := range patrons {
		if err := cw.Write([]string{p.PatronID, p.LateFees.StringFixed(2)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the report to a temporary file next to path and renames
// it into place once complete.
func WriteFile(path string, patrons []model.PatronFees) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = Write(tmp, patrons); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing report file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil { //nolint:gosec // reports are meant to be shared
		return fmt.Errorf("setting report permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
