// Package store provides a SQLite-backed cache of parsed loan tables and
// a history of generated reports.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bookfees/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

const (
	dateLayout = "2006-01-02"
	// Fixed-width so generated_at sorts lexically.
	runTimeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Cache provides SQLite-backed record caching.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// TrackedFile returns the tracking info stored for path, if any.
func (c *Cache) TrackedFile(path string) (FileInfo, bool, error) {
	var fi FileInfo
	err := c.db.QueryRow("SELECT mtime_ns, size_bytes FROM file_tracker WHERE file_path = ?", path).
		Scan(&fi.MtimeNs, &fi.SizeBytes)
	if err == sql.ErrNoRows {
		return FileInfo{}, false, nil
	}
	if err != nil {
		return FileInfo{}, false, err
	}
	return fi, true, nil
}

// SaveRecords replaces the cached records for path and its tracking info.
func (c *Cache) SaveRecords(path string, records []model.LoanRecord, mtimeNs, sizeBytes int64) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM loan_records WHERE file_path = ?", path); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO loan_records
		(file_path, row_num, patron_id, date_due, date_returned)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		_, err = stmt.Exec(path, r.Row, r.PatronID,
			r.DateDue.Format(dateLayout), r.DateReturned.Format(dateLayout))
		if err != nil {
			return err
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT OR REPLACE INTO file_tracker (file_path, mtime_ns, size_bytes, parsed_at)
		VALUES (?, ?, ?, ?)`, path, mtimeNs, sizeBytes, now)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadRecords reads the cached records for path in input row order.
func (c *Cache) LoadRecords(path string) ([]model.LoanRecord, error) {
	rows, err := c.db.Query(`SELECT row_num, patron_id, date_due, date_returned
		FROM loan_records WHERE file_path = ? ORDER BY row_num`, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []model.LoanRecord
	for rows.Next() {
		var r model.LoanRecord
		var due, returned string
		if err := rows.Scan(&r.Row, &r.PatronID, &due, &returned); err != nil {
			return nil, err
		}
		if r.DateDue, err = time.Parse(dateLayout, due); err != nil {
			return nil, fmt.Errorf("cached row %d: %w", r.Row, err)
		}
		if r.DateReturned, err = time.Parse(dateLayout, returned); err != nil {
			return nil, fmt.Errorf("cached row %d: %w", r.Row, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DeleteFile removes the cached records and tracking entry for path.
func (c *Cache) DeleteFile(path string) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM loan_records WHERE file_path = ?", path); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM file_tracker WHERE file_path = ?", path); err != nil {
		return err
	}
	return tx.Commit()
}

// RecordCount returns the number of cached loan records across all files.
func (c *Cache) RecordCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM loan_records").Scan(&count)
	return count, err
}

// SaveRun appends a report run to the history.
func (c *Cache) SaveRun(run model.ReportRun) error {
	_, err := c.db.Exec(`INSERT INTO report_runs
		(run_id, input_path, output_path, generated_at, records, patrons, total_fees)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Input, run.Output, run.GeneratedAt.UTC().Format(runTimeLayout),
		run.Records, run.Patrons, run.TotalFees.StringFixed(2),
	)
	return err
}

// ListRuns returns up to limit report runs, most recent first.
// A limit of zero or less returns every run.
func (c *Cache) ListRuns(limit int) ([]model.ReportRun, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := c.db.Query(`SELECT run_id, input_path, output_path, generated_at, records, patrons, total_fees
		FROM report_runs ORDER BY generated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []model.ReportRun
	for rows.Next() {
		var run model.ReportRun
		var generatedAt, total string
		if err := rows.Scan(&run.ID, &run.Input, &run.Output, &generatedAt,
			&run.Records, &run.Patrons, &total); err != nil {
			return nil, err
		}
		run.GeneratedAt, _ = time.Parse(runTimeLayout, generatedAt)
		if run.TotalFees, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("run %s total: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
