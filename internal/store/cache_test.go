package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bookfees/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache", "bookfees.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCache_SaveAndLoadRecords(t *testing.T) {
	c := openTestCache(t)

	records := []model.LoanRecord{
		{Row: 1, PatronID: "P1", DateDue: date(2020, 1, 1), DateReturned: date(2020, 1, 5)},
		{Row: 2, PatronID: "P2", DateDue: date(2020, 2, 1), DateReturned: date(2020, 1, 30)},
	}
	if err := c.SaveRecords("/data/loans.csv", records, 42, 100); err != nil {
		t.Fatalf("SaveRecords: %v", err)
	}

	fi, ok, err := c.TrackedFile("/data/loans.csv")
	if err != nil || !ok {
		t.Fatalf("TrackedFile = %v, %v, %v; want tracked", fi, ok, err)
	}
	if fi.MtimeNs != 42 || fi.SizeBytes != 100 {
		t.Errorf("FileInfo = %+v, want mtime 42 size 100", fi)
	}

	got, err := c.LoadRecords("/data/loans.csv")
	if err != nil {
		t.Fatalf("LoadRecords: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("len = %d, want %d", len(got), len(records))
	}
	for i := range records {
		if got[i].Row != records[i].Row || got[i].PatronID != records[i].PatronID ||
			!got[i].DateDue.Equal(records[i].DateDue) || !got[i].DateReturned.Equal(records[i].DateReturned) {
			t.Errorf("record %d = %+v, want %+v", i, got[i], records[i])
		}
	}
}

func TestCache_SaveRecordsReplaces(t *testing.T) {
	c := openTestCache(t)

	old := []model.LoanRecord{
		{Row: 1, PatronID: "A", DateDue: date(2020, 1, 1), DateReturned: date(2020, 1, 1)},
		{Row: 2, PatronID: "B", DateDue: date(2020, 1, 1), DateReturned: date(2020, 1, 1)},
	}
	if err := c.SaveRecords("f.csv", old, 1, 1); err != nil {
		t.Fatal(err)
	}
	fresh := old[:1]
	if err := c.SaveRecords("f.csv", fresh, 2, 2); err != nil {
		t.Fatal(err)
	}

	n, err := c.RecordCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("RecordCount = %d, want 1", n)
	}
}

func TestCache_DeleteFile(t *testing.T) {
	c := openTestCache(t)

	recs := []model.LoanRecord{{Row: 1, PatronID: "A", DateDue: date(2020, 1, 1), DateReturned: date(2020, 1, 2)}}
	if err := c.SaveRecords("f.csv", recs, 1, 1); err != nil {
		t.Fatal(err)
	}
	if err := c.DeleteFile("f.csv"); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := c.TrackedFile("f.csv"); ok {
		t.Error("file still tracked after DeleteFile")
	}
	if got, _ := c.LoadRecords("f.csv"); len(got) != 0 {
		t.Errorf("LoadRecords after delete = %v, want empty", got)
	}
}

func TestCache_Runs(t *testing.T) {
	c := openTestCache(t)

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-1", "run-2", "run-3"} {
		err := c.SaveRun(model.ReportRun{
			ID:          id,
			Input:       "in.csv",
			Output:      "out.csv",
			GeneratedAt: base.Add(time.Duration(i) * time.Hour),
			Records:     10 + i,
			Patrons:     3,
			TotalFees:   decimal.RequireFromString("3.5"),
		})
		if err != nil {
			t.Fatalf("SaveRun(%s): %v", id, err)
		}
	}

	runs, err := c.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}
	if runs[0].ID != "run-3" || runs[1].ID != "run-2" {
		t.Errorf("runs = [%s %s], want newest first", runs[0].ID, runs[1].ID)
	}
	if !runs[0].TotalFees.Equal(decimal.RequireFromString("3.50")) {
		t.Errorf("TotalFees = %s, want 3.50", runs[0].TotalFees)
	}
	if !runs[0].GeneratedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("GeneratedAt = %v, want %v", runs[0].GeneratedAt, base.Add(2*time.Hour))
	}

	all, err := c.ListRuns(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("ListRuns(0) len = %d, want 3", len(all))
	}
}

func TestOpen_Twice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookfees.db")
	for i := 0; i < 2; i++ {
		c, err := Open(path)
		if err != nil {
			t.Fatalf("Open #%d: %v", i+1, err)
		}
		_ = c.Close()
	}
}
