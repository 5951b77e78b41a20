package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/bookfees/internal/model"
	"github.com/theirongolddev/bookfees/internal/store"
)

func syntheticRecords(n int) []model.LoanRecord {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	records := make([]model.LoanRecord, n)
	for i := range records {
		due := base.AddDate(0, 0, i%365)
		records[i] = model.LoanRecord{
			Row:          i + 1,
			PatronID:     fmt.Sprintf("%02d-%03d-%04d", i%97, i%13, i%500),
			DateDue:      due,
			DateReturned: due.AddDate(0, 0, i%11-3),
		}
	}
	return records
}

func syntheticTable(n int) string {
	var b strings.Builder
	b.WriteString("patron_id,date_due,date_returned\n")
	for _, r := range syntheticRecords(n) {
		fmt.Fprintf(&b, "%s,%s,%s\n", r.PatronID, r.DateDue.Format("01/02/2006"), r.DateReturned.Format("01/02/2006"))
	}
	return b.String()
}

func BenchmarkAggregate(b *testing.B) {
	records := syntheticRecords(50_000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Aggregate(records)
	}
}

func BenchmarkGenerate(b *testing.B) {
	table := syntheticTable(50_000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Generate(strings.NewReader(table), io.Discard); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLoadWithCache(b *testing.B) {
	dir := b.TempDir()
	path := filepath.Join(dir, "loans.csv")
	if err := os.WriteFile(path, []byte(syntheticTable(50_000)), 0o600); err != nil {
		b.Fatal(err)
	}

	cache, err := store.Open(filepath.Join(dir, "cache.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer func() { _ = cache.Close() }()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := LoadWithCache(path, cache); err != nil {
			b.Fatal(err)
		}
	}
}
