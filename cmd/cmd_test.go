package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/bookfees/internal/config"
	"github.com/theirongolddev/bookfees/internal/dates"
	"github.com/theirongolddev/bookfees/internal/pipeline"
	"github.com/theirongolddev/bookfees/internal/source"
	"github.com/theirongolddev/bookfees/internal/store"
)

func TestRunReformat(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runReformat(&out, []string{"2001-01-01", "2020-02-29"}))
	assert.Equal(t, "01 Jan 2001\n29 Feb 2020\n", out.String())

	out.Reset()
	err := runReformat(&out, []string{"2001-01-01", "01/02/2001"})
	assert.ErrorIs(t, err, dates.ErrInvalidDate)
	assert.Empty(t, out.String())
}

func TestRunRange(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runRange(&out, []string{"2020-02-27", "4"}, false))
	assert.Equal(t, "2020-02-27\n2020-02-28\n2020-02-29\n2020-03-01\n", out.String())

	out.Reset()
	err := runRange(&out, []string{"2020-02-27", "-1"}, false)
	assert.ErrorIs(t, err, dates.ErrNegativeLength)

	err = runRange(&out, []string{"2020-02-27"}, false)
	assert.Error(t, err, "N is required without --values")
}

func TestRunRange_Display(t *testing.T) {
	defer func() { flagDisplay = false }()

	var out bytes.Buffer
	flagDisplay = true
	require.NoError(t, runRange(&out, []string{"2020-12-31", "2"}, false))
	assert.Equal(t, "31 Dec 2020\n01 Jan 2021\n", out.String())
}

func TestRunRange_Values(t *testing.T) {
	defer func() { flagValues = "" }()

	var out bytes.Buffer
	flagValues = "a,b,c"
	require.NoError(t, runRange(&out, []string{"2020-12-31"}, true))
	assert.Equal(t, "2020-12-31\ta\n2021-01-01\tb\n2021-01-02\tt\n", out.String())

	out.Reset()
	flagValues = ""
	require.NoError(t, runRange(&out, []string{"2020-12-31"}, true))
	assert.Empty(t, out.String())
}

const loansTable = `patron_id,date_due,date_returned
17-873-8783,01/01/2020,01/05/2020
83-279-0036,01/01/2020,01/01/2020
17-873-8783,02/01/2020,02/11/2020
`

func TestReportCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(config.EnvDataDir, "")
	t.Setenv(config.EnvCache, "")

	dir := t.TempDir()
	in := filepath.Join(dir, "book_returns.csv")
	out := filepath.Join(dir, "book_fees.csv")
	require.NoError(t, os.WriteFile(in, []byte(loansTable), 0o600))

	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)

	rootCmd.SetArgs([]string{"report", in, out, "--quiet", "--cache"})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "patron_id,late_fees\n17-873-8783,3.50\n83-279-0036,0.00\n", string(data))

	cache, err := store.Open(pipeline.CachePath())
	require.NoError(t, err)
	runs, err := cache.ListRuns(0)
	require.NoError(t, err)
	require.NoError(t, cache.Close())
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].Patrons)
	assert.Equal(t, "3.50", runs[0].TotalFees.StringFixed(2))

	// A malformed table aborts and leaves the previous report in place.
	bad := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(bad, []byte("patron_id,date_due\nA,01/01/2020\n"), 0o600))
	rootCmd.SetArgs([]string{"report", bad, out, "--quiet", "--cache"})
	err = rootCmd.Execute()
	var schemaErr *source.SchemaError
	require.True(t, errors.As(err, &schemaErr), "got %v", err)
	assert.Equal(t, []string{source.ColDateReturned}, schemaErr.Missing)

	after, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(after))
}
