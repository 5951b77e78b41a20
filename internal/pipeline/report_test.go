package pipeline

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/bookfees/internal/dates"
	"github.com/theirongolddev/bookfees/internal/source"
)

const sampleTable = `patron_id,date_due,date_returned
17-873-8783,01/01/2020,01/05/2020
83-279-0036,01/01/2020,01/01/2020
17-873-8783,02/01/2020,02/11/2020
41-231-6671,03/05/2020,03/01/2020
`

func TestGenerate(t *testing.T) {
	var out bytes.Buffer
	ledger, err := Generate(strings.NewReader(sampleTable), &out)
	require.NoError(t, err)

	assert.Equal(t, 3, ledger.Len())
	assert.Equal(t, strings.Join([]string{
		"patron_id,late_fees",
		"17-873-8783,3.50",
		"41-231-6671,0.00",
		"83-279-0036,0.00",
		"",
	}, "\n"), out.String())
}

func TestGenerate_ColumnOrderDoesNotMatter(t *testing.T) {
	reordered := `date_returned,branch,patron_id,date_due
01/05/2020,main,17-873-8783,01/01/2020
01/01/2020,north,83-279-0036,01/01/2020
02/11/2020,main,17-873-8783,02/01/2020
03/01/2020,east,41-231-6671,03/05/2020
`
	var a, b bytes.Buffer
	_, err := Generate(strings.NewReader(sampleTable), &a)
	require.NoError(t, err)
	_, err = Generate(strings.NewReader(reordered), &b)
	require.NoError(t, err)

	assert.Equal(t, a.String(), b.String())
}

func TestGenerate_AbortsWithoutOutput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, err error)
	}{
		{
			name:  "malformed date",
			input: "patron_id,date_due,date_returned\nA,01/01/2020,01/02/2020\nB,2020-01-01,01/02/2020\n",
			check: func(t *testing.T, err error) {
				var pe *dates.ParseError
				assert.True(t, errors.As(err, &pe))
			},
		},
		{
			name:  "missing column",
			input: "patron_id,date_returned\nA,01/02/2020\n",
			check: func(t *testing.T, err error) {
				var se *source.SchemaError
				assert.True(t, errors.As(err, &se))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			ledger, err := Generate(strings.NewReader(tt.input), &out)
			require.Error(t, err)
			assert.Nil(t, ledger)
			assert.Zero(t, out.Len(), "no output may be written on failure")
			tt.check(t, err)
		})
	}
}

func TestGenerateFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "book_returns.csv")
	out := filepath.Join(dir, "book_fees.csv")
	require.NoError(t, os.WriteFile(in, []byte(sampleTable), 0o600))

	ledger, err := GenerateFile(in, out)
	require.NoError(t, err)
	assert.Equal(t, "3.50", ledger.Summary().TotalFees.StringFixed(2))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "patron_id,late_fees\n17-873-8783,3.50\n"))
}

func TestGenerateFile_FailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.csv")
	out := filepath.Join(dir, "book_fees.csv")
	require.NoError(t, os.WriteFile(in, []byte("patron_id,date_due,date_returned\nA,13/45/2020,01/01/2020\n"), 0o600))

	_, err := GenerateFile(in, out)
	require.Error(t, err)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "output file must not exist after a failed run")
}

func TestGenerateFile_MissingInput(t *testing.T) {
	_, err := GenerateFile(filepath.Join(t.TempDir(), "nope.csv"), filepath.Join(t.TempDir(), "out.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReport_FromRecords(t *testing.T) {
	records, err := source.ReadRecords(strings.NewReader(sampleTable))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "reports", "fees.csv")
	ledger, err := Report(records, out)
	require.NoError(t, err)
	assert.Equal(t, 3, ledger.Len())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "patron_id,late_fees\n17-873-8783,3.50\n41-231-6671,0.00\n83-279-0036,0.00\n", string(data))
}
