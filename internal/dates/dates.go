// Package dates provides the date parsing, reformatting and range helpers
// used by the loan reports.
package dates

import (
	"errors"
	"fmt"
	"time"
)

// Layouts accepted and produced by this package. Parsing layouts use
// single-digit month and day verbs so zero padding is optional.
const (
	ISOLayout     = "2006-1-2"    // YYYY-MM-DD
	USLayout      = "1/2/2006"    // MM/DD/YYYY
	DisplayLayout = "02 Jan 2006" // DD Mon YYYY
)

var (
	// ErrInvalidDate is wrapped by every ParseError.
	ErrInvalidDate = errors.New("invalid date")
	// ErrNegativeLength is returned when a range is asked for fewer than zero days.
	ErrNegativeLength = errors.New("date range length must not be negative")
)

// ParseError reports a date string that does not match the expected layout.
// Index is the position of the value in a batch, or -1 for single values.
type ParseError struct {
	Value  string
	Layout string
	Index  int
}

func (e *ParseError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("date %q at index %d does not match %s", e.Value, e.Index, describe(e.Layout))
	}
	return fmt.Sprintf("date %q does not match %s", e.Value, describe(e.Layout))
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidDate
}

func describe(layout string) string {
	switch layout {
	case ISOLayout:
		return "YYYY-MM-DD"
	case USLayout:
		return "MM/DD/YYYY"
	}
	return layout
}

// Dated pairs a calendar date with a value.
type Dated[V any] struct {
	Date  time.Time
	Value V
}

// Parse parses s with layout as a UTC calendar date.
func Parse(layout, s string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return time.Time{}, &ParseError{Value: s, Layout: layout, Index: -1}
	}
	return t, nil
}

// ParseISO parses a YYYY-MM-DD date.
func ParseISO(s string) (time.Time, error) {
	return Parse(ISOLayout, s)
}

// ParseUS parses a MM/DD/YYYY date.
func ParseUS(s string) (time.Time, error) {
	return Parse(USLayout, s)
}

// Reformat converts YYYY-MM-DD dates to "DD Mon YYYY", preserving order.
// e.g., "2001-01-01" -> "01 Jan 2001"
// The first malformed entry fails the whole batch.
func Reformat(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for i, s := range in {
		t, err := ParseISO(s)
		if err != nil {
			return nil, &ParseError{Value: s, Layout: ISOLayout, Index: i}
		}
		out = append(out, t.Format(DisplayLayout))
	}
	return out, nil
}

// Range returns n consecutive calendar days beginning at start (YYYY-MM-DD).
func Range(start string, n int) ([]time.Time, error) {
	if n < 0 {
		return nil, ErrNegativeLength
	}
	day, err := ParseISO(start)
	if err != nil {
		return nil, err
	}

	days := make([]time.Time, n)
	for i := range days {
		days[i] = day.AddDate(0, 0, i)
	}
	return days, nil
}

// AddRange pairs each value with a day of a range beginning at start.
// The start date is validated even when values is empty.
func AddRange[V any](values []V, start string) ([]Dated[V], error) {
	days, err := Range(start, len(values))
	if err != nil {
		return nil, err
	}

	out := make([]Dated[V], len(values))
	for i, v := range values {
		out[i] = Dated[V]{Date: days[i], Value: v}
	}
	return out, nil
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the whole calendar days from a to b; negative when b
// is before a.
func DaysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	// b.Sub(a) saturates past ~292 years.
	return int((b.Unix() - a.Unix()) / secondsPerDay)
}
