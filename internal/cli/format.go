// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bookfees/internal/dates"
)

// FormatFee formats a fee amount with a currency sign and two decimals.
// e.g., 3.5 -> "$3.50", 1234.5 -> "$1,234.50"
func FormatFee(fee decimal.Decimal) string {
	s := fee.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")
	n, _ := strconv.ParseInt(whole, 10, 64)

	out := "$" + FormatNumber(n) + "." + frac
	if fee.IsNegative() {
		return "-" + out
	}
	return out
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatDate renders a date in the "02 Jan 2006" display layout.
func FormatDate(t time.Time) string {
	return t.Format(dates.DisplayLayout)
}

// FormatAge renders how long ago t was, relative to now, at a coarse grain.
func FormatAge(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return strconv.Itoa(int(d/time.Minute)) + "m ago"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d/time.Hour)) + "h ago"
	default:
		return strconv.Itoa(int(d/(24*time.Hour))) + "d ago"
	}
}

// FormatBytes formats a file size with binary suffixes.
// e.g., 512 -> "512 B", 2048 -> "2.0 KiB"
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return strconv.FormatInt(n, 10) + " B"
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return strconv.FormatFloat(float64(n)/float64(div), 'f', 1, 64) + " " + string("KMGTPE"[exp]) + "iB"
}
