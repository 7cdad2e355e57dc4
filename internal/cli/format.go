// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatMoney formats an amount with two decimals and thousands separators.
// e.g., 1234.5 -> "1,234.50", -20 -> "-20.00"
func FormatMoney(v float64) string {
	cents := int64(math.Round(v * 100))
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s.%02d", sign, FormatNumber(cents/100), cents%100)
}

// FormatSigned is FormatMoney with an explicit sign for non-zero values.
func FormatSigned(v float64) string {
	if math.Round(v*100) > 0 {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
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

// FormatDate renders a calendar day as "Mon 17 Jun 2024".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Mon 02 Jan 2006")
}

// FormatRange renders an inclusive date range as "13 Jun - 12 Jul 2024".
func FormatRange(start, end time.Time) string {
	if start.Year() == end.Year() {
		return start.Format("02 Jan") + " - " + end.Format("02 Jan 2006")
	}
	return start.Format("02 Jan 2006") + " - " + end.Format("02 Jan 2006")
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}
