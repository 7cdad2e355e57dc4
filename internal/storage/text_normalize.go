package storage

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// normalizeName collapses repeated whitespace (spaces/tabs/newlines) in a
// user-entered label to single spaces.
func normalizeName(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	return strings.Join(strings.Fields(trimmed), " ")
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// parseDate reads a stored calendar day as local midnight.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.Local)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
