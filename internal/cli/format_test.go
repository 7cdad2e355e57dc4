package cli

import (
	"testing"
	"time"
)

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{300, "300.00"},
		{42.5, "42.50"},
		{1234.567, "1,234.57"},
		{-20, "-20.00"},
		{1234567.1, "1,234,567.10"},
	}
	for _, tc := range tests {
		if got := FormatMoney(tc.in); got != tc.want {
			t.Fatalf("FormatMoney(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	t.Parallel()

	if got := FormatSigned(20); got != "+20.00" {
		t.Fatalf("FormatSigned(20) = %q, want %q", got, "+20.00")
	}
	if got := FormatSigned(-30); got != "-30.00" {
		t.Fatalf("FormatSigned(-30) = %q, want %q", got, "-30.00")
	}
	if got := FormatSigned(0); got != "0.00" {
		t.Fatalf("FormatSigned(0) = %q, want %q", got, "0.00")
	}
}

func TestFormatRange(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.June, 13, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.July, 12, 0, 0, 0, 0, time.UTC)
	if got, want := FormatRange(start, end), "13 Jun - 12 Jul 2024"; got != want {
		t.Fatalf("FormatRange() = %q, want %q", got, want)
	}

	end = time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC)
	if got, want := FormatRange(start, end), "13 Jun 2024 - 12 Jan 2025"; got != want {
		t.Fatalf("FormatRange() = %q, want %q", got, want)
	}
}

func TestFormatDateZero(t *testing.T) {
	t.Parallel()

	if got := FormatDate(time.Time{}); got != "-" {
		t.Fatalf("FormatDate(zero) = %q, want %q", got, "-")
	}
}
