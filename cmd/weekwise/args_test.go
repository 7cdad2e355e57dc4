package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lachiem1/weekwise/internal/budget"
	"github.com/lachiem1/weekwise/internal/engine"
)

func TestBillInputReadsTrailingDay(t *testing.T) {
	in, err := billInput([]string{"car", "insurance", "89,90", "31"})
	if err != nil {
		t.Fatalf("billInput() unexpected error: %v", err)
	}
	if in.Name != "car insurance" || in.Value.String() != "89.9" || in.Day != 31 || in.Type != budget.BillManual {
		t.Fatalf("billInput() = %+v", in)
	}

	if _, err := billInput([]string{"rent", "500", "32"}); !errors.Is(err, budget.ErrValidation) {
		t.Fatalf("billInput(day 32) error = %v, want validation error", err)
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	if id, err := parseID("42"); err != nil || id != 42 {
		t.Fatalf("parseID(42) = (%d, %v), want (42, nil)", id, err)
	}
	for _, raw := range []string{"", "0", "-3", "x"} {
		if _, err := parseID(raw); !errors.Is(err, budget.ErrValidation) {
			t.Fatalf("parseID(%q) error = %v, want validation error", raw, err)
		}
	}
}

func TestDescribeError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{&budget.ValidationError{Field: "value", Msg: "value must be greater than 0"}, "value must be greater than 0"},
		{fmt.Errorf("home: %w", budget.ErrNoPayday), "set your payday first: weekwise payday <day>"},
		{budget.ErrForbidden, "no such record"},
		{errors.New("disk full"), "error: disk full"},
	}
	for _, tc := range tests {
		if got := describeError(tc.err); got != tc.want {
			t.Fatalf("describeError(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestCheckWeeklyAcceptsPrefilledTarget(t *testing.T) {
	t.Parallel()

	for _, original := range []float64{1000.0 / 6, -20} {
		d := engine.CycleDraft{WeeklyOriginal: original}
		d.Bounds.WeeksCount = 6
		if err := checkWeekly(d, fmt.Sprintf("%.2f", original)); err != nil {
			t.Fatalf("checkWeekly(%.2f) unexpected error: %v", original, err)
		}
	}

	d := engine.CycleDraft{WeeklyOriginal: 1000.0 / 6}
	d.Bounds.WeeksCount = 6
	if err := checkWeekly(d, "166.68"); !errors.Is(err, budget.ErrValidation) {
		t.Fatalf("checkWeekly(166.68) error = %v, want validation error", err)
	}
}
