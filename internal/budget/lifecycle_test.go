package budget

import (
	"errors"
	"testing"
)

func TestDetermineState(t *testing.T) {
	t.Parallel()

	if got := DetermineState(User{Username: "ana"}, nil); got != StateNoPayday {
		t.Fatalf("DetermineState(no payday) = %q, want %q", got, StateNoPayday)
	}
	if got := DetermineState(User{Username: "ana", Payday: 13}, nil); got != StateNoActiveCycle {
		t.Fatalf("DetermineState(no cycle) = %q, want %q", got, StateNoActiveCycle)
	}
	if got := DetermineState(User{Username: "ana", Payday: 13}, &Cycle{ID: 1}); got != StateActiveCycle {
		t.Fatalf("DetermineState(active) = %q, want %q", got, StateActiveCycle)
	}
}

func TestWeeklyDiffSaving(t *testing.T) {
	t.Parallel()

	got, err := WeeklyDiffSaving(300, 250, 5)
	if err != nil {
		t.Fatalf("WeeklyDiffSaving() unexpected error: %v", err)
	}
	if got != 250 {
		t.Fatalf("WeeklyDiffSaving() = %v, want 250", got)
	}

	got, err = WeeklyDiffSaving(300, 300, 5)
	if err != nil || got != 0 {
		t.Fatalf("WeeklyDiffSaving(unchanged) = %v, %v; want 0, nil", got, err)
	}
}

func TestWeeklyDiffSavingRejectsIncrease(t *testing.T) {
	t.Parallel()

	_, err := WeeklyDiffSaving(300, 350, 5)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("WeeklyDiffSaving(increase) error = %v, want ErrValidation", err)
	}
	if err.Error() != "increase not allowed" {
		t.Fatalf("WeeklyDiffSaving(increase) error = %q, want %q", err.Error(), "increase not allowed")
	}
	if _, err := WeeklyDiffSaving(300, -1, 5); !errors.Is(err, ErrValidation) {
		t.Fatalf("WeeklyDiffSaving(below zero) error = %v, want ErrValidation", err)
	}
}

func TestWeeklyDiffSavingKeepsNegativeOriginal(t *testing.T) {
	t.Parallel()

	// income 400, bills 500 over five weeks
	got, err := WeeklyDiffSaving(-20, -20, 5)
	if err != nil || got != 0 {
		t.Fatalf("WeeklyDiffSaving(-20, -20) = %v, %v; want 0, nil", got, err)
	}
	if _, err := WeeklyDiffSaving(-20, 0, 5); !errors.Is(err, ErrValidation) {
		t.Fatalf("WeeklyDiffSaving(-20, 0) error = %v, want ErrValidation", err)
	}
}

func TestWeeklyDiffSavingAcceptsDisplayedCents(t *testing.T) {
	t.Parallel()

	for _, shown := range []float64{166.67, 166.66} {
		got, err := WeeklyDiffSaving(1000.0/6, shown, 6)
		if err != nil {
			t.Fatalf("WeeklyDiffSaving(1000/6, %v) unexpected error: %v", shown, err)
		}
		if got != 0 {
			t.Fatalf("WeeklyDiffSaving(1000/6, %v) = %v, want 0", shown, got)
		}
	}
	got, err := WeeklyDiffSaving(1000.0/6, 166.65, 6)
	if err != nil || got < 0.09 || got > 0.11 {
		t.Fatalf("WeeklyDiffSaving(1000/6, 166.65) = %v, %v; want about 0.10", got, err)
	}
}

func TestParseLeftoverAction(t *testing.T) {
	t.Parallel()

	if got, err := ParseLeftoverAction(" Savings "); err != nil || got != LeftoverSavings {
		t.Fatalf("ParseLeftoverAction() = %q, %v", got, err)
	}
	if _, err := ParseLeftoverAction("spend"); !errors.Is(err, ErrValidation) {
		t.Fatalf("ParseLeftoverAction(spend) error = %v, want ErrValidation", err)
	}
}
