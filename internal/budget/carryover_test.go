package budget

import (
	"math"
	"testing"
)

func TestCorrection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		prev *WeeklySummary
		want float64
	}{
		{name: "no previous week", prev: nil, want: 0},
		{name: "overspent", prev: &WeeklySummary{WeeklyLimit: 100, TotalSpent: 120}, want: 20},
		{name: "underspent", prev: &WeeklySummary{WeeklyLimit: 100, TotalSpent: 80}, want: -20},
		{name: "exact", prev: &WeeklySummary{WeeklyLimit: 100, TotalSpent: 100}, want: 0},
	}
	for _, tc := range tests {
		got := Correction(tc.prev)
		if got != tc.want {
			t.Fatalf("%s: Correction() = %v, want %v", tc.name, got, tc.want)
		}
		if got == 0 && math.Signbit(got) {
			t.Fatalf("%s: Correction() returned negative zero", tc.name)
		}
	}
}

func TestReconcileWeekFoldsPreviousRemainder(t *testing.T) {
	t.Parallel()

	got := ReconcileWeek(100, 30, &WeeklySummary{WeeklyLimit: 100, TotalSpent: 80})
	want := WeekTotals{WeeklyLimit: 100, RawSpent: 30, Correction: -20, VisualSpent: 10, VisualRemaining: 90}
	if got != want {
		t.Fatalf("ReconcileWeek() = %+v, want %+v", got, want)
	}

	got = ReconcileWeek(100, 30, &WeeklySummary{WeeklyLimit: 100, TotalSpent: 120})
	if got.VisualSpent != 50 || got.VisualRemaining != 50 {
		t.Fatalf("ReconcileWeek() overspent = %+v, want visual spent 50 remaining 50", got)
	}
}

func TestReconcileWeekWithoutPrevious(t *testing.T) {
	t.Parallel()

	got := ReconcileWeek(300, 40, nil)
	if got.Correction != 0 || got.VisualSpent != 40 || got.VisualRemaining != 260 {
		t.Fatalf("ReconcileWeek() = %+v, want no correction", got)
	}
}
