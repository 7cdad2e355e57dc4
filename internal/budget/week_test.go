package budget

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveWeekMondayToSunday(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{name: "thursday", in: day(2024, time.June, 20), want: day(2024, time.June, 17)},
		{name: "monday", in: day(2024, time.June, 17), want: day(2024, time.June, 17)},
		{name: "sunday belongs to previous monday", in: day(2024, time.June, 23), want: day(2024, time.June, 17)},
		{name: "across month", in: day(2024, time.July, 2), want: day(2024, time.July, 1)},
		{name: "across year", in: day(2025, time.January, 1), want: day(2024, time.December, 30)},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			w := ResolveWeek(tc.in.Add(15 * time.Hour))
			if !w.Start.Equal(tc.want) {
				t.Fatalf("ResolveWeek(%s).Start = %s, want %s", tc.in.Format("2006-01-02"), w.Start, tc.want)
			}
			wantEnd := tc.want.AddDate(0, 0, 7).Add(-time.Millisecond)
			if !w.End.Equal(wantEnd) {
				t.Fatalf("ResolveWeek(%s).End = %s, want %s", tc.in.Format("2006-01-02"), w.End, wantEnd)
			}
			if !w.Contains(tc.in) {
				t.Fatalf("week %s does not contain %s", w.Label(), tc.in)
			}
		})
	}
}

func TestWeekRangePreviousAndNext(t *testing.T) {
	t.Parallel()

	w := ResolveWeek(day(2024, time.June, 20))
	if got := w.Previous().Start; !got.Equal(day(2024, time.June, 10)) {
		t.Fatalf("Previous().Start = %s, want 2024-06-10", got)
	}
	if got := w.Next().Start; !got.Equal(day(2024, time.June, 24)) {
		t.Fatalf("Next().Start = %s, want 2024-06-24", got)
	}
}

func TestWeekRangeLabel(t *testing.T) {
	t.Parallel()

	got := ResolveWeek(day(2024, time.June, 20)).Label()
	if got != "17 Jun - 23 Jun" {
		t.Fatalf("Label() = %q, want %q", got, "17 Jun - 23 Jun")
	}
}
