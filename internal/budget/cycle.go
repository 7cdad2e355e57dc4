package budget

import (
	"math"
	"time"
)

// CycleBounds is the pay cycle enclosing a reference date.
type CycleBounds struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	WeeksCount int       `json:"weeks_count"`
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay returns day-of-month `day` in the given month, clamped to the
// month's last day. time.Date alone would roll 31 June into 1 July.
func ClampDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	if last := DaysIn(year, month); day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// ComputeCycleBounds anchors the cycle on the payday: it starts on the most
// recent (clamped) payday on or before ref and ends the day before the next one.
func ComputeCycleBounds(payday int, ref time.Time) (CycleBounds, error) {
	if payday == 0 {
		return CycleBounds{}, ErrNoPayday
	}
	if payday < 1 || payday > 31 {
		return CycleBounds{}, invalid("payday", "payday must be between 1 and 31")
	}

	loc := ref.Location()
	y, m, d := ref.Date()
	start := ClampDay(y, m, payday, loc)
	if d < start.Day() {
		prev := time.Date(y, m, 1, 0, 0, 0, 0, loc).AddDate(0, -1, 0)
		start = ClampDay(prev.Year(), prev.Month(), payday, loc)
	}

	following := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, 1, 0)
	next := ClampDay(following.Year(), following.Month(), payday, loc)
	end := next.AddDate(0, 0, -1)

	return CycleBounds{
		Start:      start,
		End:        end,
		WeeksCount: CountWeeks(start, end),
	}, nil
}

// CountWeeks counts the Monday-aligned week buckets overlapping [start, end].
// It returns 0 when end precedes start.
func CountWeeks(start, end time.Time) int {
	if StartOfDay(end).Before(StartOfDay(start)) {
		return 0
	}
	monday := ResolveWeek(start).Start
	sunday := ResolveWeek(end).End
	days := daysBetween(monday, sunday)
	return int(math.Ceil(float64(days) / 7))
}
