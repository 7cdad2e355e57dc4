package budget

import "time"

// WeekRange is a Monday 00:00:00.000 to Sunday 23:59:59.999 calendar week.
type WeekRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ResolveWeek returns the Monday-to-Sunday week containing d, in d's location.
// A Sunday belongs to the week that started six days earlier.
func ResolveWeek(d time.Time) WeekRange {
	y, m, day := d.Date()
	offset := (int(d.Weekday()) + 6) % 7
	loc := d.Location()
	return WeekRange{
		Start: time.Date(y, m, day-offset, 0, 0, 0, 0, loc),
		End:   time.Date(y, m, day-offset+6, 23, 59, 59, int(999*time.Millisecond), loc),
	}
}

func (w WeekRange) Previous() WeekRange {
	return ResolveWeek(w.Start.AddDate(0, 0, -1))
}

func (w WeekRange) Next() WeekRange {
	return ResolveWeek(w.End.AddDate(0, 0, 1))
}

func (w WeekRange) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Label renders the range the way the home screen shows it, e.g. "10 Jun - 16 Jun".
func (w WeekRange) Label() string {
	return w.Start.Format("02 Jan") + " - " + w.End.Format("02 Jan")
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from a to b, ignoring clock time and DST shifts.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
