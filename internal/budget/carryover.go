package budget

// WeekTotals is the current week as the home screen shows it, with the
// previous week's over/under-spend folded in.
type WeekTotals struct {
	WeeklyLimit     float64 `json:"weekly_limit"`
	RawSpent        float64 `json:"raw_spent"`
	Correction      float64 `json:"correction"`
	VisualSpent     float64 `json:"visual_spent"`
	VisualRemaining float64 `json:"visual_remaining"`
}

// Correction is the negative of the previous week's unspent remainder:
// underspending adds room (negative), overspending takes it away (positive).
func Correction(prev *WeeklySummary) float64 {
	if prev == nil {
		return 0
	}
	c := -(prev.WeeklyLimit - prev.TotalSpent)
	if c == 0 {
		return 0
	}
	return c
}

func ReconcileWeek(weeklyLimit, rawSpent float64, prev *WeeklySummary) WeekTotals {
	t := WeekTotals{
		WeeklyLimit: weeklyLimit,
		RawSpent:    rawSpent,
		Correction:  Correction(prev),
		VisualSpent: rawSpent,
	}
	if t.Correction != 0 {
		t.VisualSpent += t.Correction
	}
	t.VisualRemaining = t.WeeklyLimit - t.VisualSpent
	return t
}
