package budget

import (
	"math"
	"strings"
)

type CycleState string

const (
	StateNoPayday      CycleState = "no_payday"
	StateNoActiveCycle CycleState = "no_active_cycle"
	StateActiveCycle   CycleState = "active_cycle"
)

func DetermineState(u User, active *Cycle) CycleState {
	switch {
	case !u.HasPayday():
		return StateNoPayday
	case active == nil:
		return StateNoActiveCycle
	default:
		return StateActiveCycle
	}
}

// Leftover is what remained of a finished cycle.
func Leftover(income, bills, savings, spent float64) float64 {
	return income - bills - savings - spent
}

type LeftoverAction string

const (
	// LeftoverUse turns the leftover into income of the next cycle.
	LeftoverUse     LeftoverAction = "use"
	LeftoverSavings LeftoverAction = "savings"
)

func ParseLeftoverAction(raw string) (LeftoverAction, error) {
	switch LeftoverAction(strings.ToLower(strings.TrimSpace(raw))) {
	case LeftoverUse:
		return LeftoverUse, nil
	case LeftoverSavings:
		return LeftoverSavings, nil
	}
	return "", invalid("action", "leftover action must be %q or %q", LeftoverUse, LeftoverSavings)
}

// centTolerance absorbs the rounding of a target that was displayed to cents.
const centTolerance = 0.005

// WeeklyDiffSaving validates a cycle confirmation and returns the amount to
// set aside for the whole cycle when the weekly target is lowered. Keeping
// the original figure is always accepted, even when it is negative.
func WeeklyDiffSaving(weeklyOriginal, weeklyNew float64, weeksCount int) (float64, error) {
	if math.Abs(weeklyNew-weeklyOriginal) < centTolerance {
		return 0, nil
	}
	if weeklyNew > weeklyOriginal {
		return 0, invalid("weekly_new", "increase not allowed")
	}
	if weeklyNew < 0 {
		return 0, invalid("weekly_new", "weekly target must not be lowered below zero")
	}
	if weeksCount <= 0 {
		return 0, nil
	}
	return (weeklyOriginal - weeklyNew) * float64(weeksCount), nil
}
