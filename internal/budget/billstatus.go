package budget

import (
	"sort"
	"time"
)

type BillStatus struct {
	IsPaid     bool `json:"is_paid"`
	IsDueToday bool `json:"is_due_today"`
	IsOverdue  bool `json:"is_overdue"`
}

// BillBoard groups bills for display. Unpaid groups are sorted by due day.
type BillBoard struct {
	Paid     []Bill `json:"paid"`
	DueToday []Bill `json:"due_today"`
	Overdue  []Bill `json:"overdue"`
}

// DueDay is the bill's due day clamped to the month of t.
func DueDay(day int, t time.Time) int {
	if last := DaysIn(t.Year(), t.Month()); day > last {
		return last
	}
	return day
}

// ResolveBillStatus classifies one bill. Manual bills trust the stored flag;
// automatic bills count as paid when their due day lies in the window from
// payday to today, wrapping across the month boundary.
func ResolveBillStatus(b Bill, today time.Time, payday int) BillStatus {
	if b.Savings {
		return BillStatus{IsPaid: true}
	}

	var paid bool
	switch b.Type {
	case BillAutomatic:
		paid = automaticPaid(DueDay(b.Day, today), today.Day(), DueDay(payday, today))
	default:
		paid = b.Paid
	}
	if paid {
		return BillStatus{IsPaid: true}
	}

	due := DueDay(b.Day, today) == today.Day()
	return BillStatus{IsDueToday: due, IsOverdue: !due}
}

func automaticPaid(billDay, todayDay, payday int) bool {
	if todayDay >= payday {
		return payday <= billDay && billDay <= todayDay
	}
	return billDay >= payday || billDay <= todayDay
}

func ClassifyBills(bills []Bill, today time.Time, payday int) BillBoard {
	board := BillBoard{
		Paid:     []Bill{},
		DueToday: []Bill{},
		Overdue:  []Bill{},
	}
	for _, b := range bills {
		st := ResolveBillStatus(b, today, payday)
		switch {
		case st.IsPaid:
			board.Paid = append(board.Paid, b)
		case st.IsDueToday:
			board.DueToday = append(board.DueToday, b)
		default:
			board.Overdue = append(board.Overdue, b)
		}
	}
	byDay := func(list []Bill) {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Day < list[j].Day })
	}
	byDay(board.DueToday)
	byDay(board.Overdue)
	return board
}

// NeedsSweep reports whether the daily sweep should flip the stored paid flag
// of an automatic bill: it is due today and not yet flagged.
func NeedsSweep(b Bill, today time.Time) bool {
	return b.Type == BillAutomatic && !b.Savings && !b.Paid && DueDay(b.Day, today) == today.Day()
}
