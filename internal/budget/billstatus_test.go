package budget

import (
	"testing"
	"time"
)

func TestResolveBillStatusAutomaticWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		today   time.Time
		billDay int
		want    BillStatus
	}{
		{name: "after payday inside window", today: day(2024, time.June, 20), billDay: 15, want: BillStatus{IsPaid: true}},
		{name: "after payday due today", today: day(2024, time.June, 20), billDay: 20, want: BillStatus{IsPaid: true}},
		{name: "after payday not yet reached", today: day(2024, time.June, 20), billDay: 25, want: BillStatus{IsOverdue: true}},
		{name: "after payday before payday", today: day(2024, time.June, 20), billDay: 5, want: BillStatus{IsOverdue: true}},
		{name: "wrapped early in month", today: day(2024, time.June, 5), billDay: 3, want: BillStatus{IsPaid: true}},
		{name: "wrapped after payday", today: day(2024, time.June, 5), billDay: 20, want: BillStatus{IsPaid: true}},
		{name: "wrapped gap", today: day(2024, time.June, 5), billDay: 10, want: BillStatus{IsOverdue: true}},
	}
	for _, tc := range tests {
		b := Bill{Name: "auto", Value: 10, Day: tc.billDay, Type: BillAutomatic}
		if got := ResolveBillStatus(b, tc.today, 13); got != tc.want {
			t.Fatalf("%s: ResolveBillStatus() = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestResolveBillStatusManual(t *testing.T) {
	t.Parallel()

	today := day(2024, time.June, 20)
	unpaid := Bill{Day: 20, Type: BillManual}
	if got := ResolveBillStatus(unpaid, today, 13); got != (BillStatus{IsDueToday: true}) {
		t.Fatalf("ResolveBillStatus(unpaid due today) = %+v", got)
	}
	paid := Bill{Day: 20, Type: BillManual, Paid: true}
	for i := 0; i < 2; i++ {
		if got := ResolveBillStatus(paid, today, 13); got != (BillStatus{IsPaid: true}) {
			t.Fatalf("ResolveBillStatus(paid) call %d = %+v", i, got)
		}
	}
	savings := Bill{Day: 2, Type: BillManual, Savings: true}
	if got := ResolveBillStatus(savings, today, 13); !got.IsPaid {
		t.Fatalf("ResolveBillStatus(savings) = %+v, want paid", got)
	}
}

func TestResolveBillStatusClampsDueDay(t *testing.T) {
	t.Parallel()

	b := Bill{Day: 31, Type: BillManual}
	got := ResolveBillStatus(b, day(2024, time.June, 30), 13)
	if !got.IsDueToday {
		t.Fatalf("ResolveBillStatus(day 31 on 30 June) = %+v, want due today", got)
	}
}

func TestClassifyBillsSortsUnpaidByDay(t *testing.T) {
	t.Parallel()

	bills := []Bill{
		{ID: 1, Day: 28, Type: BillManual},
		{ID: 2, Day: 3, Type: BillManual},
		{ID: 3, Day: 20, Type: BillManual},
		{ID: 4, Day: 9, Type: BillManual, Paid: true},
	}
	board := ClassifyBills(bills, day(2024, time.June, 20), 13)
	if len(board.Paid) != 1 || board.Paid[0].ID != 4 {
		t.Fatalf("Paid = %+v, want bill 4", board.Paid)
	}
	if len(board.DueToday) != 1 || board.DueToday[0].ID != 3 {
		t.Fatalf("DueToday = %+v, want bill 3", board.DueToday)
	}
	if len(board.Overdue) != 2 || board.Overdue[0].ID != 2 || board.Overdue[1].ID != 1 {
		t.Fatalf("Overdue = %+v, want bills 2 then 1", board.Overdue)
	}
}

func TestNeedsSweep(t *testing.T) {
	t.Parallel()

	today := day(2024, time.June, 20)
	if !NeedsSweep(Bill{Day: 20, Type: BillAutomatic}, today) {
		t.Fatal("NeedsSweep(automatic due today) = false, want true")
	}
	if NeedsSweep(Bill{Day: 20, Type: BillAutomatic, Paid: true}, today) {
		t.Fatal("NeedsSweep(already paid) = true, want false")
	}
	if NeedsSweep(Bill{Day: 20, Type: BillManual}, today) {
		t.Fatal("NeedsSweep(manual) = true, want false")
	}
}
