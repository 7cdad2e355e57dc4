package budget

import "testing"

func TestWeeklyAllowance(t *testing.T) {
	t.Parallel()

	if got := WeeklyAllowance(2000, 500, 0, 5); got != 300 {
		t.Fatalf("WeeklyAllowance() = %v, want 300", got)
	}
	if got := WeeklyAllowance(2000, 500, 250, 5); got != 250 {
		t.Fatalf("WeeklyAllowance() with savings = %v, want 250", got)
	}
	if got := WeeklyAllowance(2000, 500, 0, 0); got != 0 {
		t.Fatalf("WeeklyAllowance() with zero weeks = %v, want 0", got)
	}
	if got := WeeklyAllowance(100, 500, 0, 4); got != -100 {
		t.Fatalf("WeeklyAllowance() overcommitted = %v, want -100", got)
	}
}

func TestSumBillsSkipsSavingsBuckets(t *testing.T) {
	t.Parallel()

	bills := []Bill{
		{Name: "rent", Value: 400},
		{Name: "phone", Value: 100},
		{Name: "holiday", Value: 50, Savings: true},
	}
	if got := SumBills(bills); got != 500 {
		t.Fatalf("SumBills() = %v, want 500", got)
	}
}

func TestSumIncomesSkipsInactive(t *testing.T) {
	t.Parallel()

	incomes := []Income{
		{Value: 1800, Status: IncomeActive},
		{Value: 200, Status: IncomeActive},
		{Value: 999, Status: IncomeInactive},
	}
	if got := SumIncomes(incomes); got != 2000 {
		t.Fatalf("SumIncomes() = %v, want 2000", got)
	}
}
