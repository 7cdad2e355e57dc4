package budget

// WeeklyAllowance spreads what is left of the cycle's income over its weeks.
// A non-positive weeksCount degrades to a zero allowance instead of dividing.
func WeeklyAllowance(totalIncome, totalBills, totalSavings float64, weeksCount int) float64 {
	if weeksCount <= 0 {
		return 0
	}
	return (totalIncome - totalBills - totalSavings) / float64(weeksCount)
}

// SumBills totals the fixed bills. Savings buckets are not bills.
func SumBills(bills []Bill) float64 {
	var total float64
	for _, b := range bills {
		if b.Savings {
			continue
		}
		total += b.Value
	}
	return total
}

func SumIncomes(incomes []Income) float64 {
	var total float64
	for _, in := range incomes {
		if in.Status == IncomeInactive {
			continue
		}
		total += in.Value
	}
	return total
}

func SumExpenses(expenses []WeeklyExpense) float64 {
	var total float64
	for _, e := range expenses {
		total += e.Value
	}
	return total
}
