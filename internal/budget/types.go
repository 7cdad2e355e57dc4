// Package budget holds the budget-cycle accounting rules: week and pay-cycle
// boundaries, the weekly allowance, the week-to-week carry-over and bill status.
// Everything here is a pure function of its arguments.
package budget

import "time"

type User struct {
	Username string `json:"username"`
	// Payday is the day of month salary lands, 1-31. Zero means unset.
	Payday int `json:"payday"`
}

func (u User) HasPayday() bool {
	return u.Payday >= 1 && u.Payday <= 31
}

type Cycle struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	WeeksCount      int       `json:"weeks_count"`
	LeftoverSettled bool      `json:"leftover_settled"`
}

// Covers reports whether day falls inside the cycle, bounds inclusive.
func (c Cycle) Covers(day time.Time) bool {
	d := StartOfDay(day)
	return !d.Before(StartOfDay(c.StartDate)) && !d.After(StartOfDay(c.EndDate))
}

type IncomeType string

const (
	IncomeSalary   IncomeType = "salary"
	IncomeIncome   IncomeType = "income"
	IncomeLeftover IncomeType = "leftover"
)

type IncomeStatus string

const (
	IncomePending   IncomeStatus = "pending"
	IncomeActive    IncomeStatus = "active"
	IncomeConfirmed IncomeStatus = "confirmed"
	IncomeInactive  IncomeStatus = "inactive"
)

type Income struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	// CycleID is nil while the income is pending, not yet bound to a cycle.
	CycleID     *int64       `json:"cycle_id"`
	Name        string       `json:"name"`
	Value       float64      `json:"value"`
	Type        IncomeType   `json:"type"`
	Status      IncomeStatus `json:"status"`
	DateCreated time.Time    `json:"date_created"`
}

type BillType string

const (
	BillManual    BillType = "manual"
	BillAutomatic BillType = "automatic"
)

type Bill struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Value    float64  `json:"value"`
	Day      int      `json:"day"`
	Type     BillType `json:"type"`
	Paid     bool     `json:"paid"`
	// Savings marks the row as a savings-goal bucket rather than a bill.
	Savings bool `json:"savings"`
}

type SavingSource string

const (
	SavingLeftover   SavingSource = "leftover"
	SavingWeeklyDiff SavingSource = "weekly-diff"
	SavingManual     SavingSource = "manual"
)

type Saving struct {
	ID        int64        `json:"id"`
	Username  string       `json:"username"`
	CycleID   int64        `json:"cycle_id"`
	Amount    float64      `json:"amount"`
	Source    SavingSource `json:"source"`
	CreatedAt time.Time    `json:"created_at"`
}

type WeeklyExpense struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	CycleID  *int64    `json:"cycle_id"`
	Name     string    `json:"name"`
	Value    float64   `json:"value"`
	Date     time.Time `json:"date_expense"`
}

type WeeklySummary struct {
	Username    string    `json:"username"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	WeeklyLimit float64   `json:"weekly_limit"`
	TotalSpent  float64   `json:"total_spent"`
	IsFinal     bool      `json:"is_final"`
}

// Remaining is the unspent part of the limit; negative when overspent.
func (s WeeklySummary) Remaining() float64 {
	return s.WeeklyLimit - s.TotalSpent
}
