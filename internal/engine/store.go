package engine

import (
	"context"
	"time"

	"github.com/lachiem1/weekwise/internal/budget"
)

// Store is the data-access collaborator the engine runs against. Lookups of a
// single record by id return budget.ErrNotFound when the row does not exist.
type Store interface {
	// InTx runs fn against a Store bound to one transaction. A Store that is
	// already transactional runs fn against itself.
	InTx(ctx context.Context, fn func(Store) error) error

	UserStore
	CycleStore
	IncomeStore
	BillStore
	SavingStore
	ExpenseStore
	SummaryStore
}

type UserStore interface {
	// GetUser returns the user, or a user with no payday when none is stored.
	GetUser(ctx context.Context, username string) (budget.User, error)
	SetPayday(ctx context.Context, username string, payday int) error
}

type CycleStore interface {
	FindActiveCycle(ctx context.Context, username string, day time.Time) (*budget.Cycle, error)
	// LatestCycleBefore returns the most recent cycle that ended before day.
	LatestCycleBefore(ctx context.Context, username string, day time.Time) (*budget.Cycle, error)
	// CreateCycle is idempotent on (username, start). created is false when
	// the row already existed.
	CreateCycle(ctx context.Context, username string, bounds budget.CycleBounds) (cycle budget.Cycle, created bool, err error)
	// MarkLeftoverSettled flips the flag once; it reports false if it was already set.
	MarkLeftoverSettled(ctx context.Context, cycleID int64) (bool, error)
}

type IncomeStore interface {
	SumIncome(ctx context.Context, username string, cycleID int64) (float64, error)
	SumPendingIncome(ctx context.Context, username string) (float64, error)
	// ListIncomes lists incomes bound to cycleID, or the pending ones when cycleID is nil.
	ListIncomes(ctx context.Context, username string, cycleID *int64) ([]budget.Income, error)
	GetIncome(ctx context.Context, id int64) (budget.Income, error)
	InsertIncome(ctx context.Context, in budget.Income) (budget.Income, error)
	UpdateIncome(ctx context.Context, in budget.Income) error
	DeleteIncome(ctx context.Context, id int64) error
	BindPendingIncomes(ctx context.Context, username string, cycleID int64) (int64, error)
	// RetireIncomes moves active incomes of every other cycle to confirmed.
	RetireIncomes(ctx context.Context, username string, keepCycleID int64) (int64, error)
}

type BillStore interface {
	SumBills(ctx context.Context, username string) (float64, error)
	ListBills(ctx context.Context, username string) ([]budget.Bill, error)
	GetBill(ctx context.Context, id int64) (budget.Bill, error)
	InsertBill(ctx context.Context, b budget.Bill) (budget.Bill, error)
	UpdateBill(ctx context.Context, b budget.Bill) error
	DeleteBills(ctx context.Context, username string, ids []int64) (int64, error)
	SetBillPaid(ctx context.Context, billID int64, paid bool) error
	ResetBillsPaid(ctx context.Context, username string) error
}

type SavingStore interface {
	SumSavings(ctx context.Context, username string, cycleID int64) (float64, error)
	ListSavings(ctx context.Context, username string) ([]budget.Saving, error)
	GetSaving(ctx context.Context, id int64) (budget.Saving, error)
	InsertSaving(ctx context.Context, s budget.Saving) (budget.Saving, error)
	DeleteSaving(ctx context.Context, id int64) error
}

type ExpenseStore interface {
	GetExpense(ctx context.Context, id int64) (budget.WeeklyExpense, error)
	InsertExpense(ctx context.Context, e budget.WeeklyExpense) (budget.WeeklyExpense, error)
	UpdateExpense(ctx context.Context, e budget.WeeklyExpense) error
	DeleteExpense(ctx context.Context, id int64) error
	// ListExpensesBetween lists expenses dated within [from, to], by calendar day.
	ListExpensesBetween(ctx context.Context, username string, from, to time.Time) ([]budget.WeeklyExpense, error)
	SumExpensesBetween(ctx context.Context, username string, from, to time.Time) (float64, error)
}

type SummaryStore interface {
	GetWeeklySummary(ctx context.Context, username string, week budget.WeekRange) (*budget.WeeklySummary, error)
	// UpsertWeeklySummary inserts or updates the row atomically. A final row
	// keeps its weekly limit and only takes the new total spent.
	UpsertWeeklySummary(ctx context.Context, s budget.WeeklySummary) error
	// RefreshSummarySpent rewrites total_spent of an existing row, final or not.
	RefreshSummarySpent(ctx context.Context, username string, week budget.WeekRange, spent float64) error
	FinalizeElapsedSummaries(ctx context.Context, username string, asOf time.Time) (int64, error)
	ListSummaries(ctx context.Context, username string, limit int) ([]budget.WeeklySummary, error)
}
