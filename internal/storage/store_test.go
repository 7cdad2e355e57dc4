package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/lachiem1/weekwise/internal/budget"
	"github.com/lachiem1/weekwise/internal/engine"
)

func openTestStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()

	db, err := Open(context.Background(), Config{Mode: ModePlain, Path: filepath.Join(t.TempDir(), "weekwise.db")})
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db), db
}

func localDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestOpenRunsMigrationsIdempotently(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "weekwise.db")
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		db, err := Open(ctx, Config{Mode: ModePlain, Path: path})
		if err != nil {
			t.Fatalf("Open() pass %d unexpected error: %v", i, err)
		}
		var version int
		if err := db.QueryRowContext(ctx, "SELECT version FROM schema_migrations WHERE id = 1").Scan(&version); err != nil {
			t.Fatalf("read schema version: %v", err)
		}
		if version != schemaVersion {
			t.Fatalf("schema version = %d, want %d", version, schemaVersion)
		}
		db.Close()
	}

	exists, err := hasLocalDBFiles(path)
	if err != nil || !exists {
		t.Fatalf("hasLocalDBFiles() = %v, %v; want true, nil", exists, err)
	}
	if err := Wipe(Config{Path: path}); err != nil {
		t.Fatalf("Wipe() unexpected error: %v", err)
	}
	if exists, _ := hasLocalDBFiles(path); exists {
		t.Fatal("hasLocalDBFiles() after Wipe() = true, want false")
	}
}

func TestUsersPayday(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	ctx := context.Background()

	u, err := s.GetUser(ctx, "ana")
	if err != nil {
		t.Fatalf("GetUser() unexpected error: %v", err)
	}
	if u.HasPayday() {
		t.Fatalf("GetUser() payday = %d, want unset", u.Payday)
	}

	if err := s.SetPayday(ctx, "ana", 13); err != nil {
		t.Fatalf("SetPayday() unexpected error: %v", err)
	}
	if err := s.SetPayday(ctx, "ana", 15); err != nil {
		t.Fatalf("SetPayday() second call unexpected error: %v", err)
	}
	u, err = s.GetUser(ctx, "ana")
	if err != nil {
		t.Fatalf("GetUser() unexpected error: %v", err)
	}
	if u.Payday != 15 {
		t.Fatalf("GetUser().Payday = %d, want 15", u.Payday)
	}
}

func TestCreateCycleIsIdempotent(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	ctx := context.Background()
	bounds, err := budget.ComputeCycleBounds(13, localDay(2024, time.June, 20))
	if err != nil {
		t.Fatalf("ComputeCycleBounds() unexpected error: %v", err)
	}

	first, created, err := s.CreateCycle(ctx, "ana", bounds)
	if err != nil || !created {
		t.Fatalf("CreateCycle() = %+v, %v, %v; want created", first, created, err)
	}
	second, created, err := s.CreateCycle(ctx, "ana", bounds)
	if err != nil {
		t.Fatalf("CreateCycle() second call unexpected error: %v", err)
	}
	if created {
		t.Fatal("CreateCycle() second call created = true, want false")
	}
	if second.ID != first.ID {
		t.Fatalf("CreateCycle() second id = %d, want %d", second.ID, first.ID)
	}
	if second.WeeksCount != 5 || !second.StartDate.Equal(localDay(2024, time.June, 13)) {
		t.Fatalf("CreateCycle() = %+v, want start 2024-06-13 and 5 weeks", second)
	}

	active, err := s.FindActiveCycle(ctx, "ana", localDay(2024, time.July, 12))
	if err != nil || active == nil || active.ID != first.ID {
		t.Fatalf("FindActiveCycle(end day) = %+v, %v", active, err)
	}
	active, err = s.FindActiveCycle(ctx, "ana", localDay(2024, time.July, 13))
	if err != nil || active != nil {
		t.Fatalf("FindActiveCycle(after end) = %+v, %v; want nil", active, err)
	}
	prev, err := s.LatestCycleBefore(ctx, "ana", localDay(2024, time.July, 13))
	if err != nil || prev == nil || prev.ID != first.ID {
		t.Fatalf("LatestCycleBefore() = %+v, %v", prev, err)
	}

	settled, err := s.MarkLeftoverSettled(ctx, first.ID)
	if err != nil || !settled {
		t.Fatalf("MarkLeftoverSettled() = %v, %v; want true", settled, err)
	}
	settled, err = s.MarkLeftoverSettled(ctx, first.ID)
	if err != nil || settled {
		t.Fatalf("MarkLeftoverSettled() second call = %v, %v; want false", settled, err)
	}
}

func TestIncomesBindAndRetire(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	ctx := context.Background()
	now := localDay(2024, time.June, 13)

	b1, _ := budget.ComputeCycleBounds(13, localDay(2024, time.May, 20))
	old, _, err := s.CreateCycle(ctx, "ana", b1)
	if err != nil {
		t.Fatalf("CreateCycle() unexpected error: %v", err)
	}
	if _, err := s.InsertIncome(ctx, budget.Income{
		Username: "ana", CycleID: &old.ID, Name: "May salary", Value: 1500,
		Type: budget.IncomeSalary, Status: budget.IncomeActive, DateCreated: now,
	}); err != nil {
		t.Fatalf("InsertIncome() unexpected error: %v", err)
	}
	pending, err := s.InsertIncome(ctx, budget.Income{
		Username: "ana", Name: "  June   salary ", Value: 2000,
		Type: budget.IncomeSalary, Status: budget.IncomePending, DateCreated: now,
	})
	if err != nil {
		t.Fatalf("InsertIncome() unexpected error: %v", err)
	}
	if pending.Name != "June salary" {
		t.Fatalf("InsertIncome().Name = %q, want normalized %q", pending.Name, "June salary")
	}

	if total, _ := s.SumPendingIncome(ctx, "ana"); total != 2000 {
		t.Fatalf("SumPendingIncome() = %v, want 2000", total)
	}

	b2, _ := budget.ComputeCycleBounds(13, now)
	cur, _, err := s.CreateCycle(ctx, "ana", b2)
	if err != nil {
		t.Fatalf("CreateCycle() unexpected error: %v", err)
	}
	if n, err := s.BindPendingIncomes(ctx, "ana", cur.ID); err != nil || n != 1 {
		t.Fatalf("BindPendingIncomes() = %d, %v; want 1", n, err)
	}
	if n, err := s.RetireIncomes(ctx, "ana", cur.ID); err != nil || n != 1 {
		t.Fatalf("RetireIncomes() = %d, %v; want 1", n, err)
	}

	if total, _ := s.SumIncome(ctx, "ana", cur.ID); total != 2000 {
		t.Fatalf("SumIncome(current) = %v, want 2000", total)
	}
	if total, _ := s.SumIncome(ctx, "ana", old.ID); total != 1500 {
		t.Fatalf("SumIncome(previous) = %v, want 1500 (confirmed still counts)", total)
	}
	got, err := s.GetIncome(ctx, pending.ID)
	if err != nil {
		t.Fatalf("GetIncome() unexpected error: %v", err)
	}
	if got.Status != budget.IncomeActive || got.CycleID == nil || *got.CycleID != cur.ID {
		t.Fatalf("GetIncome() = %+v, want active in cycle %d", got, cur.ID)
	}
	if _, err := s.GetIncome(ctx, 9999); !errors.Is(err, budget.ErrNotFound) {
		t.Fatalf("GetIncome(missing) error = %v, want ErrNotFound", err)
	}
}

func TestBillsPaidFlags(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	ctx := context.Background()

	rent, err := s.InsertBill(ctx, budget.Bill{Username: "ana", Name: "rent", Value: 400, Day: 1, Type: budget.BillManual})
	if err != nil {
		t.Fatalf("InsertBill() unexpected error: %v", err)
	}
	if _, err := s.InsertBill(ctx, budget.Bill{Username: "ana", Name: "holiday", Value: 50, Day: 2, Type: budget.BillManual, Savings: true}); err != nil {
		t.Fatalf("InsertBill() unexpected error: %v", err)
	}
	other, err := s.InsertBill(ctx, budget.Bill{Username: "ben", Name: "gym", Value: 30, Day: 3, Type: budget.BillAutomatic})
	if err != nil {
		t.Fatalf("InsertBill() unexpected error: %v", err)
	}

	if total, _ := s.SumBills(ctx, "ana"); total != 400 {
		t.Fatalf("SumBills() = %v, want 400", total)
	}
	if err := s.SetBillPaid(ctx, rent.ID, true); err != nil {
		t.Fatalf("SetBillPaid() unexpected error: %v", err)
	}
	if got, _ := s.GetBill(ctx, rent.ID); !got.Paid {
		t.Fatal("GetBill().Paid = false after SetBillPaid(true)")
	}
	if err := s.ResetBillsPaid(ctx, "ana"); err != nil {
		t.Fatalf("ResetBillsPaid() unexpected error: %v", err)
	}
	if got, _ := s.GetBill(ctx, rent.ID); got.Paid {
		t.Fatal("GetBill().Paid = true after ResetBillsPaid()")
	}

	n, err := s.DeleteBills(ctx, "ana", []int64{rent.ID, other.ID})
	if err != nil {
		t.Fatalf("DeleteBills() unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("DeleteBills() = %d, want 1 (other user's bill untouched)", n)
	}
	if _, err := s.GetBill(ctx, other.ID); err != nil {
		t.Fatalf("GetBill(other user) unexpected error: %v", err)
	}
}

func TestWeeklySummaryUpsertFreezesFinalLimit(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	ctx := context.Background()
	week := budget.ResolveWeek(localDay(2024, time.June, 12))

	upsert := func(limit, spent float64) {
		t.Helper()
		if err := s.UpsertWeeklySummary(ctx, budget.WeeklySummary{
			Username: "ana", PeriodStart: week.Start, PeriodEnd: week.End,
			WeeklyLimit: limit, TotalSpent: spent,
		}); err != nil {
			t.Fatalf("UpsertWeeklySummary() unexpected error: %v", err)
		}
	}

	upsert(100, 10)
	upsert(120, 30)
	got, err := s.GetWeeklySummary(ctx, "ana", week)
	if err != nil || got == nil {
		t.Fatalf("GetWeeklySummary() = %v, %v", got, err)
	}
	if got.WeeklyLimit != 120 || got.TotalSpent != 30 || got.IsFinal {
		t.Fatalf("GetWeeklySummary() = %+v, want limit 120 spent 30 open", got)
	}
	if !got.PeriodEnd.Equal(week.End) {
		t.Fatalf("PeriodEnd = %s, want %s", got.PeriodEnd, week.End)
	}

	n, err := s.FinalizeElapsedSummaries(ctx, "ana", localDay(2024, time.June, 17))
	if err != nil || n != 1 {
		t.Fatalf("FinalizeElapsedSummaries() = %d, %v; want 1", n, err)
	}

	upsert(999, 45)
	got, _ = s.GetWeeklySummary(ctx, "ana", week)
	if got.WeeklyLimit != 120 || got.TotalSpent != 45 || !got.IsFinal {
		t.Fatalf("after final upsert = %+v, want frozen limit 120, spent 45", got)
	}

	if err := s.RefreshSummarySpent(ctx, "ana", week, 50); err != nil {
		t.Fatalf("RefreshSummarySpent() unexpected error: %v", err)
	}
	list, err := s.ListSummaries(ctx, "ana", 10)
	if err != nil || len(list) != 1 || list[0].TotalSpent != 50 {
		t.Fatalf("ListSummaries() = %+v, %v", list, err)
	}
}

func TestExpensesBetweenByCalendarDay(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	ctx := context.Background()
	for _, e := range []budget.WeeklyExpense{
		{Username: "ana", Name: "coffee", Value: 4, Date: localDay(2024, time.June, 16)},
		{Username: "ana", Name: "lunch", Value: 12, Date: localDay(2024, time.June, 17)},
		{Username: "ana", Name: "dinner", Value: 30, Date: localDay(2024, time.June, 23)},
		{Username: "ben", Name: "taxi", Value: 20, Date: localDay(2024, time.June, 18)},
	} {
		if _, err := s.InsertExpense(ctx, e); err != nil {
			t.Fatalf("InsertExpense() unexpected error: %v", err)
		}
	}

	week := budget.ResolveWeek(localDay(2024, time.June, 20))
	list, err := s.ListExpensesBetween(ctx, "ana", week.Start, week.End)
	if err != nil {
		t.Fatalf("ListExpensesBetween() unexpected error: %v", err)
	}
	if len(list) != 2 || list[0].Name != "dinner" || list[1].Name != "lunch" {
		t.Fatalf("ListExpensesBetween() = %+v, want dinner then lunch", list)
	}
	total, err := s.SumExpensesBetween(ctx, "ana", week.Start, week.End)
	if err != nil || total != 42 {
		t.Fatalf("SumExpensesBetween() = %v, %v; want 42", total, err)
	}
}

func TestInTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.InTx(ctx, func(tx engine.Store) error {
		if err := tx.SetPayday(ctx, "ana", 13); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("InTx() error = %v, want boom", err)
	}
	u, err := s.GetUser(ctx, "ana")
	if err != nil {
		t.Fatalf("GetUser() unexpected error: %v", err)
	}
	if u.HasPayday() {
		t.Fatal("payday persisted despite rollback")
	}
}
