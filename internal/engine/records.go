package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lachiem1/weekwise/internal/budget"
)

func (e *Engine) RecordExpense(ctx context.Context, username string, in budget.ExpenseInput) (budget.WeeklyExpense, error) {
	if err := in.Validate(); err != nil {
		return budget.WeeklyExpense{}, err
	}
	var out budget.WeeklyExpense
	err := e.withUser(ctx, username, func(s Store) error {
		cycle, err := s.FindActiveCycle(ctx, username, in.Date)
		if err != nil {
			return fmt.Errorf("find cycle for expense: %w", err)
		}
		exp := budget.WeeklyExpense{
			Username: username,
			Name:     strings.TrimSpace(in.Name),
			Value:    budget.Money(in.Value),
			Date:     budget.StartOfDay(in.Date),
		}
		if cycle != nil {
			exp.CycleID = &cycle.ID
		}
		if out, err = s.InsertExpense(ctx, exp); err != nil {
			return fmt.Errorf("insert expense: %w", err)
		}
		return refreshWeekSpent(ctx, s, username, exp.Date)
	})
	return out, err
}

func (e *Engine) UpdateExpense(ctx context.Context, username string, id int64, in budget.ExpenseInput) (budget.WeeklyExpense, error) {
	if err := in.Validate(); err != nil {
		return budget.WeeklyExpense{}, err
	}
	var out budget.WeeklyExpense
	err := e.withUser(ctx, username, func(s Store) error {
		current, err := s.GetExpense(ctx, id)
		if err != nil {
			return fmt.Errorf("get expense %d: %w", id, err)
		}
		if err := checkOwner(current.Username, username); err != nil {
			return err
		}
		cycle, err := s.FindActiveCycle(ctx, username, in.Date)
		if err != nil {
			return fmt.Errorf("find cycle for expense: %w", err)
		}

		out = current
		out.Name = strings.TrimSpace(in.Name)
		out.Value = budget.Money(in.Value)
		out.Date = budget.StartOfDay(in.Date)
		out.CycleID = nil
		if cycle != nil {
			out.CycleID = &cycle.ID
		}
		if err := s.UpdateExpense(ctx, out); err != nil {
			return fmt.Errorf("update expense %d: %w", id, err)
		}
		if err := refreshWeekSpent(ctx, s, username, current.Date); err != nil {
			return err
		}
		if budget.ResolveWeek(current.Date) != budget.ResolveWeek(out.Date) {
			return refreshWeekSpent(ctx, s, username, out.Date)
		}
		return nil
	})
	return out, err
}

func (e *Engine) DeleteExpense(ctx context.Context, username string, id int64) error {
	return e.withUser(ctx, username, func(s Store) error {
		current, err := s.GetExpense(ctx, id)
		if err != nil {
			return fmt.Errorf("get expense %d: %w", id, err)
		}
		if err := checkOwner(current.Username, username); err != nil {
			return err
		}
		if err := s.DeleteExpense(ctx, id); err != nil {
			return fmt.Errorf("delete expense %d: %w", id, err)
		}
		return refreshWeekSpent(ctx, s, username, current.Date)
	})
}

func (e *Engine) ListExpenses(ctx context.Context, username string, from, to time.Time) ([]budget.WeeklyExpense, error) {
	out, err := e.store.ListExpensesBetween(ctx, username, from, to)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return out, nil
}

// refreshWeekSpent recomputes total_spent of the summary row for the week
// containing day, final rows included. Weeks with no row are left alone.
func refreshWeekSpent(ctx context.Context, s Store, username string, day time.Time) error {
	week := budget.ResolveWeek(day)
	spent, err := s.SumExpensesBetween(ctx, username, week.Start, week.End)
	if err != nil {
		return fmt.Errorf("sum week expenses: %w", err)
	}
	if err := s.RefreshSummarySpent(ctx, username, week, spent); err != nil {
		return fmt.Errorf("refresh week summary: %w", err)
	}
	return nil
}

// IncomesView lists the incomes of the active cycle next to the pending ones.
type IncomesView struct {
	Cycle        *budget.Cycle   `json:"cycle,omitempty"`
	Active       []budget.Income `json:"active"`
	Pending      []budget.Income `json:"pending"`
	TotalActive  float64         `json:"total_active"`
	TotalPending float64         `json:"total_pending"`
}

// RecordIncome binds the income to the cycle covering today, or leaves it
// pending for the next cycle confirmation when there is none.
func (e *Engine) RecordIncome(ctx context.Context, username string, in budget.IncomeInput, today time.Time) (budget.Income, error) {
	if err := in.Validate(); err != nil {
		return budget.Income{}, err
	}
	var out budget.Income
	err := e.withUser(ctx, username, func(s Store) error {
		active, err := s.FindActiveCycle(ctx, username, today)
		if err != nil {
			return fmt.Errorf("find active cycle: %w", err)
		}
		inc := budget.Income{
			Username:    username,
			Name:        strings.TrimSpace(in.Name),
			Value:       budget.Money(in.Value),
			Type:        in.Type,
			Status:      budget.IncomePending,
			DateCreated: in.Date,
		}
		if inc.DateCreated.IsZero() {
			inc.DateCreated = today
		}
		if active != nil {
			inc.CycleID = &active.ID
			inc.Status = budget.IncomeActive
		}
		if out, err = s.InsertIncome(ctx, inc); err != nil {
			return fmt.Errorf("insert income: %w", err)
		}
		return nil
	})
	return out, err
}

func (e *Engine) UpdateIncome(ctx context.Context, username string, id int64, in budget.IncomeInput) (budget.Income, error) {
	if err := in.Validate(); err != nil {
		return budget.Income{}, err
	}
	var out budget.Income
	err := e.withUser(ctx, username, func(s Store) error {
		current, err := s.GetIncome(ctx, id)
		if err != nil {
			return fmt.Errorf("get income %d: %w", id, err)
		}
		if err := checkOwner(current.Username, username); err != nil {
			return err
		}
		out = current
		out.Name = strings.TrimSpace(in.Name)
		out.Value = budget.Money(in.Value)
		out.Type = in.Type
		if err := s.UpdateIncome(ctx, out); err != nil {
			return fmt.Errorf("update income %d: %w", id, err)
		}
		return nil
	})
	return out, err
}

func (e *Engine) DeleteIncome(ctx context.Context, username string, id int64) error {
	return e.withUser(ctx, username, func(s Store) error {
		current, err := s.GetIncome(ctx, id)
		if err != nil {
			return fmt.Errorf("get income %d: %w", id, err)
		}
		if err := checkOwner(current.Username, username); err != nil {
			return err
		}
		if err := s.DeleteIncome(ctx, id); err != nil {
			return fmt.Errorf("delete income %d: %w", id, err)
		}
		return nil
	})
}

func (e *Engine) ListIncomes(ctx context.Context, username string, today time.Time) (IncomesView, error) {
	view := IncomesView{Active: []budget.Income{}}
	active, err := e.store.FindActiveCycle(ctx, username, today)
	if err != nil {
		return IncomesView{}, fmt.Errorf("find active cycle: %w", err)
	}
	if active != nil {
		view.Cycle = active
		if view.Active, err = e.store.ListIncomes(ctx, username, &active.ID); err != nil {
			return IncomesView{}, fmt.Errorf("list cycle incomes: %w", err)
		}
	}
	if view.Pending, err = e.store.ListIncomes(ctx, username, nil); err != nil {
		return IncomesView{}, fmt.Errorf("list pending incomes: %w", err)
	}
	view.TotalActive = budget.SumIncomes(view.Active)
	view.TotalPending = budget.SumIncomes(view.Pending)
	return view, nil
}

func (e *Engine) RecordBill(ctx context.Context, username string, in budget.BillInput) (budget.Bill, error) {
	if err := in.Validate(); err != nil {
		return budget.Bill{}, err
	}
	var out budget.Bill
	err := e.withUser(ctx, username, func(s Store) error {
		var err error
		out, err = s.InsertBill(ctx, budget.Bill{
			Username: username,
			Name:     strings.TrimSpace(in.Name),
			Value:    budget.Money(in.Value),
			Day:      in.Day,
			Type:     in.Type,
			Savings:  in.Savings,
		})
		if err != nil {
			return fmt.Errorf("insert bill: %w", err)
		}
		return nil
	})
	return out, err
}

// UpdateBill rewrites the bill's definition. The paid flag is kept; only
// MarkBillPaid, the sweep and cycle creation change it.
func (e *Engine) UpdateBill(ctx context.Context, username string, id int64, in budget.BillInput) (budget.Bill, error) {
	if err := in.Validate(); err != nil {
		return budget.Bill{}, err
	}
	var out budget.Bill
	err := e.withUser(ctx, username, func(s Store) error {
		current, err := s.GetBill(ctx, id)
		if err != nil {
			return fmt.Errorf("get bill %d: %w", id, err)
		}
		if err := checkOwner(current.Username, username); err != nil {
			return err
		}
		out = current
		out.Name = strings.TrimSpace(in.Name)
		out.Value = budget.Money(in.Value)
		out.Day = in.Day
		out.Type = in.Type
		out.Savings = in.Savings
		if err := s.UpdateBill(ctx, out); err != nil {
			return fmt.Errorf("update bill %d: %w", id, err)
		}
		return nil
	})
	return out, err
}

func (e *Engine) DeleteBill(ctx context.Context, username string, id int64) error {
	return e.withUser(ctx, username, func(s Store) error {
		current, err := s.GetBill(ctx, id)
		if err != nil {
			return fmt.Errorf("get bill %d: %w", id, err)
		}
		if err := checkOwner(current.Username, username); err != nil {
			return err
		}
		if _, err := s.DeleteBills(ctx, username, []int64{id}); err != nil {
			return fmt.Errorf("delete bill %d: %w", id, err)
		}
		return nil
	})
}

// MarkBillPaid acknowledges a manual bill for the current cycle.
func (e *Engine) MarkBillPaid(ctx context.Context, username string, id int64) (budget.Bill, error) {
	var out budget.Bill
	err := e.withUser(ctx, username, func(s Store) error {
		current, err := s.GetBill(ctx, id)
		if err != nil {
			return fmt.Errorf("get bill %d: %w", id, err)
		}
		if err := checkOwner(current.Username, username); err != nil {
			return err
		}
		if err := s.SetBillPaid(ctx, id, true); err != nil {
			return fmt.Errorf("mark bill %d paid: %w", id, err)
		}
		out = current
		out.Paid = true
		return nil
	})
	return out, err
}

func (e *Engine) ListBills(ctx context.Context, username string) ([]budget.Bill, error) {
	out, err := e.store.ListBills(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return out, nil
}

// SavingsView is the savings section: savings-flagged bills and the money
// actually set aside.
type SavingsView struct {
	Buckets []budget.Bill   `json:"buckets"`
	Savings []budget.Saving `json:"savings"`
	Total   float64         `json:"total"`
}

// RecordSaving sets money aside from the cycle covering today.
func (e *Engine) RecordSaving(ctx context.Context, username string, in budget.SavingInput, today time.Time) (budget.Saving, error) {
	if err := in.Validate(); err != nil {
		return budget.Saving{}, err
	}
	var out budget.Saving
	err := e.withUser(ctx, username, func(s Store) error {
		if _, err := requirePayday(ctx, s, username); err != nil {
			return err
		}
		active, err := s.FindActiveCycle(ctx, username, today)
		if err != nil {
			return fmt.Errorf("find active cycle: %w", err)
		}
		if active == nil {
			return &budget.ValidationError{Field: "cycle", Msg: "start a new cycle before recording savings"}
		}
		out, err = s.InsertSaving(ctx, budget.Saving{
			Username:  username,
			CycleID:   active.ID,
			Amount:    budget.Money(in.Amount),
			Source:    budget.SavingManual,
			CreatedAt: today,
		})
		if err != nil {
			return fmt.Errorf("insert saving: %w", err)
		}
		return nil
	})
	return out, err
}

func (e *Engine) DeleteSaving(ctx context.Context, username string, id int64) error {
	return e.withUser(ctx, username, func(s Store) error {
		current, err := s.GetSaving(ctx, id)
		if err != nil {
			return fmt.Errorf("get saving %d: %w", id, err)
		}
		if err := checkOwner(current.Username, username); err != nil {
			return err
		}
		if err := s.DeleteSaving(ctx, id); err != nil {
			return fmt.Errorf("delete saving %d: %w", id, err)
		}
		return nil
	})
}

func (e *Engine) ListSavings(ctx context.Context, username string) (SavingsView, error) {
	view := SavingsView{Buckets: []budget.Bill{}}
	bills, err := e.store.ListBills(ctx, username)
	if err != nil {
		return SavingsView{}, fmt.Errorf("list bills: %w", err)
	}
	for _, b := range bills {
		if b.Savings {
			view.Buckets = append(view.Buckets, b)
		}
	}
	if view.Savings, err = e.store.ListSavings(ctx, username); err != nil {
		return SavingsView{}, fmt.Errorf("list savings: %w", err)
	}
	for _, sv := range view.Savings {
		view.Total += sv.Amount
	}
	return view, nil
}
