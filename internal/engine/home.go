package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/lachiem1/weekwise/internal/budget"
)

// HomeView is everything the home screen needs for one day.
type HomeView struct {
	State     budget.CycleState      `json:"state"`
	Today     time.Time              `json:"today"`
	Week      budget.WeekRange       `json:"week"`
	WeekLabel string                 `json:"week_label"`
	Cycle     *budget.Cycle          `json:"cycle,omitempty"`
	Totals    budget.WeekTotals      `json:"totals"`
	Expenses  []budget.WeeklyExpense `json:"expenses"`
	Bills     budget.BillBoard       `json:"bills"`
	// Draft is set instead of the totals when no cycle covers today.
	Draft *CycleDraft `json:"draft,omitempty"`
}

// GetHomeViewModel computes the current week for username. Reading also runs
// the opportunistic passes: the automatic-bill sweep, the current week's
// summary upsert and the finalization of elapsed weeks. It returns
// budget.ErrNoPayday when the user must be onboarded first.
func (e *Engine) GetHomeViewModel(ctx context.Context, username string, today time.Time) (HomeView, error) {
	week := budget.ResolveWeek(today)
	view := HomeView{
		Today:     budget.StartOfDay(today),
		Week:      week,
		WeekLabel: week.Label(),
		Expenses:  []budget.WeeklyExpense{},
	}

	err := e.withUser(ctx, username, func(s Store) error {
		u, err := requirePayday(ctx, s, username)
		if err != nil {
			return err
		}

		active, err := s.FindActiveCycle(ctx, username, today)
		if err != nil {
			return fmt.Errorf("find active cycle: %w", err)
		}
		view.State = budget.DetermineState(u, active)
		if active == nil {
			draft, err := e.buildDraft(ctx, s, u, today)
			if err != nil {
				return err
			}
			view.Draft = &draft
			return nil
		}
		view.Cycle = active

		bills, err := e.sweepBills(ctx, s, username, today)
		if err != nil {
			return err
		}
		view.Bills = budget.ClassifyBills(bills, today, u.Payday)

		allowance, err := e.cycleAllowance(ctx, s, *active)
		if err != nil {
			return err
		}

		expenses, err := s.ListExpensesBetween(ctx, username, week.Start, week.End)
		if err != nil {
			return fmt.Errorf("list week expenses: %w", err)
		}
		view.Expenses = expenses
		rawSpent := budget.SumExpenses(expenses)

		prev, err := e.previousSummary(ctx, s, username, *active, week, allowance)
		if err != nil {
			return err
		}

		if err := s.UpsertWeeklySummary(ctx, budget.WeeklySummary{
			Username:    username,
			PeriodStart: week.Start,
			PeriodEnd:   week.End,
			WeeklyLimit: allowance,
			TotalSpent:  rawSpent,
		}); err != nil {
			return fmt.Errorf("upsert current week summary: %w", err)
		}
		finalized, err := s.FinalizeElapsedSummaries(ctx, username, view.Today)
		if err != nil {
			return fmt.Errorf("finalize elapsed summaries: %w", err)
		}
		if finalized > 0 {
			e.logger.Printf("engine: finalized %d weekly summaries for %s", finalized, username)
		}

		view.Totals = budget.ReconcileWeek(allowance, rawSpent, prev)
		return nil
	})
	if err != nil {
		return HomeView{}, err
	}
	return view, nil
}

// ResolveBillStatuses runs the daily sweep and groups the user's bills.
func (e *Engine) ResolveBillStatuses(ctx context.Context, username string, today time.Time) (budget.BillBoard, error) {
	var board budget.BillBoard
	err := e.withUser(ctx, username, func(s Store) error {
		u, err := requirePayday(ctx, s, username)
		if err != nil {
			return err
		}
		bills, err := e.sweepBills(ctx, s, username, today)
		if err != nil {
			return err
		}
		board = budget.ClassifyBills(bills, today, u.Payday)
		return nil
	})
	return board, err
}

// cycleAllowance is the weekly allowance of c from the stored totals.
func (e *Engine) cycleAllowance(ctx context.Context, s Store, c budget.Cycle) (float64, error) {
	income, err := s.SumIncome(ctx, c.Username, c.ID)
	if err != nil {
		return 0, fmt.Errorf("sum cycle income: %w", err)
	}
	bills, err := s.SumBills(ctx, c.Username)
	if err != nil {
		return 0, fmt.Errorf("sum bills: %w", err)
	}
	savings, err := s.SumSavings(ctx, c.Username, c.ID)
	if err != nil {
		return 0, fmt.Errorf("sum cycle savings: %w", err)
	}
	if c.WeeksCount <= 0 {
		e.logger.Printf("engine: cycle %d of %s spans %d weeks, allowance is 0", c.ID, c.Username, c.WeeksCount)
	}
	return budget.WeeklyAllowance(income, bills, savings, c.WeeksCount), nil
}

// previousSummary returns the summary the carry-over is computed from. Only a
// previous week overlapping the active cycle carries over. A missing row is
// synthesized from that week's expenses at the current allowance.
func (e *Engine) previousSummary(
	ctx context.Context,
	s Store,
	username string,
	active budget.Cycle,
	week budget.WeekRange,
	allowance float64,
) (*budget.WeeklySummary, error) {
	prevWeek := week.Previous()
	if prevWeek.End.Before(budget.StartOfDay(active.StartDate)) {
		return nil, nil
	}

	prev, err := s.GetWeeklySummary(ctx, username, prevWeek)
	if err != nil {
		return nil, fmt.Errorf("get previous week summary: %w", err)
	}
	if prev != nil {
		return prev, nil
	}

	spent, err := s.SumExpensesBetween(ctx, username, prevWeek.Start, prevWeek.End)
	if err != nil {
		return nil, fmt.Errorf("sum previous week expenses: %w", err)
	}
	synth := budget.WeeklySummary{
		Username:    username,
		PeriodStart: prevWeek.Start,
		PeriodEnd:   prevWeek.End,
		WeeklyLimit: allowance,
		TotalSpent:  spent,
	}
	if err := s.UpsertWeeklySummary(ctx, synth); err != nil {
		return nil, fmt.Errorf("store previous week summary: %w", err)
	}
	return &synth, nil
}

// sweepBills flips the stored paid flag of automatic bills due today and
// returns the bill list with the flags applied.
func (e *Engine) sweepBills(ctx context.Context, s Store, username string, today time.Time) ([]budget.Bill, error) {
	bills, err := s.ListBills(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	swept := 0
	for i := range bills {
		if !budget.NeedsSweep(bills[i], today) {
			continue
		}
		if err := s.SetBillPaid(ctx, bills[i].ID, true); err != nil {
			return nil, fmt.Errorf("sweep bill %d: %w", bills[i].ID, err)
		}
		bills[i].Paid = true
		swept++
	}
	if swept > 0 {
		e.logger.Printf("engine: swept %d automatic bills for %s", swept, username)
	}
	return bills, nil
}

// ListSummaries returns the most recent weekly summaries, newest first.
func (e *Engine) ListSummaries(ctx context.Context, username string, limit int) ([]budget.WeeklySummary, error) {
	if limit <= 0 {
		limit = 12
	}
	out, err := e.store.ListSummaries(ctx, username, limit)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	return out, nil
}
