package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/lachiem1/weekwise/internal/budget"
)

// CycleDraft is what the new-cycle wizard shows before confirmation.
type CycleDraft struct {
	Bounds         budget.CycleBounds `json:"bounds"`
	PendingIncomes []budget.Income    `json:"pending_incomes"`
	// RecurringIncomes are the previous cycle's salaries, carried into the
	// new cycle on confirmation.
	RecurringIncomes []budget.Income `json:"recurring_incomes"`
	Bills            []budget.Bill   `json:"bills"`
	TotalIncome      float64         `json:"total_income"`
	TotalBills       float64         `json:"total_bills"`
	WeeklyOriginal   float64         `json:"weekly_original"`

	PriorCycle      *budget.Cycle `json:"prior_cycle,omitempty"`
	Leftover        float64       `json:"leftover"`
	LeftoverSettled bool          `json:"leftover_settled"`
}

// NewCycleDraft returns the wizard state. It fails with budget.ErrCycleActive
// when a cycle already covers today.
func (e *Engine) NewCycleDraft(ctx context.Context, username string, today time.Time) (CycleDraft, error) {
	var draft CycleDraft
	err := e.withUser(ctx, username, func(s Store) error {
		u, err := requireNoActiveCycle(ctx, s, username, today)
		if err != nil {
			return err
		}
		draft, err = e.buildDraft(ctx, s, u, today)
		return err
	})
	return draft, err
}

func requireNoActiveCycle(ctx context.Context, s Store, username string, today time.Time) (budget.User, error) {
	u, err := requirePayday(ctx, s, username)
	if err != nil {
		return u, err
	}
	active, err := s.FindActiveCycle(ctx, username, today)
	if err != nil {
		return u, fmt.Errorf("find active cycle: %w", err)
	}
	if active != nil {
		return u, budget.ErrCycleActive
	}
	return u, nil
}

func (e *Engine) buildDraft(ctx context.Context, s Store, u budget.User, today time.Time) (CycleDraft, error) {
	prior, err := s.LatestCycleBefore(ctx, u.Username, today)
	if err != nil {
		return CycleDraft{}, fmt.Errorf("find previous cycle: %w", err)
	}
	bounds, err := newCycleBounds(u.Payday, today, prior)
	if err != nil {
		return CycleDraft{}, err
	}

	draft := CycleDraft{Bounds: bounds, PriorCycle: prior}
	if draft.PendingIncomes, err = s.ListIncomes(ctx, u.Username, nil); err != nil {
		return CycleDraft{}, fmt.Errorf("list pending incomes: %w", err)
	}
	if draft.RecurringIncomes, err = recurringIncomes(ctx, s, u.Username, prior, draft.PendingIncomes); err != nil {
		return CycleDraft{}, err
	}
	if draft.Bills, err = s.ListBills(ctx, u.Username); err != nil {
		return CycleDraft{}, fmt.Errorf("list bills: %w", err)
	}
	draft.TotalIncome = budget.SumIncomes(draft.PendingIncomes) + budget.SumIncomes(draft.RecurringIncomes)
	draft.TotalBills = budget.SumBills(draft.Bills)
	draft.WeeklyOriginal = roundCents(budget.WeeklyAllowance(draft.TotalIncome, draft.TotalBills, 0, bounds.WeeksCount))

	if prior != nil {
		draft.LeftoverSettled = prior.LeftoverSettled
		if !prior.LeftoverSettled {
			if draft.Leftover, err = cycleLeftover(ctx, s, *prior); err != nil {
				return CycleDraft{}, err
			}
		}
	}
	return draft, nil
}

// recurringIncomes returns the salaries of the previous cycle that repeat in
// the next one. A salary queued as pending replaces them.
func recurringIncomes(ctx context.Context, s Store, username string, prior *budget.Cycle, pending []budget.Income) ([]budget.Income, error) {
	if prior == nil {
		return nil, nil
	}
	for _, in := range pending {
		if in.Type == budget.IncomeSalary {
			return nil, nil
		}
	}
	incomes, err := s.ListIncomes(ctx, username, &prior.ID)
	if err != nil {
		return nil, fmt.Errorf("list incomes of cycle %d: %w", prior.ID, err)
	}
	var out []budget.Income
	for _, in := range incomes {
		if in.Type == budget.IncomeSalary && in.Status != budget.IncomeInactive {
			out = append(out, in)
		}
	}
	return out, nil
}

// newCycleBounds computes the payday-anchored cycle for today. When a payday
// change would make it overlap the previous cycle, the start moves to the
// day after that cycle ended.
func newCycleBounds(payday int, today time.Time, prior *budget.Cycle) (budget.CycleBounds, error) {
	bounds, err := budget.ComputeCycleBounds(payday, today)
	if err != nil {
		return budget.CycleBounds{}, err
	}
	if prior != nil && !prior.EndDate.Before(bounds.Start) {
		bounds.Start = budget.StartOfDay(prior.EndDate).AddDate(0, 0, 1)
		bounds.WeeksCount = budget.CountWeeks(bounds.Start, bounds.End)
	}
	return bounds, nil
}

func cycleLeftover(ctx context.Context, s Store, c budget.Cycle) (float64, error) {
	income, err := s.SumIncome(ctx, c.Username, c.ID)
	if err != nil {
		return 0, fmt.Errorf("sum previous cycle income: %w", err)
	}
	bills, err := s.SumBills(ctx, c.Username)
	if err != nil {
		return 0, fmt.Errorf("sum bills: %w", err)
	}
	savings, err := s.SumSavings(ctx, c.Username, c.ID)
	if err != nil {
		return 0, fmt.Errorf("sum previous cycle savings: %w", err)
	}
	spent, err := s.SumExpensesBetween(ctx, c.Username, c.StartDate, c.EndDate)
	if err != nil {
		return 0, fmt.Errorf("sum previous cycle expenses: %w", err)
	}
	return roundCents(budget.Leftover(income, bills, savings, spent)), nil
}

// LeftoverAction disposes of the previous cycle's leftover: "use" queues it
// as pending income of the next cycle, "savings" records it as a saving of
// the previous cycle. Each cycle's leftover can be disposed of once.
func (e *Engine) LeftoverAction(ctx context.Context, username string, action budget.LeftoverAction, today time.Time) (CycleDraft, error) {
	var draft CycleDraft
	err := e.withUser(ctx, username, func(s Store) error {
		u, err := requireNoActiveCycle(ctx, s, username, today)
		if err != nil {
			return err
		}
		prior, err := s.LatestCycleBefore(ctx, username, today)
		if err != nil {
			return fmt.Errorf("find previous cycle: %w", err)
		}
		if prior == nil {
			return &budget.ValidationError{Field: "action", Msg: "there is no previous cycle"}
		}
		if prior.LeftoverSettled {
			return &budget.ValidationError{Field: "action", Msg: "leftover already handled"}
		}
		leftover, err := cycleLeftover(ctx, s, *prior)
		if err != nil {
			return err
		}
		if leftover <= 0 {
			return &budget.ValidationError{Field: "action", Msg: "there is no leftover to move"}
		}

		switch action {
		case budget.LeftoverUse:
			if _, err := s.InsertIncome(ctx, budget.Income{
				Username:    username,
				Name:        "Leftover",
				Value:       leftover,
				Type:        budget.IncomeLeftover,
				Status:      budget.IncomePending,
				DateCreated: today,
			}); err != nil {
				return fmt.Errorf("insert leftover income: %w", err)
			}
		case budget.LeftoverSavings:
			if _, err := s.InsertSaving(ctx, budget.Saving{
				Username:  username,
				CycleID:   prior.ID,
				Amount:    leftover,
				Source:    budget.SavingLeftover,
				CreatedAt: today,
			}); err != nil {
				return fmt.Errorf("insert leftover saving: %w", err)
			}
		default:
			return &budget.ValidationError{Field: "action", Msg: fmt.Sprintf("unknown leftover action %q", action)}
		}

		settled, err := s.MarkLeftoverSettled(ctx, prior.ID)
		if err != nil {
			return fmt.Errorf("settle leftover of cycle %d: %w", prior.ID, err)
		}
		if !settled {
			return &budget.ValidationError{Field: "action", Msg: "leftover already handled"}
		}
		e.logger.Printf("engine: leftover %.2f of cycle %d for %s moved to %s", leftover, prior.ID, username, action)

		draft, err = e.buildDraft(ctx, s, u, today)
		return err
	})
	return draft, err
}

// DeleteBills removes bills during the wizard. Ids owned by someone else are
// rejected as a whole.
func (e *Engine) DeleteBills(ctx context.Context, username string, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var n int64
	err := e.withUser(ctx, username, func(s Store) error {
		for _, id := range ids {
			b, err := s.GetBill(ctx, id)
			if err != nil {
				return fmt.Errorf("get bill %d: %w", id, err)
			}
			if err := checkOwner(b.Username, username); err != nil {
				return err
			}
		}
		var err error
		if n, err = s.DeleteBills(ctx, username, ids); err != nil {
			return fmt.Errorf("delete bills: %w", err)
		}
		return nil
	})
	return n, err
}

// ConfirmCycle creates the cycle covering today, binds pending incomes to it
// and carries the previous cycle's salaries over. Lowering the weekly target sets the difference for the whole cycle
// aside as a weekly-diff saving; raising it is rejected before anything is
// written. Confirming while a cycle is already active returns that cycle.
func (e *Engine) ConfirmCycle(ctx context.Context, username string, weeklyOriginal, weeklyNew float64, today time.Time) (budget.Cycle, error) {
	if _, err := budget.WeeklyDiffSaving(weeklyOriginal, weeklyNew, 1); err != nil {
		return budget.Cycle{}, err
	}

	var cycle budget.Cycle
	err := e.withUser(ctx, username, func(s Store) error {
		u, err := requirePayday(ctx, s, username)
		if err != nil {
			return err
		}
		active, err := s.FindActiveCycle(ctx, username, today)
		if err != nil {
			return fmt.Errorf("find active cycle: %w", err)
		}
		if active != nil {
			cycle = *active
			return nil
		}

		prior, err := s.LatestCycleBefore(ctx, username, today)
		if err != nil {
			return fmt.Errorf("find previous cycle: %w", err)
		}
		bounds, err := newCycleBounds(u.Payday, today, prior)
		if err != nil {
			return err
		}
		diff, err := budget.WeeklyDiffSaving(weeklyOriginal, weeklyNew, bounds.WeeksCount)
		if err != nil {
			return err
		}
		pending, err := s.ListIncomes(ctx, username, nil)
		if err != nil {
			return fmt.Errorf("list pending incomes: %w", err)
		}
		recurring, err := recurringIncomes(ctx, s, username, prior, pending)
		if err != nil {
			return err
		}

		var created bool
		if cycle, created, err = s.CreateCycle(ctx, username, bounds); err != nil {
			return fmt.Errorf("create cycle: %w", err)
		}
		if !created {
			return nil
		}
		if bounds.WeeksCount <= 0 {
			e.logger.Printf("engine: cycle %d of %s spans %d weeks", cycle.ID, username, bounds.WeeksCount)
		}

		if _, err := s.BindPendingIncomes(ctx, username, cycle.ID); err != nil {
			return fmt.Errorf("bind pending incomes: %w", err)
		}
		for _, in := range recurring {
			in.ID = 0
			in.CycleID = &cycle.ID
			in.Status = budget.IncomeActive
			in.DateCreated = today
			if _, err := s.InsertIncome(ctx, in); err != nil {
				return fmt.Errorf("carry income %q into cycle %d: %w", in.Name, cycle.ID, err)
			}
		}
		if _, err := s.RetireIncomes(ctx, username, cycle.ID); err != nil {
			return fmt.Errorf("retire previous incomes: %w", err)
		}
		if err := s.ResetBillsPaid(ctx, username); err != nil {
			return fmt.Errorf("reset bills paid: %w", err)
		}
		if diff > 0 {
			if _, err := s.InsertSaving(ctx, budget.Saving{
				Username:  username,
				CycleID:   cycle.ID,
				Amount:    roundCents(diff),
				Source:    budget.SavingWeeklyDiff,
				CreatedAt: today,
			}); err != nil {
				return fmt.Errorf("insert weekly-diff saving: %w", err)
			}
		}
		e.logger.Printf(
			"engine: created cycle %d for %s (%s..%s, %d weeks)",
			cycle.ID, username,
			cycle.StartDate.Format("2006-01-02"), cycle.EndDate.Format("2006-01-02"),
			cycle.WeeksCount,
		)
		return nil
	})
	if err != nil {
		return budget.Cycle{}, err
	}
	return cycle, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
