package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lachiem1/weekwise/internal/budget"
)

type rowScanner interface {
	Scan(dest ...any) error
}

type CyclesRepo struct {
	db DBTX
}

func NewCyclesRepo(db DBTX) *CyclesRepo {
	return &CyclesRepo{db: db}
}

const cycleColumns = "id, username, start_date, end_date, weeks_count, leftover_settled"

func scanCycle(row rowScanner) (budget.Cycle, error) {
	var c budget.Cycle
	var start, end string
	var settled int
	if err := row.Scan(&c.ID, &c.Username, &start, &end, &c.WeeksCount, &settled); err != nil {
		return budget.Cycle{}, err
	}
	var err error
	if c.StartDate, err = parseDate(start); err != nil {
		return budget.Cycle{}, fmt.Errorf("parse cycle start_date: %w", err)
	}
	if c.EndDate, err = parseDate(end); err != nil {
		return budget.Cycle{}, fmt.Errorf("parse cycle end_date: %w", err)
	}
	c.LeftoverSettled = settled == 1
	return c, nil
}

func (r *CyclesRepo) queryCycle(ctx context.Context, q string, args ...any) (*budget.Cycle, error) {
	c, err := scanCycle(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CyclesRepo) FindActiveCycle(ctx context.Context, username string, day time.Time) (*budget.Cycle, error) {
	d := formatDate(day)
	c, err := r.queryCycle(
		ctx,
		`SELECT `+cycleColumns+` FROM cycles
		 WHERE username = ? AND start_date <= ? AND end_date >= ?
		 ORDER BY start_date DESC LIMIT 1`,
		username, d, d,
	)
	if err != nil {
		return nil, fmt.Errorf("query active cycle for %q: %w", username, err)
	}
	return c, nil
}

func (r *CyclesRepo) LatestCycleBefore(ctx context.Context, username string, day time.Time) (*budget.Cycle, error) {
	c, err := r.queryCycle(
		ctx,
		`SELECT `+cycleColumns+` FROM cycles
		 WHERE username = ? AND end_date < ?
		 ORDER BY end_date DESC LIMIT 1`,
		username, formatDate(day),
	)
	if err != nil {
		return nil, fmt.Errorf("query previous cycle for %q: %w", username, err)
	}
	return c, nil
}

func (r *CyclesRepo) CreateCycle(ctx context.Context, username string, bounds budget.CycleBounds) (budget.Cycle, bool, error) {
	res, err := r.db.ExecContext(
		ctx,
		`INSERT INTO cycles (username, start_date, end_date, weeks_count, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(username, start_date) DO NOTHING`,
		username,
		formatDate(bounds.Start),
		formatDate(bounds.End),
		bounds.WeeksCount,
		formatTimestamp(time.Now()),
	)
	if err != nil {
		return budget.Cycle{}, false, fmt.Errorf("insert cycle for %q: %w", username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return budget.Cycle{}, false, fmt.Errorf("read inserted cycle count: %w", err)
	}

	c, err := r.queryCycle(
		ctx,
		`SELECT `+cycleColumns+` FROM cycles WHERE username = ? AND start_date = ?`,
		username, formatDate(bounds.Start),
	)
	if err != nil {
		return budget.Cycle{}, false, fmt.Errorf("reload cycle for %q: %w", username, err)
	}
	if c == nil {
		return budget.Cycle{}, false, fmt.Errorf("reload cycle for %q: %w", username, budget.ErrNotFound)
	}
	return *c, n == 1, nil
}

func (r *CyclesRepo) MarkLeftoverSettled(ctx context.Context, cycleID int64) (bool, error) {
	res, err := r.db.ExecContext(
		ctx,
		"UPDATE cycles SET leftover_settled = 1 WHERE id = ? AND leftover_settled = 0",
		cycleID,
	)
	if err != nil {
		return false, fmt.Errorf("settle leftover of cycle %d: %w", cycleID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read settled cycle count: %w", err)
	}
	return n == 1, nil
}
