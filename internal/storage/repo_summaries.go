package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lachiem1/weekwise/internal/budget"
)

type SummariesRepo struct {
	db DBTX
}

func NewSummariesRepo(db DBTX) *SummariesRepo {
	return &SummariesRepo{db: db}
}

const summaryColumns = "username, period_start, weekly_limit, total_spent, is_final"

// scanSummary rebuilds the period from its stored Monday so PeriodEnd keeps
// its end-of-Sunday clock time.
func scanSummary(row rowScanner) (budget.WeeklySummary, error) {
	var s budget.WeeklySummary
	var start string
	var final int
	if err := row.Scan(&s.Username, &start, &s.WeeklyLimit, &s.TotalSpent, &final); err != nil {
		return budget.WeeklySummary{}, err
	}
	d, err := parseDate(start)
	if err != nil {
		return budget.WeeklySummary{}, fmt.Errorf("parse period_start: %w", err)
	}
	week := budget.ResolveWeek(d)
	s.PeriodStart, s.PeriodEnd = week.Start, week.End
	s.IsFinal = final == 1
	return s, nil
}

func (r *SummariesRepo) GetWeeklySummary(ctx context.Context, username string, week budget.WeekRange) (*budget.WeeklySummary, error) {
	s, err := scanSummary(r.db.QueryRowContext(
		ctx,
		`SELECT `+summaryColumns+` FROM weekly_summaries
		 WHERE username = ? AND period_start = ? AND period_end = ?`,
		username, formatDate(week.Start), formatDate(week.End),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get weekly summary for %q: %w", username, err)
	}
	return &s, nil
}

func (r *SummariesRepo) UpsertWeeklySummary(ctx context.Context, s budget.WeeklySummary) error {
	const q = `
INSERT INTO weekly_summaries (username, period_start, period_end, weekly_limit, total_spent, is_final, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(username, period_start, period_end) DO UPDATE SET
  total_spent = excluded.total_spent,
  weekly_limit = CASE
    WHEN weekly_summaries.is_final = 1 THEN weekly_summaries.weekly_limit
    ELSE excluded.weekly_limit
  END,
  updated_at = excluded.updated_at
`
	if _, err := r.db.ExecContext(
		ctx, q,
		s.Username, formatDate(s.PeriodStart), formatDate(s.PeriodEnd),
		s.WeeklyLimit, s.TotalSpent, boolToInt(s.IsFinal), formatTimestamp(time.Now()),
	); err != nil {
		return fmt.Errorf("upsert weekly summary for %q: %w", s.Username, err)
	}
	return nil
}

func (r *SummariesRepo) RefreshSummarySpent(ctx context.Context, username string, week budget.WeekRange, spent float64) error {
	if _, err := r.db.ExecContext(
		ctx,
		`UPDATE weekly_summaries SET total_spent = ?, updated_at = ?
		 WHERE username = ? AND period_start = ? AND period_end = ?`,
		spent, formatTimestamp(time.Now()), username, formatDate(week.Start), formatDate(week.End),
	); err != nil {
		return fmt.Errorf("refresh weekly summary for %q: %w", username, err)
	}
	return nil
}

func (r *SummariesRepo) FinalizeElapsedSummaries(ctx context.Context, username string, asOf time.Time) (int64, error) {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE weekly_summaries SET is_final = 1, updated_at = ?
		 WHERE username = ? AND is_final = 0 AND period_end < ?`,
		formatTimestamp(time.Now()), username, formatDate(asOf),
	)
	if err != nil {
		return 0, fmt.Errorf("finalize weekly summaries for %q: %w", username, err)
	}
	return res.RowsAffected()
}

func (r *SummariesRepo) ListSummaries(ctx context.Context, username string, limit int) ([]budget.WeeklySummary, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+summaryColumns+` FROM weekly_summaries
		 WHERE username = ? ORDER BY period_start DESC LIMIT ?`,
		username, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query weekly summaries for %q: %w", username, err)
	}
	defer rows.Close()

	out := []budget.WeeklySummary{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan weekly summary: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weekly summaries: %w", err)
	}
	return out, nil
}
