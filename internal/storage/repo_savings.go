package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lachiem1/weekwise/internal/budget"
)

type SavingsRepo struct {
	db DBTX
}

func NewSavingsRepo(db DBTX) *SavingsRepo {
	return &SavingsRepo{db: db}
}

const savingColumns = "id, username, cycle_id, amount, source, created_at"

func scanSaving(row rowScanner) (budget.Saving, error) {
	var s budget.Saving
	var created string
	if err := row.Scan(&s.ID, &s.Username, &s.CycleID, &s.Amount, &s.Source, &created); err != nil {
		return budget.Saving{}, err
	}
	t, err := parseTimestamp(created)
	if err != nil {
		return budget.Saving{}, fmt.Errorf("parse saving created_at: %w", err)
	}
	s.CreatedAt = t
	return s, nil
}

func (r *SavingsRepo) SumSavings(ctx context.Context, username string, cycleID int64) (float64, error) {
	var total float64
	if err := r.db.QueryRowContext(
		ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM savings WHERE username = ? AND cycle_id = ?",
		username, cycleID,
	).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum savings of cycle %d: %w", cycleID, err)
	}
	return total, nil
}

func (r *SavingsRepo) ListSavings(ctx context.Context, username string) ([]budget.Saving, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+savingColumns+` FROM savings WHERE username = ? ORDER BY created_at DESC, id DESC`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("query savings for %q: %w", username, err)
	}
	defer rows.Close()

	out := []budget.Saving{}
	for rows.Next() {
		s, err := scanSaving(rows)
		if err != nil {
			return nil, fmt.Errorf("scan saving: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate savings: %w", err)
	}
	return out, nil
}

func (r *SavingsRepo) GetSaving(ctx context.Context, id int64) (budget.Saving, error) {
	s, err := scanSaving(r.db.QueryRowContext(ctx, `SELECT `+savingColumns+` FROM savings WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return budget.Saving{}, budget.ErrNotFound
		}
		return budget.Saving{}, fmt.Errorf("get saving %d: %w", id, err)
	}
	return s, nil
}

func (r *SavingsRepo) InsertSaving(ctx context.Context, s budget.Saving) (budget.Saving, error) {
	res, err := r.db.ExecContext(
		ctx,
		`INSERT INTO savings (username, cycle_id, amount, source, created_at) VALUES (?, ?, ?, ?, ?)`,
		s.Username, s.CycleID, s.Amount, string(s.Source), formatTimestamp(s.CreatedAt),
	)
	if err != nil {
		return budget.Saving{}, fmt.Errorf("insert saving: %w", err)
	}
	if s.ID, err = res.LastInsertId(); err != nil {
		return budget.Saving{}, fmt.Errorf("read saving id: %w", err)
	}
	return s, nil
}

func (r *SavingsRepo) DeleteSaving(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM savings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete saving %d: %w", id, err)
	}
	return requireOneRow(res, "saving", id)
}
