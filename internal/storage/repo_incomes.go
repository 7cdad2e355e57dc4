package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lachiem1/weekwise/internal/budget"
)

type IncomesRepo struct {
	db DBTX
}

func NewIncomesRepo(db DBTX) *IncomesRepo {
	return &IncomesRepo{db: db}
}

const incomeColumns = "id, username, cycle_id, name, value, type, status, date_created"

func scanIncome(row rowScanner) (budget.Income, error) {
	var in budget.Income
	var cycleID sql.NullInt64
	var created string
	if err := row.Scan(&in.ID, &in.Username, &cycleID, &in.Name, &in.Value, &in.Type, &in.Status, &created); err != nil {
		return budget.Income{}, err
	}
	if cycleID.Valid {
		id := cycleID.Int64
		in.CycleID = &id
	}
	t, err := parseTimestamp(created)
	if err != nil {
		return budget.Income{}, fmt.Errorf("parse income date_created: %w", err)
	}
	in.DateCreated = t
	return in, nil
}

func (r *IncomesRepo) SumIncome(ctx context.Context, username string, cycleID int64) (float64, error) {
	var total float64
	if err := r.db.QueryRowContext(
		ctx,
		`SELECT COALESCE(SUM(value), 0) FROM incomes
		 WHERE username = ? AND cycle_id = ? AND status IN ('active', 'confirmed')`,
		username, cycleID,
	).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum income of cycle %d: %w", cycleID, err)
	}
	return total, nil
}

func (r *IncomesRepo) SumPendingIncome(ctx context.Context, username string) (float64, error) {
	var total float64
	if err := r.db.QueryRowContext(
		ctx,
		`SELECT COALESCE(SUM(value), 0) FROM incomes
		 WHERE username = ? AND cycle_id IS NULL AND status = 'pending'`,
		username,
	).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum pending income for %q: %w", username, err)
	}
	return total, nil
}

func (r *IncomesRepo) ListIncomes(ctx context.Context, username string, cycleID *int64) ([]budget.Income, error) {
	q := `SELECT ` + incomeColumns + ` FROM incomes WHERE username = ? AND cycle_id IS NULL AND status = 'pending' ORDER BY id`
	args := []any{username}
	if cycleID != nil {
		q = `SELECT ` + incomeColumns + ` FROM incomes WHERE username = ? AND cycle_id = ? ORDER BY id`
		args = append(args, *cycleID)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query incomes for %q: %w", username, err)
	}
	defer rows.Close()

	out := []budget.Income{}
	for rows.Next() {
		in, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate incomes: %w", err)
	}
	return out, nil
}

func (r *IncomesRepo) GetIncome(ctx context.Context, id int64) (budget.Income, error) {
	in, err := scanIncome(r.db.QueryRowContext(ctx, `SELECT `+incomeColumns+` FROM incomes WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return budget.Income{}, budget.ErrNotFound
		}
		return budget.Income{}, fmt.Errorf("get income %d: %w", id, err)
	}
	return in, nil
}

func (r *IncomesRepo) InsertIncome(ctx context.Context, in budget.Income) (budget.Income, error) {
	in.Name = normalizeName(in.Name)
	res, err := r.db.ExecContext(
		ctx,
		`INSERT INTO incomes (username, cycle_id, name, value, type, status, date_created)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.Username, nullableID(in.CycleID), in.Name, in.Value, string(in.Type), string(in.Status),
		formatTimestamp(in.DateCreated),
	)
	if err != nil {
		return budget.Income{}, fmt.Errorf("insert income: %w", err)
	}
	if in.ID, err = res.LastInsertId(); err != nil {
		return budget.Income{}, fmt.Errorf("read income id: %w", err)
	}
	return in, nil
}

func (r *IncomesRepo) UpdateIncome(ctx context.Context, in budget.Income) error {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE incomes SET name = ?, value = ?, type = ? WHERE id = ?`,
		normalizeName(in.Name), in.Value, string(in.Type), in.ID,
	)
	if err != nil {
		return fmt.Errorf("update income %d: %w", in.ID, err)
	}
	return requireOneRow(res, "income", in.ID)
}

func (r *IncomesRepo) DeleteIncome(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM incomes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete income %d: %w", id, err)
	}
	return requireOneRow(res, "income", id)
}

func (r *IncomesRepo) BindPendingIncomes(ctx context.Context, username string, cycleID int64) (int64, error) {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE incomes SET cycle_id = ?, status = 'active'
		 WHERE username = ? AND cycle_id IS NULL AND status = 'pending'`,
		cycleID, username,
	)
	if err != nil {
		return 0, fmt.Errorf("bind pending incomes to cycle %d: %w", cycleID, err)
	}
	return res.RowsAffected()
}

func (r *IncomesRepo) RetireIncomes(ctx context.Context, username string, keepCycleID int64) (int64, error) {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE incomes SET status = 'confirmed'
		 WHERE username = ? AND status = 'active' AND cycle_id IS NOT NULL AND cycle_id <> ?`,
		username, keepCycleID,
	)
	if err != nil {
		return 0, fmt.Errorf("retire incomes for %q: %w", username, err)
	}
	return res.RowsAffected()
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

func requireOneRow(res sql.Result, kind string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected %s rows: %w", kind, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, budget.ErrNotFound)
	}
	return nil
}
