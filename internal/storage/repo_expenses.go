package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lachiem1/weekwise/internal/budget"
)

type ExpensesRepo struct {
	db DBTX
}

func NewExpensesRepo(db DBTX) *ExpensesRepo {
	return &ExpensesRepo{db: db}
}

const expenseColumns = "id, username, cycle_id, name, value, date_expense"

func scanExpense(row rowScanner) (budget.WeeklyExpense, error) {
	var e budget.WeeklyExpense
	var cycleID sql.NullInt64
	var date string
	if err := row.Scan(&e.ID, &e.Username, &cycleID, &e.Name, &e.Value, &date); err != nil {
		return budget.WeeklyExpense{}, err
	}
	if cycleID.Valid {
		id := cycleID.Int64
		e.CycleID = &id
	}
	d, err := parseDate(date)
	if err != nil {
		return budget.WeeklyExpense{}, fmt.Errorf("parse date_expense: %w", err)
	}
	e.Date = d
	return e, nil
}

func (r *ExpensesRepo) GetExpense(ctx context.Context, id int64) (budget.WeeklyExpense, error) {
	e, err := scanExpense(r.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM weekly_expenses WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return budget.WeeklyExpense{}, budget.ErrNotFound
		}
		return budget.WeeklyExpense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	return e, nil
}

func (r *ExpensesRepo) InsertExpense(ctx context.Context, e budget.WeeklyExpense) (budget.WeeklyExpense, error) {
	e.Name = normalizeName(e.Name)
	res, err := r.db.ExecContext(
		ctx,
		`INSERT INTO weekly_expenses (username, cycle_id, name, value, date_expense) VALUES (?, ?, ?, ?, ?)`,
		e.Username, nullableID(e.CycleID), e.Name, e.Value, formatDate(e.Date),
	)
	if err != nil {
		return budget.WeeklyExpense{}, fmt.Errorf("insert expense: %w", err)
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return budget.WeeklyExpense{}, fmt.Errorf("read expense id: %w", err)
	}
	return e, nil
}

func (r *ExpensesRepo) UpdateExpense(ctx context.Context, e budget.WeeklyExpense) error {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE weekly_expenses SET cycle_id = ?, name = ?, value = ?, date_expense = ? WHERE id = ?`,
		nullableID(e.CycleID), normalizeName(e.Name), e.Value, formatDate(e.Date), e.ID,
	)
	if err != nil {
		return fmt.Errorf("update expense %d: %w", e.ID, err)
	}
	return requireOneRow(res, "expense", e.ID)
}

func (r *ExpensesRepo) DeleteExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM weekly_expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	return requireOneRow(res, "expense", id)
}

func (r *ExpensesRepo) ListExpensesBetween(ctx context.Context, username string, from, to time.Time) ([]budget.WeeklyExpense, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+expenseColumns+` FROM weekly_expenses
		 WHERE username = ? AND date_expense BETWEEN ? AND ?
		 ORDER BY date_expense DESC, id DESC`,
		username, formatDate(from), formatDate(to),
	)
	if err != nil {
		return nil, fmt.Errorf("query expenses for %q: %w", username, err)
	}
	defer rows.Close()

	out := []budget.WeeklyExpense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

func (r *ExpensesRepo) SumExpensesBetween(ctx context.Context, username string, from, to time.Time) (float64, error) {
	var total float64
	if err := r.db.QueryRowContext(
		ctx,
		`SELECT COALESCE(SUM(value), 0) FROM weekly_expenses
		 WHERE username = ? AND date_expense BETWEEN ? AND ?`,
		username, formatDate(from), formatDate(to),
	).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum expenses for %q: %w", username, err)
	}
	return total, nil
}
