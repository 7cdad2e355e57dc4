package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lachiem1/weekwise/internal/budget"
)

type BillsRepo struct {
	db DBTX
}

func NewBillsRepo(db DBTX) *BillsRepo {
	return &BillsRepo{db: db}
}

const billColumns = "id, username, name, value, day, type, paid, savings"

func scanBill(row rowScanner) (budget.Bill, error) {
	var b budget.Bill
	var paid, savings int
	if err := row.Scan(&b.ID, &b.Username, &b.Name, &b.Value, &b.Day, &b.Type, &paid, &savings); err != nil {
		return budget.Bill{}, err
	}
	b.Paid = paid == 1
	b.Savings = savings == 1
	return b, nil
}

func (r *BillsRepo) SumBills(ctx context.Context, username string) (float64, error) {
	var total float64
	if err := r.db.QueryRowContext(
		ctx,
		"SELECT COALESCE(SUM(value), 0) FROM bills WHERE username = ? AND savings = 0",
		username,
	).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum bills for %q: %w", username, err)
	}
	return total, nil
}

func (r *BillsRepo) ListBills(ctx context.Context, username string) ([]budget.Bill, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT `+billColumns+` FROM bills WHERE username = ? ORDER BY day, id`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("query bills for %q: %w", username, err)
	}
	defer rows.Close()

	out := []budget.Bill{}
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bills: %w", err)
	}
	return out, nil
}

func (r *BillsRepo) GetBill(ctx context.Context, id int64) (budget.Bill, error) {
	b, err := scanBill(r.db.QueryRowContext(ctx, `SELECT `+billColumns+` FROM bills WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return budget.Bill{}, budget.ErrNotFound
		}
		return budget.Bill{}, fmt.Errorf("get bill %d: %w", id, err)
	}
	return b, nil
}

func (r *BillsRepo) InsertBill(ctx context.Context, b budget.Bill) (budget.Bill, error) {
	b.Name = normalizeName(b.Name)
	res, err := r.db.ExecContext(
		ctx,
		`INSERT INTO bills (username, name, value, day, type, paid, savings) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.Username, b.Name, b.Value, b.Day, string(b.Type), boolToInt(b.Paid), boolToInt(b.Savings),
	)
	if err != nil {
		return budget.Bill{}, fmt.Errorf("insert bill: %w", err)
	}
	if b.ID, err = res.LastInsertId(); err != nil {
		return budget.Bill{}, fmt.Errorf("read bill id: %w", err)
	}
	return b, nil
}

func (r *BillsRepo) UpdateBill(ctx context.Context, b budget.Bill) error {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE bills SET name = ?, value = ?, day = ?, type = ?, savings = ? WHERE id = ?`,
		normalizeName(b.Name), b.Value, b.Day, string(b.Type), boolToInt(b.Savings), b.ID,
	)
	if err != nil {
		return fmt.Errorf("update bill %d: %w", b.ID, err)
	}
	return requireOneRow(res, "bill", b.ID)
}

func (r *BillsRepo) DeleteBills(ctx context.Context, username string, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := make([]any, 0, len(ids)+1)
	args = append(args, username)
	for _, id := range ids {
		args = append(args, id)
	}
	q := fmt.Sprintf("DELETE FROM bills WHERE username = ? AND id IN (%s)", inPlaceholders(len(ids)))
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, fmt.Errorf("delete bills for %q: %w", username, err)
	}
	return res.RowsAffected()
}

func (r *BillsRepo) SetBillPaid(ctx context.Context, billID int64, paid bool) error {
	res, err := r.db.ExecContext(ctx, "UPDATE bills SET paid = ? WHERE id = ?", boolToInt(paid), billID)
	if err != nil {
		return fmt.Errorf("set bill %d paid: %w", billID, err)
	}
	return requireOneRow(res, "bill", billID)
}

func (r *BillsRepo) ResetBillsPaid(ctx context.Context, username string) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE bills SET paid = 0 WHERE username = ?", username); err != nil {
		return fmt.Errorf("reset paid bills for %q: %w", username, err)
	}
	return nil
}
