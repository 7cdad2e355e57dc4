package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lachiem1/weekwise/internal/engine"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements engine.Store by composing one repo per table.
type Store struct {
	db *sql.DB

	*UsersRepo
	*CyclesRepo
	*IncomesRepo
	*BillsRepo
	*SavingsRepo
	*ExpensesRepo
	*SummariesRepo
}

var _ engine.Store = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return newStore(db, db)
}

func newStore(db *sql.DB, q DBTX) *Store {
	return &Store{
		db:            db,
		UsersRepo:     NewUsersRepo(q),
		CyclesRepo:    NewCyclesRepo(q),
		IncomesRepo:   NewIncomesRepo(q),
		BillsRepo:     NewBillsRepo(q),
		SavingsRepo:   NewSavingsRepo(q),
		ExpensesRepo:  NewExpensesRepo(q),
		SummariesRepo: NewSummariesRepo(q),
	}
}

func (s *Store) InTx(ctx context.Context, fn func(engine.Store) error) (err error) {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin store transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(newStore(nil, tx)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit store transaction: %w", err)
	}
	return nil
}

// inPlaceholders returns "?,?,?" for n arguments.
func inPlaceholders(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, 0, 2*n-1)
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, '?')
	}
	return string(b)
}
