package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lachiem1/weekwise/internal/budget"
)

type UsersRepo struct {
	db DBTX
}

func NewUsersRepo(db DBTX) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) GetUser(ctx context.Context, username string) (budget.User, error) {
	var payday sql.NullInt64
	err := r.db.QueryRowContext(ctx, "SELECT payday FROM users WHERE username = ?", username).Scan(&payday)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return budget.User{Username: username}, nil
		}
		return budget.User{}, fmt.Errorf("get user %q: %w", username, err)
	}
	return budget.User{Username: username, Payday: int(payday.Int64)}, nil
}

func (r *UsersRepo) SetPayday(ctx context.Context, username string, payday int) error {
	if _, err := r.db.ExecContext(
		ctx,
		`INSERT INTO users (username, payday, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(username) DO UPDATE SET payday = excluded.payday, updated_at = excluded.updated_at`,
		username,
		payday,
		formatTimestamp(time.Now()),
	); err != nil {
		return fmt.Errorf("upsert payday for %q: %w", username, err)
	}
	return nil
}
