// Package engine exposes the budget entry points used by the HTTP API, the
// CLI and the TUI. It wires the pure rules of package budget to a Store and
// serializes mutations per user.
package engine

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/lachiem1/weekwise/internal/budget"
)

type Engine struct {
	store  Store
	logger *log.Logger
	locks  userLocks
}

// New returns an Engine over store. A nil logger falls back to log.Default().
func New(store Store, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{store: store, logger: logger}
}

// userLocks hands out one mutex per username. Different users never contend.
type userLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func (l *userLocks) lock(username string) func() {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[string]*sync.Mutex)
	}
	m, ok := l.m[username]
	if !ok {
		m = &sync.Mutex{}
		l.m[username] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// withUser runs fn in one transaction while holding the user's lock.
func (e *Engine) withUser(ctx context.Context, username string, fn func(Store) error) error {
	unlock := e.locks.lock(username)
	defer unlock()
	return e.store.InTx(ctx, fn)
}

func (e *Engine) SetPayday(ctx context.Context, username string, payday int) error {
	if err := budget.ValidatePayday(payday); err != nil {
		return err
	}
	return e.withUser(ctx, username, func(s Store) error {
		if err := s.SetPayday(ctx, username, payday); err != nil {
			return fmt.Errorf("set payday: %w", err)
		}
		return nil
	})
}

func (e *Engine) GetUser(ctx context.Context, username string) (budget.User, error) {
	u, err := e.store.GetUser(ctx, username)
	if err != nil {
		return budget.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// requirePayday loads the user and fails with budget.ErrNoPayday when the
// payday is still unset.
func requirePayday(ctx context.Context, s Store, username string) (budget.User, error) {
	u, err := s.GetUser(ctx, username)
	if err != nil {
		return budget.User{}, fmt.Errorf("get user: %w", err)
	}
	if !u.HasPayday() {
		return u, budget.ErrNoPayday
	}
	return u, nil
}

func checkOwner(owner, username string) error {
	if owner != username {
		return budget.ErrForbidden
	}
	return nil
}
