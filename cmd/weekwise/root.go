package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lachiem1/weekwise/internal/budget"
	"github.com/lachiem1/weekwise/internal/config"
	"github.com/lachiem1/weekwise/internal/engine"
	"github.com/lachiem1/weekwise/internal/storage"
)

var (
	flagUser string
	flagDate string
)

var rootCmd = &cobra.Command{
	Use:           "weekwise",
	Short:         "Weekly budget from your pay cycle",
	Long:          "Split each pay cycle into a weekly allowance and carry last week's over/under-spend forward.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runHome,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  %s\n", describeError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "Ledger to act on (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDate, "date", "", "Pretend today is YYYY-MM-DD")
}

func describeError(err error) string {
	var verr *budget.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Msg
	case errors.Is(err, budget.ErrNoPayday):
		return "set your payday first: weekwise payday <day>"
	case errors.Is(err, budget.ErrCycleActive):
		return "a cycle is already running; wait for it to end before starting the next one"
	case errors.Is(err, budget.ErrNotFound), errors.Is(err, budget.ErrForbidden):
		return "no such record"
	}
	return "error: " + err.Error()
}

func currentUser(cfg config.Config) string {
	if u := strings.TrimSpace(flagUser); u != "" {
		return u
	}
	return config.GetUser(cfg)
}

// session is an opened engine bound to the acting user.
type session struct {
	eng   *engine.Engine
	user  string
	today time.Time
	cfg   config.Config
	close func()
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	today, err := resolveToday()
	if err != nil {
		return nil, err
	}
	dbCfg, err := storage.ResolveConfig(cfg.Storage.Path, cfg.Storage.Secure)
	if err != nil {
		return nil, err
	}
	db, err := storage.Open(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &session{
		eng:   engine.New(storage.NewStore(db), log.Default()),
		user:  currentUser(cfg),
		today: today,
		cfg:   cfg,
		close: func() { db.Close() },
	}, nil
}

func resolveToday() (time.Time, error) {
	if strings.TrimSpace(flagDate) == "" {
		return budget.StartOfDay(time.Now()), nil
	}
	return budget.ParseDate("date", flagDate, time.Local)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, &budget.ValidationError{Field: "id", Msg: "id must be a positive integer"}
	}
	return id, nil
}
