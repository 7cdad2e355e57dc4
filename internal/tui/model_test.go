package tui

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/lachiem1/weekwise/internal/budget"
	"github.com/lachiem1/weekwise/internal/engine"
	"github.com/lachiem1/weekwise/internal/storage"
)

func newTestModel(t *testing.T) model {
	t.Helper()

	db, err := storage.Open(context.Background(), storage.Config{
		Mode: storage.ModePlain,
		Path: filepath.Join(t.TempDir(), "weekwise.db"),
	})
	if err != nil {
		t.Fatalf("storage.Open() unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	eng := engine.New(storage.NewStore(db), log.New(io.Discard, "", 0))
	now := func() time.Time { return time.Date(2024, time.June, 20, 9, 0, 0, 0, time.Local) }
	return New(eng, "ana", now).(model)
}

// run executes cmd and feeds its message back into m.
func run(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command, got nil")
	}
	next, _ := m.Update(cmd())
	return next.(model)
}

func typeLine(m model, line string) (model, tea.Cmd) {
	m.cmd.Focus()
	m.cmd.SetValue(line)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(model), cmd
}

func TestParseQuickAdd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		name    string
		value   string
		wantErr bool
	}{
		{input: "coffee 4.50", name: "coffee", value: "4.5"},
		{input: "flat white 4,50", name: "flat white", value: "4.5"},
		{input: "coffee", wantErr: true},
		{input: "coffee lots", wantErr: true},
	}
	for _, tc := range tests {
		got, err := parseQuickAdd(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseQuickAdd(%q) expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseQuickAdd(%q) unexpected error: %v", tc.input, err)
		}
		if got.Name != tc.name || got.Value.String() != tc.value {
			t.Fatalf("parseQuickAdd(%q) = (%q, %s), want (%q, %s)", tc.input, got.Name, got.Value, tc.name, tc.value)
		}
	}
}

func TestOnboardingThenQuickAdd(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m = run(t, m, m.Init())
	if !m.onboarding {
		t.Fatalf("onboarding = false, want true before payday is set")
	}
	if !strings.Contains(m.View(), "/payday") {
		t.Fatalf("View() should point at /payday while onboarding")
	}

	m, cmd := typeLine(m, "/payday 13")
	m = run(t, m, cmd)
	if !strings.HasPrefix(m.commandText, "payday set") {
		t.Fatalf("commandText = %q, want payday confirmation", m.commandText)
	}

	ctx := context.Background()
	if _, err := m.engine.RecordIncome(ctx, "ana", budget.IncomeInput{
		Name: "salary", Value: mustAmount(t, "2000"), Type: budget.IncomeSalary,
	}, m.today()); err != nil {
		t.Fatalf("RecordIncome() unexpected error: %v", err)
	}
	if _, err := m.engine.ConfirmCycle(ctx, "ana", 400, 400, m.today()); err != nil {
		t.Fatalf("ConfirmCycle() unexpected error: %v", err)
	}

	m, cmd = typeLine(m, "groceries 42,50")
	m = run(t, m, cmd)
	if m.commandText != "added groceries" {
		t.Fatalf("commandText = %q, want %q", m.commandText, "added groceries")
	}
	m = run(t, m, m.loadHomeCmd())
	if m.home == nil || m.home.Totals.RawSpent != 42.5 {
		t.Fatalf("home totals = %+v, want raw spent 42.5", m.home)
	}
}

func TestQuickAddValidationFeedback(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m, _ = typeLine(m, "coffee")
	if m.commandText != "type a name followed by an amount" {
		t.Fatalf("commandText = %q", m.commandText)
	}

	m, _ = typeLine(m, "/nope")
	if m.commandText != "Unknown command: /nope" {
		t.Fatalf("commandText = %q", m.commandText)
	}
}

func TestTabCyclesScreens(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	for _, want := range []screenMode{screenBills, screenHistory, screenHome} {
		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = next.(model)
		if m.screen != want {
			t.Fatalf("screen = %v, want %v", m.screen, want)
		}
		if cmd == nil {
			t.Fatalf("switching screens should reload data")
		}
	}
}

func mustAmount(t *testing.T, raw string) decimal.Decimal {
	t.Helper()
	d, err := budget.ParseAmount("value", raw)
	if err != nil {
		t.Fatalf("ParseAmount(%q) unexpected error: %v", raw, err)
	}
	return d
}
