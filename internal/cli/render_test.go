package cli

import (
	"strings"
	"testing"
)

func TestRenderTableAlignsColumns(t *testing.T) {
	t.Parallel()

	out := RenderTable(Table{
		Headers: []string{"Name", "Value"},
		Rows: [][]string{
			{"rent", "500.00"},
			{"---"},
			{"coffee", "4.50"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("RenderTable() produced %d lines, want 7:\n%s", len(lines), out)
	}
	for _, want := range []string{"rent  ", "  4.50", "coffee"} {
		if !strings.Contains(out, want) {
			t.Fatalf("RenderTable() missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTableEmpty(t *testing.T) {
	t.Parallel()

	if got := RenderTable(Table{}); got != "" {
		t.Fatalf("RenderTable(empty) = %q, want empty", got)
	}
}

func TestRenderBudgetBarClampsOverspend(t *testing.T) {
	t.Parallel()

	out := RenderBudgetBar(450, 300, 10)
	if strings.Count(out, "█") != 10 {
		t.Fatalf("RenderBudgetBar() = %q, want a full bar", out)
	}
	if !strings.Contains(out, "150%") {
		t.Fatalf("RenderBudgetBar() = %q, want 150%%", out)
	}
}
