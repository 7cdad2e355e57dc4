package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorBorder = lipgloss.Color("#7C7C7C")
	ColorMuted  = lipgloss.Color("#9CA3AF")
	ColorText   = lipgloss.Color("#FFFFFF")
	ColorAccent = lipgloss.Color("#87CEEB")
	ColorBlue   = lipgloss.Color("#5FA8FF")
	ColorCoral  = lipgloss.Color("#F47A60")
	ColorYellow = lipgloss.Color("#FFD54A")
	ColorRed    = lipgloss.Color("#F15B5B")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	lineStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	goodStyle = lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	badStyle  = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
)

// Table is a bordered text table. Rows holding the single cell "---" render
// as separators.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(48).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders t with the first column left-aligned and the rest
// right-aligned.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(lineStyle.Render(left))
		for i, w := range widths {
			b.WriteString(lineStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(lineStyle.Render(mid))
			}
		}
		b.WriteString(lineStyle.Render(right))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")
	if len(t.Headers) > 0 {
		b.WriteString(lineStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + pad(h, widths[i], i == 0) + " "))
			if i < numCols-1 {
				b.WriteString(lineStyle.Render("│"))
			}
		}
		b.WriteString(lineStyle.Render("│"))
		b.WriteString("\n")
		rule("├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}
		b.WriteString(lineStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(" " + pad(cell, widths[i], i == 0) + " ")
			if i < numCols-1 {
				b.WriteString(lineStyle.Render("│"))
			}
		}
		b.WriteString(lineStyle.Render("│"))
		b.WriteString("\n")
	}
	rule("╰", "┴", "╯")

	return b.String()
}

func pad(s string, width int, left bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if left {
		return s + strings.Repeat(" ", gap)
	}
	return strings.Repeat(" ", gap) + s
}

// RenderBudgetBar draws spent against limit. The bar turns yellow past 80%
// and red once the limit is exceeded.
func RenderBudgetBar(spent, limit float64, width int) string {
	if limit <= 0 {
		return mutedStyle.Render(strings.Repeat("░", width))
	}
	pct := spent / limit
	if pct < 0 {
		pct = 0
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}

	style := goodStyle
	switch {
	case pct > 1:
		style = badStyle
	case pct > 0.8:
		style = warnStyle
	}
	bar := style.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %s", bar, FormatPercent(pct))
}

// Amount colours a remaining balance: red when negative.
func Amount(v float64) string {
	if v < 0 {
		return badStyle.Render(FormatMoney(v))
	}
	return FormatMoney(v)
}

func Muted(s string) string {
	return mutedStyle.Render(s)
}
