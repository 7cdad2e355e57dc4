package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lachiem1/weekwise/internal/budget"
	"github.com/lachiem1/weekwise/internal/cli"
)

var (
	headingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F15B5B")).Bold(true)
	tabStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	activeTab     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD54A")).Bold(true).Underline(true)
	numStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB")).Bold(true)
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F47A60")).Bold(true)
	dueTodayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD54A"))
)

func renderTabs(active screenMode) string {
	parts := make([]string, len(screenNames))
	for i, name := range screenNames {
		if screenMode(i) == active {
			parts[i] = activeTab.Render(name)
			continue
		}
		parts[i] = tabStyle.Render(name)
	}
	return strings.Join(parts, mutedStyle.Render("  │  "))
}

func (m model) renderHomeScreen(width int) string {
	switch {
	case m.onboarding:
		return strings.Join([]string{
			headingStyle.Render("Welcome"),
			"",
			"Tell weekwise when you get paid to start your first cycle.",
			mutedStyle.Render("type /payday <day>, e.g. /payday 25"),
		}, "\n")
	case m.homeErr != "":
		return errStyle.Render(m.homeErr)
	case m.home == nil:
		return mutedStyle.Render("loading...")
	}

	v := m.home
	if v.Draft != nil {
		d := v.Draft
		lines := []string{
			headingStyle.Render("No active cycle"),
			"",
			fmt.Sprintf("Next cycle     %s", cli.FormatRange(d.Bounds.Start, d.Bounds.End)),
			fmt.Sprintf("Income         %s", numStyle.Render(cli.FormatMoney(d.TotalIncome))),
			fmt.Sprintf("Bills          %s", numStyle.Render(cli.FormatMoney(d.TotalBills))),
			fmt.Sprintf("Weekly budget  %s", numStyle.Render(cli.FormatMoney(d.WeeklyOriginal))),
		}
		if d.PriorCycle != nil && !d.LeftoverSettled && d.Leftover > 0 {
			lines = append(lines, fmt.Sprintf("Leftover       %s", numStyle.Render(cli.FormatMoney(d.Leftover))))
		}
		lines = append(lines, "", mutedStyle.Render("run `weekwise cycle new` to confirm it"))
		return strings.Join(lines, "\n")
	}

	t := v.Totals
	barWidth := min(40, max(10, width-20))
	lines := []string{
		headingStyle.Render("Week " + v.WeekLabel),
		"",
		cli.RenderBudgetBar(t.VisualSpent, t.WeeklyLimit, barWidth),
		"",
		fmt.Sprintf("Limit      %s", numStyle.Render(cli.FormatMoney(t.WeeklyLimit))),
		fmt.Sprintf("Spent      %s", numStyle.Render(cli.FormatMoney(t.RawSpent))),
	}
	if t.Correction != 0 {
		lines = append(lines, fmt.Sprintf("Last week  %s", numStyle.Render(cli.FormatSigned(t.Correction))))
	}
	lines = append(lines, fmt.Sprintf("Remaining  %s", cli.Amount(t.VisualRemaining)))

	if n := len(v.Bills.Overdue); n > 0 {
		lines = append(lines, "", overdueStyle.Render(fmt.Sprintf("%d bill(s) overdue", n)))
	}
	if n := len(v.Bills.DueToday); n > 0 {
		lines = append(lines, dueTodayStyle.Render(fmt.Sprintf("%d bill(s) due today", n)))
	}

	lines = append(lines, "", headingStyle.Render("Expenses"))
	if len(v.Expenses) == 0 {
		lines = append(lines, mutedStyle.Render("nothing yet, press a to add one"))
	}
	for _, e := range v.Expenses {
		lines = append(lines, fmt.Sprintf("%s  %-24s %10s", e.Date.Format("Mon 02"), truncate(e.Name, 24), cli.FormatMoney(e.Value)))
	}
	return strings.Join(lines, "\n")
}

func (m model) renderBillsScreen(_ int) string {
	if m.billsErr != "" {
		return errStyle.Render(m.billsErr)
	}
	if len(m.bills) == 0 {
		return mutedStyle.Render("no bills recorded")
	}

	status := make(map[int64]string, len(m.bills))
	for _, b := range m.billBoard.Paid {
		status[b.ID] = "paid"
	}
	for _, b := range m.billBoard.DueToday {
		status[b.ID] = "due today"
	}
	for _, b := range m.billBoard.Overdue {
		status[b.ID] = "overdue"
	}

	lines := []string{headingStyle.Render(fmt.Sprintf("%-4s %-22s %4s %10s  %s", "id", "name", "day", "value", "status"))}
	for _, b := range m.bills {
		s := status[b.ID]
		if s == "" {
			s = "-"
		}
		row := fmt.Sprintf("%-4d %-22s %4d %10s  ", b.ID, truncate(b.Name, 22), b.Day, cli.FormatMoney(b.Value))
		switch s {
		case "overdue":
			row += overdueStyle.Render(s)
		case "due today":
			row += dueTodayStyle.Render(s)
		default:
			row += mutedStyle.Render(s)
		}
		if b.Type == budget.BillAutomatic {
			row += mutedStyle.Render(" (auto)")
		}
		lines = append(lines, row)
	}
	lines = append(lines, "", mutedStyle.Render("/paid <id> marks a manual bill as paid"))
	return strings.Join(lines, "\n")
}

func (m model) renderHistoryScreen(width int) string {
	if m.historyErr != "" {
		return errStyle.Render(m.historyErr)
	}
	if len(m.summaries) == 0 {
		return mutedStyle.Render("no weeks recorded yet")
	}
	barWidth := min(30, max(10, width-40))
	lines := []string{headingStyle.Render("Recent weeks")}
	for _, s := range m.summaries {
		week := budget.WeekRange{Start: s.PeriodStart, End: s.PeriodEnd}
		mark := " "
		if !s.IsFinal {
			mark = "*"
		}
		lines = append(lines, fmt.Sprintf("%s%-16s %s  %s",
			mark, week.Label(), cli.RenderBudgetBar(s.TotalSpent, s.WeeklyLimit, barWidth), cli.Amount(s.Remaining())))
	}
	lines = append(lines, "", mutedStyle.Render("* week still open"))
	return strings.Join(lines, "\n")
}

func renderHelpOverlay(width int) string {
	lines := []string{headingStyle.Render("Commands"), ""}
	for _, c := range commandCatalog() {
		lines = append(lines, fmt.Sprintf("%-16s %s", c.name, mutedStyle.Render(c.description)))
	}
	lines = append(lines,
		"",
		headingStyle.Render("Keys"),
		"",
		fmt.Sprintf("%-16s %s", "a", mutedStyle.Render("quick-add an expense: name amount")),
		fmt.Sprintf("%-16s %s", "tab / shift+tab", mutedStyle.Render("switch view")),
		fmt.Sprintf("%-16s %s", "r", mutedStyle.Render("refresh")),
		fmt.Sprintf("%-16s %s", "q", mutedStyle.Render("quit")),
		"",
		mutedStyle.Render("esc to close"),
	)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7C7C7C")).
		Padding(1, 2).
		MaxWidth(width)
	return box.Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
