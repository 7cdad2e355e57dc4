package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lachiem1/weekwise/internal/budget"
)

type commandSpec struct {
	name        string
	description string
}

func commandCatalog() []commandSpec {
	return []commandSpec{
		{name: "/help", description: "show this help"},
		{name: "/week", description: "open the current week"},
		{name: "/bills", description: "open bills and their status"},
		{name: "/history", description: "open the weekly history"},
		{name: "/paid <id>", description: "mark a manual bill as paid"},
		{name: "/payday <day>", description: "set the day of month salary lands"},
		{name: "/quit", description: "leave weekwise"},
	}
}

// runInput treats "/..." as a command and anything else as a quick-add
// expense dated today.
func (m model) runInput(input string) (tea.Model, tea.Cmd) {
	if input == "" {
		return m, nil
	}
	if strings.HasPrefix(input, "/") {
		return m.runSlashCommand(input)
	}
	in, err := parseQuickAdd(input)
	if err != nil {
		return m.withCommandFeedback(userMessage(err))
	}
	in.Date = m.today()
	return m, m.recordExpenseCmd(in)
}

func (m model) runSlashCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(input)
	switch fields[0] {
	case "/help":
		m.showHelpOverlay = true
		return m, nil
	case "/week", "/home":
		return m.switchScreen(screenHome)
	case "/bills":
		return m.switchScreen(screenBills)
	case "/history":
		return m.switchScreen(screenHistory)
	case "/quit", "/q":
		m.quitting = true
		return m, tea.Quit
	case "/paid":
		if len(fields) != 2 {
			return m.withCommandFeedback("usage: /paid <id>")
		}
		id, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil || id <= 0 {
			return m.withCommandFeedback("bill id must be a positive integer")
		}
		return m, m.markPaidCmd(id)
	case "/payday":
		if len(fields) != 2 {
			return m.withCommandFeedback("usage: /payday <day>")
		}
		day, err := budget.ParseDay("payday", fields[1])
		if err != nil {
			return m.withCommandFeedback(userMessage(err))
		}
		return m, m.setPaydayCmd(day)
	}
	return m.withCommandFeedback(fmt.Sprintf("Unknown command: %s", fields[0]))
}

// parseQuickAdd reads "name words amount", e.g. "flat white 4,50".
func parseQuickAdd(input string) (budget.ExpenseInput, error) {
	fields := strings.Fields(input)
	if len(fields) < 2 {
		return budget.ExpenseInput{}, &budget.ValidationError{Field: "value", Msg: "type a name followed by an amount"}
	}
	value, err := budget.ParseAmount("value", fields[len(fields)-1])
	if err != nil {
		return budget.ExpenseInput{}, err
	}
	return budget.ExpenseInput{
		Name:  strings.Join(fields[:len(fields)-1], " "),
		Value: value,
	}, nil
}
