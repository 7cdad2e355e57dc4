package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lachiem1/weekwise/internal/budget"
	"github.com/lachiem1/weekwise/internal/engine"
)

type screenMode int

const (
	screenHome screenMode = iota
	screenBills
	screenHistory
)

var screenNames = []string{"week", "bills", "history"}

type loadHomeMsg struct {
	view engine.HomeView
	err  error
}

type loadBillsMsg struct {
	bills []budget.Bill
	board budget.BillBoard
	err   error
}

type loadHistoryMsg struct {
	summaries []budget.WeeklySummary
	err       error
}

type recordExpenseMsg struct {
	expense budget.WeeklyExpense
	err     error
}

type markPaidMsg struct {
	bill budget.Bill
	err  error
}

type setPaydayMsg struct {
	payday int
	err    error
}

type clearCommandTextMsg struct {
	id int
}

type model struct {
	engine   *engine.Engine
	username string
	now      func() time.Time

	width  int
	height int

	screen   screenMode
	cmd      textinput.Model
	quitting bool

	commandText     string
	commandTextID   int
	showHelpOverlay bool

	home       *engine.HomeView
	onboarding bool
	homeErr    string

	bills     []budget.Bill
	billBoard budget.BillBoard
	billsErr  string

	summaries  []budget.WeeklySummary
	historyErr string
}

// New builds the dashboard for username. now is the clock used for "today";
// nil means time.Now.
func New(eng *engine.Engine, username string, now func() time.Time) tea.Model {
	if now == nil {
		now = time.Now
	}
	cmd := textinput.New()
	cmd.Prompt = "> "
	cmd.Placeholder = "coffee 4.50  or  /help"
	cmd.Width = 48

	return model{
		engine:   eng,
		username: username,
		now:      now,
		cmd:      cmd,
		screen:   screenHome,
	}
}

func (m model) Init() tea.Cmd {
	return m.loadHomeCmd()
}

func (m model) today() time.Time {
	return budget.StartOfDay(m.now())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.cmd.Width = max(24, msg.Width-12)
		return m, nil

	case loadHomeMsg:
		m.onboarding = errors.Is(msg.err, budget.ErrNoPayday)
		if msg.err != nil {
			m.home = nil
			if !m.onboarding {
				m.homeErr = msg.err.Error()
			}
			return m, nil
		}
		m.homeErr = ""
		view := msg.view
		m.home = &view
		return m, nil

	case loadBillsMsg:
		if msg.err != nil {
			m.billsErr = msg.err.Error()
			return m, nil
		}
		m.billsErr = ""
		m.bills = msg.bills
		m.billBoard = msg.board
		return m, nil

	case loadHistoryMsg:
		if msg.err != nil {
			m.historyErr = msg.err.Error()
			return m, nil
		}
		m.historyErr = ""
		m.summaries = msg.summaries
		return m, nil

	case recordExpenseMsg:
		if msg.err != nil {
			return m.withCommandFeedback(userMessage(msg.err))
		}
		next, cmd := m.withCommandFeedback(fmt.Sprintf("added %s", msg.expense.Name))
		return next, tea.Batch(cmd, m.loadHomeCmd())

	case markPaidMsg:
		if msg.err != nil {
			return m.withCommandFeedback(userMessage(msg.err))
		}
		next, cmd := m.withCommandFeedback(fmt.Sprintf("%s marked paid", msg.bill.Name))
		return next, tea.Batch(cmd, m.loadBillsCmd(), m.loadHomeCmd())

	case setPaydayMsg:
		if msg.err != nil {
			return m.withCommandFeedback(userMessage(msg.err))
		}
		next, cmd := m.withCommandFeedback(fmt.Sprintf("payday set to %d", msg.payday))
		return next, tea.Batch(cmd, m.loadHomeCmd())

	case clearCommandTextMsg:
		if msg.id == m.commandTextID {
			m.commandText = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.showHelpOverlay {
			switch msg.String() {
			case "ctrl+c", "q":
				m.quitting = true
				return m, tea.Quit
			case "esc", "enter", "?":
				m.showHelpOverlay = false
			}
			return m, nil
		}

		if m.cmd.Focused() {
			switch msg.String() {
			case "ctrl+c":
				m.quitting = true
				return m, tea.Quit
			case "esc":
				m.cmd.SetValue("")
				m.cmd.Blur()
				return m, nil
			case "enter":
				input := strings.TrimSpace(m.cmd.Value())
				m.cmd.SetValue("")
				m.cmd.Blur()
				return m.runInput(input)
			}
			var cmd tea.Cmd
			m.cmd, cmd = m.cmd.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "?":
			m.showHelpOverlay = true
			return m, nil
		case "a":
			m.cmd.Focus()
			return m, textinput.Blink
		case "/":
			m.cmd.SetValue("/")
			m.cmd.CursorEnd()
			m.cmd.Focus()
			return m, textinput.Blink
		case "r":
			return m, m.reloadCmd()
		case "tab", "right", "l":
			return m.switchScreen((m.screen + 1) % screenMode(len(screenNames)))
		case "shift+tab", "left", "h":
			return m.switchScreen((m.screen + screenMode(len(screenNames)) - 1) % screenMode(len(screenNames)))
		}
	}
	return m, nil
}

func (m model) switchScreen(s screenMode) (tea.Model, tea.Cmd) {
	m.screen = s
	return m, m.reloadCmd()
}

func (m model) reloadCmd() tea.Cmd {
	switch m.screen {
	case screenBills:
		return m.loadBillsCmd()
	case screenHistory:
		return m.loadHistoryCmd()
	default:
		return m.loadHomeCmd()
	}
}

func (m model) withCommandFeedback(text string) (tea.Model, tea.Cmd) {
	m.commandText = text
	m.commandTextID++
	id := m.commandTextID
	return m, tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return clearCommandTextMsg{id: id}
	})
}

// userMessage keeps validation messages verbatim and shortens the rest.
func userMessage(err error) string {
	var verr *budget.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Msg
	case errors.Is(err, budget.ErrNoPayday):
		return "set your payday first: /payday <day>"
	case errors.Is(err, budget.ErrNotFound), errors.Is(err, budget.ErrForbidden):
		return "no such record"
	}
	return "error: " + err.Error()
}

func (m model) loadHomeCmd() tea.Cmd {
	eng, user, today := m.engine, m.username, m.today()
	return func() tea.Msg {
		view, err := eng.GetHomeViewModel(context.Background(), user, today)
		return loadHomeMsg{view: view, err: err}
	}
}

func (m model) loadBillsCmd() tea.Cmd {
	eng, user, today := m.engine, m.username, m.today()
	return func() tea.Msg {
		ctx := context.Background()
		board, err := eng.ResolveBillStatuses(ctx, user, today)
		if err != nil && !errors.Is(err, budget.ErrNoPayday) {
			return loadBillsMsg{err: err}
		}
		bills, err := eng.ListBills(ctx, user)
		return loadBillsMsg{bills: bills, board: board, err: err}
	}
}

func (m model) loadHistoryCmd() tea.Cmd {
	eng, user := m.engine, m.username
	return func() tea.Msg {
		out, err := eng.ListSummaries(context.Background(), user, 12)
		return loadHistoryMsg{summaries: out, err: err}
	}
}

func (m model) recordExpenseCmd(in budget.ExpenseInput) tea.Cmd {
	eng, user := m.engine, m.username
	return func() tea.Msg {
		exp, err := eng.RecordExpense(context.Background(), user, in)
		return recordExpenseMsg{expense: exp, err: err}
	}
}

func (m model) markPaidCmd(id int64) tea.Cmd {
	eng, user := m.engine, m.username
	return func() tea.Msg {
		b, err := eng.MarkBillPaid(context.Background(), user, id)
		return markPaidMsg{bill: b, err: err}
	}
}

func (m model) setPaydayCmd(day int) tea.Cmd {
	eng, user := m.engine, m.username
	return func() tea.Msg {
		err := eng.SetPayday(context.Background(), user, day)
		return setPaydayMsg{payday: day, err: err}
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#F47A60")).
		Padding(1, 2)
	if m.width > 0 {
		frame = frame.Width(max(1, m.width-frame.GetHorizontalBorderSize()))
	}
	layoutWidth := max(40, m.width-frame.GetHorizontalFrameSize())

	if m.showHelpOverlay {
		return frame.Render(renderHelpOverlay(layoutWidth))
	}

	var body string
	switch m.screen {
	case screenBills:
		body = m.renderBillsScreen(layoutWidth)
	case screenHistory:
		body = m.renderHistoryScreen(layoutWidth)
	default:
		body = m.renderHomeScreen(layoutWidth)
	}

	lines := []string{renderTabs(m.screen), "", body, "", m.cmd.View()}
	if m.commandText != "" {
		lines = append(lines, mutedStyle.Render(m.commandText))
	}
	return frame.Render(strings.Join(lines, "\n"))
}
