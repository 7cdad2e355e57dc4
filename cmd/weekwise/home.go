package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lachiem1/weekwise/internal/budget"
	"github.com/lachiem1/weekwise/internal/cli"
	"github.com/lachiem1/weekwise/internal/engine"
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show this week's allowance, spend and bills",
	RunE:  runHome,
}

func init() {
	rootCmd.AddCommand(homeCmd)
}

func runHome(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	view, err := s.eng.GetHomeViewModel(cmd.Context(), s.user, s.today)
	if err != nil {
		return err
	}

	fmt.Println()
	if view.Draft != nil {
		printDraft(*view.Draft)
		fmt.Println("  No cycle covers today. Run `weekwise cycle new` to start one.")
		return nil
	}

	fmt.Println(cli.RenderTitle("WEEK " + view.WeekLabel))
	fmt.Println()

	t := view.Totals
	rows := [][]string{
		{"Weekly limit", cli.FormatMoney(t.WeeklyLimit)},
		{"Spent this week", cli.FormatMoney(t.RawSpent)},
	}
	if t.Correction != 0 {
		rows = append(rows, []string{"Carried from last week", cli.FormatSigned(t.Correction)})
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Remaining", cli.Amount(t.VisualRemaining)},
	)
	fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))
	fmt.Printf("  %s\n\n", cli.RenderBudgetBar(t.VisualSpent, t.WeeklyLimit, 30))

	if len(view.Expenses) > 0 {
		fmt.Print(cli.RenderTable(expenseTable("Expenses", view.Expenses)))
		fmt.Println()
	}
	printBillAlerts(view.Bills)
	if view.Cycle != nil {
		fmt.Printf("  %s\n", cli.Muted(fmt.Sprintf("cycle %s (%d weeks)",
			cli.FormatRange(view.Cycle.StartDate, view.Cycle.EndDate), view.Cycle.WeeksCount)))
	}
	return nil
}

func printBillAlerts(board budget.BillBoard) {
	if len(board.Overdue) == 0 && len(board.DueToday) == 0 {
		return
	}
	rows := make([][]string, 0, len(board.Overdue)+len(board.DueToday))
	for _, b := range board.Overdue {
		rows = append(rows, []string{b.Name, fmt.Sprint(b.Day), cli.FormatMoney(b.Value), "overdue"})
	}
	for _, b := range board.DueToday {
		rows = append(rows, []string{b.Name, fmt.Sprint(b.Day), cli.FormatMoney(b.Value), "due today"})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Bills needing attention",
		Headers: []string{"Bill", "Day", "Value", "Status"},
		Rows:    rows,
	}))
	fmt.Println()
}

func printDraft(d engine.CycleDraft) {
	fmt.Println(cli.RenderTitle("NEXT CYCLE " + cli.FormatRange(d.Bounds.Start, d.Bounds.End)))
	fmt.Println()

	rows := make([][]string, 0, len(d.PendingIncomes)+len(d.RecurringIncomes)+len(d.Bills)+6)
	for _, inc := range d.RecurringIncomes {
		rows = append(rows, []string{"+ " + inc.Name + " (recurring)", cli.FormatMoney(inc.Value)})
	}
	for _, inc := range d.PendingIncomes {
		rows = append(rows, []string{"+ " + inc.Name, cli.FormatMoney(inc.Value)})
	}
	for _, b := range d.Bills {
		rows = append(rows, []string{fmt.Sprintf("- %s (#%d)", b.Name, b.ID), cli.FormatMoney(b.Value)})
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Income", cli.FormatMoney(d.TotalIncome)},
		[]string{"Bills", cli.FormatMoney(d.TotalBills)},
		[]string{"Weeks", fmt.Sprint(d.Bounds.WeeksCount)},
		[]string{"Weekly allowance", cli.FormatMoney(d.WeeklyOriginal)},
	)
	fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))

	if d.PriorCycle != nil && d.Leftover > 0 {
		state := "pending"
		if d.LeftoverSettled {
			state = "handled"
		}
		fmt.Printf("  Leftover from last cycle: %s (%s)\n", cli.FormatMoney(d.Leftover), state)
	}
	fmt.Println()
}

func expenseTable(title string, expenses []budget.WeeklyExpense) cli.Table {
	rows := make([][]string, 0, len(expenses)+2)
	var total float64
	for _, e := range expenses {
		rows = append(rows, []string{e.Name, cli.FormatDate(e.Date), cli.FormatMoney(e.Value), fmt.Sprint(e.ID)})
		total += e.Value
	}
	rows = append(rows, []string{"---"}, []string{"Total", "", cli.FormatMoney(total), ""})
	return cli.Table{
		Title:   title,
		Headers: []string{"Name", "Date", "Value", "ID"},
		Rows:    rows,
	}
}
