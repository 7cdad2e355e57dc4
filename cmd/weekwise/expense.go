package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lachiem1/weekwise/internal/budget"
	"github.com/lachiem1/weekwise/internal/cli"
)

var (
	flagExpenseDate string
	flagExpenseFrom string
	flagExpenseTo   string
)

var expenseCmd = &cobra.Command{
	Use:     "expense",
	Aliases: []string{"exp", "e"},
	Short:   "Record and manage discretionary expenses",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add <name> <amount>",
	Short: "Record an expense (dated today unless --on is given)",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runExpenseAdd,
}

var expenseEditCmd = &cobra.Command{
	Use:   "edit <id> <name> <amount>",
	Short: "Change an expense",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runExpenseEdit,
}

var expenseRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete an expense",
	Args:    cobra.ExactArgs(1),
	RunE:    runExpenseRm,
}

var expenseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List expenses (this week unless --from/--to)",
	Args:    cobra.NoArgs,
	RunE:    runExpenseList,
}

func init() {
	expenseAddCmd.Flags().StringVar(&flagExpenseDate, "on", "", "Expense date YYYY-MM-DD")
	expenseEditCmd.Flags().StringVar(&flagExpenseDate, "on", "", "Expense date YYYY-MM-DD")
	expenseListCmd.Flags().StringVar(&flagExpenseFrom, "from", "", "First day YYYY-MM-DD")
	expenseListCmd.Flags().StringVar(&flagExpenseTo, "to", "", "Last day YYYY-MM-DD")

	expenseCmd.AddCommand(expenseAddCmd, expenseEditCmd, expenseRmCmd, expenseListCmd)
	rootCmd.AddCommand(expenseCmd)
}

// nameAndAmount splits trailing-amount args so names may contain spaces.
func nameAndAmount(args []string) (string, string) {
	return strings.Join(args[:len(args)-1], " "), args[len(args)-1]
}

func expenseInput(args []string, today time.Time) (budget.ExpenseInput, error) {
	name, raw := nameAndAmount(args)
	value, err := budget.ParseAmount("value", raw)
	if err != nil {
		return budget.ExpenseInput{}, err
	}
	in := budget.ExpenseInput{Name: name, Value: value, Date: today}
	if flagExpenseDate != "" {
		if in.Date, err = budget.ParseDate("date_expense", flagExpenseDate, time.Local); err != nil {
			return budget.ExpenseInput{}, err
		}
	}
	return in, nil
}

func runExpenseAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	in, err := expenseInput(args, s.today)
	if err != nil {
		return err
	}
	exp, err := s.eng.RecordExpense(cmd.Context(), s.user, in)
	if err != nil {
		return err
	}
	fmt.Printf("  Recorded #%d %s %s on %s\n", exp.ID, exp.Name, cli.FormatMoney(exp.Value), cli.FormatDate(exp.Date))
	return nil
}

func runExpenseEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	in, err := expenseInput(args[1:], s.today)
	if err != nil {
		return err
	}
	exp, err := s.eng.UpdateExpense(cmd.Context(), s.user, id, in)
	if err != nil {
		return err
	}
	fmt.Printf("  Updated #%d %s %s on %s\n", exp.ID, exp.Name, cli.FormatMoney(exp.Value), cli.FormatDate(exp.Date))
	return nil
}

func runExpenseRm(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.eng.DeleteExpense(cmd.Context(), s.user, id); err != nil {
		return err
	}
	fmt.Printf("  Deleted expense #%d\n", id)
	return nil
}

func runExpenseList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	week := budget.ResolveWeek(s.today)
	from, to := week.Start, week.End
	if flagExpenseFrom != "" {
		if from, err = budget.ParseDate("from", flagExpenseFrom, time.Local); err != nil {
			return err
		}
	}
	if flagExpenseTo != "" {
		if to, err = budget.ParseDate("to", flagExpenseTo, time.Local); err != nil {
			return err
		}
	}

	expenses, err := s.eng.ListExpenses(cmd.Context(), s.user, from, to)
	if err != nil {
		return err
	}
	if len(expenses) == 0 {
		fmt.Printf("\n  No expenses between %s.\n", cli.FormatRange(from, to))
		return nil
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(expenseTable(cli.FormatRange(from, to), expenses)))
	return nil
}
