package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lachiem1/weekwise/internal/budget"
	"github.com/lachiem1/weekwise/internal/cli"
)

var flagIncomeType string

var incomeCmd = &cobra.Command{
	Use:     "income",
	Aliases: []string{"inc"},
	Short:   "Record and manage income",
}

var incomeAddCmd = &cobra.Command{
	Use:   "add <name> <amount>",
	Short: "Record income for the running cycle, or the next one when none is running",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runIncomeAdd,
}

var incomeEditCmd = &cobra.Command{
	Use:   "edit <id> <name> <amount>",
	Short: "Change an income",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runIncomeEdit,
}

var incomeRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete an income",
	Args:    cobra.ExactArgs(1),
	RunE:    runIncomeRm,
}

var incomeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the running cycle's income and pending income",
	Args:    cobra.NoArgs,
	RunE:    runIncomeList,
}

func init() {
	incomeAddCmd.Flags().StringVarP(&flagIncomeType, "type", "t", "", "salary, income or leftover (default income)")
	incomeEditCmd.Flags().StringVarP(&flagIncomeType, "type", "t", "", "salary, income or leftover (default income)")

	incomeCmd.AddCommand(incomeAddCmd, incomeEditCmd, incomeRmCmd, incomeListCmd)
	rootCmd.AddCommand(incomeCmd)
}

func incomeInput(args []string) (budget.IncomeInput, error) {
	name, raw := nameAndAmount(args)
	value, err := budget.ParseAmount("value", raw)
	if err != nil {
		return budget.IncomeInput{}, err
	}
	typ, err := budget.ParseIncomeType(flagIncomeType)
	if err != nil {
		return budget.IncomeInput{}, err
	}
	return budget.IncomeInput{Name: name, Value: value, Type: typ}, nil
}

func runIncomeAdd(cmd *cobra.Command, args []string) error {
	in, err := incomeInput(args)
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	in.Date = s.today
	inc, err := s.eng.RecordIncome(cmd.Context(), s.user, in, s.today)
	if err != nil {
		return err
	}
	fmt.Printf("  Recorded #%d %s %s (%s)\n", inc.ID, inc.Name, cli.FormatMoney(inc.Value), inc.Status)
	return nil
}

func runIncomeEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	in, err := incomeInput(args[1:])
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	inc, err := s.eng.UpdateIncome(cmd.Context(), s.user, id, in)
	if err != nil {
		return err
	}
	fmt.Printf("  Updated #%d %s %s\n", inc.ID, inc.Name, cli.FormatMoney(inc.Value))
	return nil
}

func runIncomeRm(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.eng.DeleteIncome(cmd.Context(), s.user, id); err != nil {
		return err
	}
	fmt.Printf("  Deleted income #%d\n", id)
	return nil
}

func runIncomeList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	view, err := s.eng.ListIncomes(cmd.Context(), s.user, s.today)
	if err != nil {
		return err
	}

	fmt.Println()
	if view.Cycle != nil {
		fmt.Print(cli.RenderTable(incomeTable("This cycle "+cli.FormatRange(view.Cycle.StartDate, view.Cycle.EndDate), view.Active, view.TotalActive)))
		fmt.Println()
	}
	if len(view.Pending) > 0 {
		fmt.Print(cli.RenderTable(incomeTable("Pending for the next cycle", view.Pending, view.TotalPending)))
	}
	if view.Cycle == nil && len(view.Pending) == 0 {
		fmt.Println("  No income recorded.")
	}
	return nil
}

func incomeTable(title string, incomes []budget.Income, total float64) cli.Table {
	rows := make([][]string, 0, len(incomes)+2)
	for _, inc := range incomes {
		rows = append(rows, []string{inc.Name, string(inc.Type), cli.FormatMoney(inc.Value), fmt.Sprint(inc.ID)})
	}
	rows = append(rows, []string{"---"}, []string{"Total", "", cli.FormatMoney(total), ""})
	return cli.Table{
		Title:   title,
		Headers: []string{"Name", "Type", "Value", "ID"},
		Rows:    rows,
	}
}
