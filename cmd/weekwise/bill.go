package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lachiem1/weekwise/internal/budget"
	"github.com/lachiem1/weekwise/internal/cli"
)

var (
	flagBillType    string
	flagBillSavings bool
)

var billCmd = &cobra.Command{
	Use:   "bill",
	Short: "Record and manage monthly bills",
}

var billAddCmd = &cobra.Command{
	Use:   "add <name> <amount> <day>",
	Short: "Record a bill due on <day> of each month",
	Args:  cobra.MinimumNArgs(3),
	RunE:  runBillAdd,
}

var billEditCmd = &cobra.Command{
	Use:   "edit <id> <name> <amount> <day>",
	Short: "Change a bill",
	Args:  cobra.MinimumNArgs(4),
	RunE:  runBillEdit,
}

var billRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a bill",
	Args:    cobra.ExactArgs(1),
	RunE:    runBillRm,
}

var billPaidCmd = &cobra.Command{
	Use:   "paid <id>",
	Short: "Mark a bill as paid",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillPaid,
}

var billListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List bills with their status for today",
	Args:    cobra.NoArgs,
	RunE:    runBillList,
}

func init() {
	for _, c := range []*cobra.Command{billAddCmd, billEditCmd} {
		c.Flags().StringVarP(&flagBillType, "type", "t", "", "manual or automatic (default manual)")
		c.Flags().BoolVar(&flagBillSavings, "savings", false, "Treat the bill as a savings bucket")
	}

	billCmd.AddCommand(billAddCmd, billEditCmd, billRmCmd, billPaidCmd, billListCmd)
	rootCmd.AddCommand(billCmd)
}

func billInput(args []string) (budget.BillInput, error) {
	day, err := budget.ParseDay("day", args[len(args)-1])
	if err != nil {
		return budget.BillInput{}, err
	}
	name, raw := nameAndAmount(args[:len(args)-1])
	value, err := budget.ParseAmount("value", raw)
	if err != nil {
		return budget.BillInput{}, err
	}
	typ, err := budget.ParseBillType(flagBillType)
	if err != nil {
		return budget.BillInput{}, err
	}
	return budget.BillInput{Name: name, Value: value, Day: day, Type: typ, Savings: flagBillSavings}, nil
}

func runBillAdd(cmd *cobra.Command, args []string) error {
	in, err := billInput(args)
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	b, err := s.eng.RecordBill(cmd.Context(), s.user, in)
	if err != nil {
		return err
	}
	fmt.Printf("  Recorded bill #%d %s %s on day %d\n", b.ID, b.Name, cli.FormatMoney(b.Value), b.Day)
	return nil
}

func runBillEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	in, err := billInput(args[1:])
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	b, err := s.eng.UpdateBill(cmd.Context(), s.user, id, in)
	if err != nil {
		return err
	}
	fmt.Printf("  Updated bill #%d %s %s on day %d\n", b.ID, b.Name, cli.FormatMoney(b.Value), b.Day)
	return nil
}

func runBillRm(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.eng.DeleteBill(cmd.Context(), s.user, id); err != nil {
		return err
	}
	fmt.Printf("  Deleted bill #%d\n", id)
	return nil
}

func runBillPaid(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	b, err := s.eng.MarkBillPaid(cmd.Context(), s.user, id)
	if err != nil {
		return err
	}
	fmt.Printf("  %s marked paid\n", b.Name)
	return nil
}

func runBillList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	bills, err := s.eng.ListBills(cmd.Context(), s.user)
	if err != nil {
		return err
	}
	if len(bills) == 0 {
		fmt.Println("\n  No bills recorded.")
		return nil
	}

	status := map[int64]string{}
	board, err := s.eng.ResolveBillStatuses(cmd.Context(), s.user, s.today)
	if err != nil && !errors.Is(err, budget.ErrNoPayday) {
		return err
	}
	for _, b := range board.Paid {
		status[b.ID] = "paid"
	}
	for _, b := range board.DueToday {
		status[b.ID] = "due today"
	}
	for _, b := range board.Overdue {
		status[b.ID] = "overdue"
	}

	rows := make([][]string, 0, len(bills)+2)
	var total float64
	for _, b := range bills {
		st := status[b.ID]
		if st == "" {
			st = "-"
		}
		kind := string(b.Type)
		if b.Savings {
			kind += ", savings"
		}
		rows = append(rows, []string{b.Name, fmt.Sprint(b.Day), cli.FormatMoney(b.Value), kind, st, fmt.Sprint(b.ID)})
		total += b.Value
	}
	rows = append(rows, []string{"---"}, []string{"Total", "", cli.FormatMoney(total), "", "", ""})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Bill", "Day", "Value", "Type", "Status", "ID"},
		Rows:    rows,
	}))
	return nil
}
