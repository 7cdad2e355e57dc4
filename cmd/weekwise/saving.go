package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lachiem1/weekwise/internal/budget"
	"github.com/lachiem1/weekwise/internal/cli"
)

var savingCmd = &cobra.Command{
	Use:     "saving",
	Aliases: []string{"savings"},
	Short:   "Set money aside from the running cycle",
}

var savingAddCmd = &cobra.Command{
	Use:   "add <amount>",
	Short: "Move an amount into savings",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavingAdd,
}

var savingRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a saving",
	Args:    cobra.ExactArgs(1),
	RunE:    runSavingRm,
}

var savingListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List savings buckets and amounts set aside",
	Args:    cobra.NoArgs,
	RunE:    runSavingList,
}

func init() {
	savingCmd.AddCommand(savingAddCmd, savingRmCmd, savingListCmd)
	rootCmd.AddCommand(savingCmd)
}

func runSavingAdd(cmd *cobra.Command, args []string) error {
	amount, err := budget.ParseAmount("amount", args[0])
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	sv, err := s.eng.RecordSaving(cmd.Context(), s.user, budget.SavingInput{Amount: amount}, s.today)
	if err != nil {
		return err
	}
	fmt.Printf("  Saved %s (#%d)\n", cli.FormatMoney(sv.Amount), sv.ID)
	return nil
}

func runSavingRm(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.eng.DeleteSaving(cmd.Context(), s.user, id); err != nil {
		return err
	}
	fmt.Printf("  Deleted saving #%d\n", id)
	return nil
}

func runSavingList(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	view, err := s.eng.ListSavings(cmd.Context(), s.user)
	if err != nil {
		return err
	}
	if len(view.Buckets) == 0 && len(view.Savings) == 0 {
		fmt.Println("\n  Nothing saved yet.")
		return nil
	}

	fmt.Println()
	if len(view.Buckets) > 0 {
		rows := make([][]string, 0, len(view.Buckets))
		for _, b := range view.Buckets {
			rows = append(rows, []string{b.Name, fmt.Sprint(b.Day), cli.FormatMoney(b.Value)})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Monthly buckets",
			Headers: []string{"Bucket", "Day", "Value"},
			Rows:    rows,
		}))
		fmt.Println()
	}

	rows := make([][]string, 0, len(view.Savings)+2)
	for _, sv := range view.Savings {
		rows = append(rows, []string{cli.FormatDate(sv.CreatedAt.Local()), string(sv.Source), cli.FormatMoney(sv.Amount), fmt.Sprint(sv.ID)})
	}
	rows = append(rows, []string{"---"}, []string{"Total", "", cli.FormatMoney(view.Total), ""})
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Set aside",
		Headers: []string{"Date", "Source", "Amount", "ID"},
		Rows:    rows,
	}))
	return nil
}
