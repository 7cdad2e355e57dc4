package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lachiem1/weekwise/internal/budget"
	"github.com/lachiem1/weekwise/internal/cli"
)

var flagSummariesLimit int

var summariesCmd = &cobra.Command{
	Use:     "summaries",
	Aliases: []string{"history"},
	Short:   "Show recent weeks: limit, spend and remainder",
	Args:    cobra.NoArgs,
	RunE:    runSummaries,
}

func init() {
	summariesCmd.Flags().IntVarP(&flagSummariesLimit, "limit", "n", 12, "Number of weeks")
	rootCmd.AddCommand(summariesCmd)
}

func runSummaries(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	summaries, err := s.eng.ListSummaries(cmd.Context(), s.user, flagSummariesLimit)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("\n  No weeks recorded yet.")
		return nil
	}

	rows := make([][]string, 0, len(summaries))
	for _, sm := range summaries {
		week := budget.WeekRange{Start: sm.PeriodStart, End: sm.PeriodEnd}
		state := "final"
		if !sm.IsFinal {
			state = "open"
		}
		rows = append(rows, []string{
			week.Label(),
			cli.FormatMoney(sm.WeeklyLimit),
			cli.FormatMoney(sm.TotalSpent),
			cli.Amount(sm.Remaining()),
			state,
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("WEEKLY HISTORY"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Week", "Limit", "Spent", "Remaining", "State"},
		Rows:    rows,
	}))
	return nil
}
