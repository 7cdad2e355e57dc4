package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lachiem1/weekwise/internal/budget"
)

var paydayCmd = &cobra.Command{
	Use:   "payday [day]",
	Short: "Show or set the day of month your salary lands",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPayday,
}

func init() {
	rootCmd.AddCommand(paydayCmd)
}

func runPayday(cmd *cobra.Command, args []string) error {
	var day int
	if len(args) == 1 {
		var err error
		if day, err = budget.ParseDay("payday", args[0]); err != nil {
			return err
		}
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	if len(args) == 0 {
		u, err := s.eng.GetUser(cmd.Context(), s.user)
		if err != nil {
			return err
		}
		if !u.HasPayday() {
			fmt.Println("  Payday is not set. Run `weekwise payday <day>`.")
			return nil
		}
		fmt.Printf("  Payday: day %d of each month\n", u.Payday)
		return nil
	}

	if err := s.eng.SetPayday(cmd.Context(), s.user, day); err != nil {
		return err
	}
	fmt.Printf("  Payday set to day %d for %s\n", day, s.user)
	return nil
}
