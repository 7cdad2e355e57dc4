package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lachiem1/weekwise/internal/budget"
	"github.com/lachiem1/weekwise/internal/cli"
	"github.com/lachiem1/weekwise/internal/engine"
)

var (
	flagCycleWeekly    string
	flagCycleLeftover  string
	flagCycleDropBills []int64
	flagCycleYes       bool
)

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Inspect and start pay cycles",
}

var cycleShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Preview the next cycle",
	Args:  cobra.NoArgs,
	RunE:  runCycleShow,
}

var cycleNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start the cycle covering today",
	Long: "Walks through the leftover of the previous cycle, the bills to keep and the weekly target.\n" +
		"Without a terminal, or with --yes, the flags are used instead of prompts.",
	Args: cobra.NoArgs,
	RunE: runCycleNew,
}

func init() {
	cycleNewCmd.Flags().StringVar(&flagCycleWeekly, "weekly", "", "Weekly target, at most the computed allowance")
	cycleNewCmd.Flags().StringVar(&flagCycleLeftover, "leftover", "", "What to do with the previous cycle's leftover: use or savings")
	cycleNewCmd.Flags().Int64SliceVar(&flagCycleDropBills, "drop-bill", nil, "Bill ids to delete before confirming")
	cycleNewCmd.Flags().BoolVarP(&flagCycleYes, "yes", "y", false, "Do not prompt")

	cycleCmd.AddCommand(cycleShowCmd, cycleNewCmd)
	rootCmd.AddCommand(cycleCmd)
}

func runCycleShow(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	draft, err := s.eng.NewCycleDraft(cmd.Context(), s.user, s.today)
	if err != nil {
		return err
	}
	fmt.Println()
	printDraft(draft)
	return nil
}

// cycleChoices are the wizard answers, filled by prompts or flags.
type cycleChoices struct {
	leftover  string
	dropBills []int64
	weekly    string
	confirmed bool
}

func runCycleNew(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	draft, err := s.eng.NewCycleDraft(ctx, s.user, s.today)
	if err != nil {
		return err
	}
	fmt.Println()
	printDraft(draft)

	interactive := !flagCycleYes && term.IsTerminal(int(os.Stdin.Fd()))
	choices := cycleChoices{
		leftover:  flagCycleLeftover,
		dropBills: flagCycleDropBills,
		weekly:    flagCycleWeekly,
		confirmed: true,
	}

	if interactive && leftoverPending(draft) {
		if err := promptLeftover(&choices); err != nil {
			return err
		}
	}
	if choices.leftover != "" {
		if draft, err = applyLeftover(ctx, s, choices.leftover); err != nil {
			return err
		}
	}

	if interactive && len(draft.Bills) > 0 {
		if err := promptDropBills(draft, &choices); err != nil {
			return err
		}
	}
	if len(choices.dropBills) > 0 {
		n, err := s.eng.DeleteBills(ctx, s.user, choices.dropBills)
		if err != nil {
			return err
		}
		fmt.Printf("  Deleted %d bill(s)\n", n)
		if draft, err = s.eng.NewCycleDraft(ctx, s.user, s.today); err != nil {
			return err
		}
	}

	if interactive {
		if err := promptWeekly(draft, &choices); err != nil {
			return err
		}
		if !choices.confirmed {
			fmt.Println("  Cancelled, cycle not started.")
			return nil
		}
	}

	weeklyNew := draft.WeeklyOriginal
	if choices.weekly != "" {
		d, err := budget.ParseAmount("weekly_new", choices.weekly)
		if err != nil {
			return err
		}
		weeklyNew = budget.Money(d)
	}

	cycle, err := s.eng.ConfirmCycle(ctx, s.user, draft.WeeklyOriginal, weeklyNew, s.today)
	if err != nil {
		return err
	}
	fmt.Printf("\n  Cycle %s started: %s a week for %d weeks\n",
		cli.FormatRange(cycle.StartDate, cycle.EndDate), cli.FormatMoney(weeklyNew), cycle.WeeksCount)
	if diff := draft.WeeklyOriginal - weeklyNew; diff > 0 {
		fmt.Printf("  %s set aside as savings\n", cli.FormatMoney(diff*float64(cycle.WeeksCount)))
	}
	return nil
}

func leftoverPending(d engine.CycleDraft) bool {
	return d.PriorCycle != nil && !d.LeftoverSettled && d.Leftover > 0
}

func applyLeftover(ctx context.Context, s *session, raw string) (engine.CycleDraft, error) {
	action, err := budget.ParseLeftoverAction(raw)
	if err != nil {
		return engine.CycleDraft{}, err
	}
	draft, err := s.eng.LeftoverAction(ctx, s.user, action, s.today)
	if err != nil {
		return engine.CycleDraft{}, err
	}
	fmt.Printf("  Leftover moved to %s\n", action)
	return draft, nil
}

func promptLeftover(c *cycleChoices) error {
	choice := "skip"
	err := huh.NewSelect[string]().
		Title("Leftover from the previous cycle").
		Options(
			huh.NewOption("Add it to this cycle's income", string(budget.LeftoverUse)),
			huh.NewOption("Move it to savings", string(budget.LeftoverSavings)),
			huh.NewOption("Decide later", "skip"),
		).
		Value(&choice).
		Run()
	if err != nil {
		return wizardErr(err)
	}
	if choice != "skip" {
		c.leftover = choice
	}
	return nil
}

func promptDropBills(d engine.CycleDraft, c *cycleChoices) error {
	opts := make([]huh.Option[int64], 0, len(d.Bills))
	for _, b := range d.Bills {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s  %s (day %d)", b.Name, cli.FormatMoney(b.Value), b.Day), b.ID))
	}
	var drop []int64
	err := huh.NewMultiSelect[int64]().
		Title("Bills to remove before starting").
		Description("space to select, enter to continue").
		Options(opts...).
		Value(&drop).
		Run()
	if err != nil {
		return wizardErr(err)
	}
	c.dropBills = append(c.dropBills, drop...)
	return nil
}

func checkWeekly(d engine.CycleDraft, raw string) error {
	v, err := budget.ParseAmount("weekly_new", raw)
	if err != nil {
		return err
	}
	_, err = budget.WeeklyDiffSaving(d.WeeklyOriginal, budget.Money(v), d.Bounds.WeeksCount)
	return err
}

func promptWeekly(d engine.CycleDraft, c *cycleChoices) error {
	if c.weekly == "" {
		c.weekly = fmt.Sprintf("%.2f", d.WeeklyOriginal)
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Weekly target").
				Description(fmt.Sprintf("up to %s; anything lower goes to savings", cli.FormatMoney(d.WeeklyOriginal))).
				Value(&c.weekly).
				Validate(func(raw string) error { return checkWeekly(d, raw) }),
			huh.NewConfirm().
				Title("Start the cycle?").
				Affirmative("Start").
				Negative("Cancel").
				Value(&c.confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return wizardErr(err)
	}
	return nil
}

func wizardErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return errors.New("cancelled")
	}
	return fmt.Errorf("wizard: %w", err)
}
