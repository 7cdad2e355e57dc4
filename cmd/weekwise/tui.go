package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lachiem1/weekwise/internal/config"
	"github.com/lachiem1/weekwise/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	var now func() time.Time
	if flagDate != "" {
		today := s.today
		now = func() time.Time { return today }
	}

	// Engine logs would tear the alt screen; send them to a file instead.
	if err := os.MkdirAll(config.ConfigDir(), 0o755); err == nil {
		if f, err := tea.LogToFile(filepath.Join(config.ConfigDir(), "tui.log"), "weekwise"); err == nil {
			defer f.Close()
		}
	}

	p := tea.NewProgram(tui.New(s.eng, s.user, now), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
