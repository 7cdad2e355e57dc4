package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lachiem1/weekwise/internal/auth"
	"github.com/lachiem1/weekwise/internal/config"
	"github.com/lachiem1/weekwise/internal/storage"
)

var flagKeyWipeYes bool

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the encrypted database key",
}

var keyImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Store an existing database key in the system credential store",
	Args:  cobra.NoArgs,
	RunE:  runKeyImport,
}

var keyWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete the local database files",
	Args:  cobra.NoArgs,
	RunE:  runKeyWipe,
}

func init() {
	keyWipeCmd.Flags().BoolVarP(&flagKeyWipeYes, "yes", "y", false, "Do not ask for confirmation")

	keyCmd.AddCommand(keyImportCmd, keyWipeCmd)
	rootCmd.AddCommand(keyCmd)
}

func runKeyImport(_ *cobra.Command, _ []string) error {
	fmt.Print("Enter database key: ")
	key, err := readSecret()
	if err != nil {
		return err
	}
	fmt.Println()

	if strings.TrimSpace(key) == "" {
		return errors.New("empty key")
	}
	if err := auth.SaveDBKey(key); err != nil {
		return err
	}
	fmt.Println("Key saved to your system credential store.")
	return nil
}

func runKeyWipe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dbCfg, err := storage.ResolveConfig(cfg.Storage.Path, cfg.Storage.Secure)
	if err != nil {
		return err
	}

	if !flagKeyWipeYes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("refusing to wipe without --yes")
		}
		confirm := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %s and everything recorded in it?", dbCfg.Path)).
			Affirmative("Delete").
			Negative("Keep").
			Value(&confirm).
			Run()
		if err != nil {
			return wizardErr(err)
		}
		if !confirm {
			return nil
		}
	}

	if err := storage.Wipe(dbCfg); err != nil {
		return err
	}
	fmt.Printf("Local database wiped: %s\n", dbCfg.Path)
	return nil
}

func readSecret() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		value, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}
		return string(value), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		if len(line) == 0 {
			return "", err
		}
	}
	return strings.TrimSpace(line), nil
}
