package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lachiem1/weekwise/internal/config"
	"github.com/lachiem1/weekwise/internal/storage"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set user, storage.path, storage.secure or server.addr",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    User: %s\n", currentUser(cfg))
	fmt.Println()

	fmt.Println("  [Storage]")
	dbCfg, err := storage.ResolveConfig(cfg.Storage.Path, cfg.Storage.Secure)
	if err != nil {
		fmt.Printf("    Path:   unresolved (%v)\n", err)
	} else {
		fmt.Printf("    Path:   %s\n", dbCfg.Path)
	}
	fmt.Printf("    Secure: %v\n", cfg.Storage.Secure)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Addr: %s\n", config.GetAddr(cfg))
	fmt.Println()
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	key, value := strings.ToLower(args[0]), strings.TrimSpace(args[1])
	switch key {
	case "user", "general.user":
		if value == "" {
			return fmt.Errorf("user cannot be empty")
		}
		cfg.General.User = value
	case "storage.path":
		cfg.Storage.Path = value
	case "storage.secure":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("storage.secure must be true or false")
		}
		cfg.Storage.Secure = b
	case "server.addr":
		cfg.Server.Addr = value
	default:
		return fmt.Errorf("unknown config key %q", args[0])
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("  Saved %s to %s\n", key, config.ConfigPath())
	return nil
}
