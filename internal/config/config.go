package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all weekwise configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Storage StorageConfig `toml:"storage"`
	Server  ServerConfig  `toml:"server"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	// User is the ledger the CLI and TUI act on.
	User string `toml:"user"`
}

// StorageConfig selects the database file and whether it is encrypted.
type StorageConfig struct {
	Path   string `toml:"path,omitempty"`
	Secure bool   `toml:"secure"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{User: defaultUser()},
		Server:  ServerConfig{Addr: "127.0.0.1:8080"},
	}
}

func defaultUser() string {
	if u := strings.TrimSpace(os.Getenv("USER")); u != "" {
		return u
	}
	return "me"
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "weekwise")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "weekwise")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// GetUser returns the acting user from env var or config, in that order.
func GetUser(cfg Config) string {
	if u := strings.TrimSpace(os.Getenv("WEEKWISE_USER")); u != "" {
		return u
	}
	return cfg.General.User
}

// GetAddr returns the HTTP listen address from env var or config.
func GetAddr(cfg Config) string {
	if a := strings.TrimSpace(os.Getenv("WEEKWISE_ADDR")); a != "" {
		return a
	}
	return cfg.Server.Addr
}
