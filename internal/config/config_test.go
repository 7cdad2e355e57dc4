package config

import (
	"path/filepath"
	"testing"
)

func TestLoadReturnsDefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("USER", "ana")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.General.User != "ana" {
		t.Fatalf("General.User = %q, want %q", cfg.General.User, "ana")
	}
	if cfg.Server.Addr != "127.0.0.1:8080" {
		t.Fatalf("Server.Addr = %q, want %q", cfg.Server.Addr, "127.0.0.1:8080")
	}
	if Exists() {
		t.Fatal("Exists() = true, want false")
	}
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := DefaultConfig()
	cfg.General.User = "ben"
	cfg.Storage = StorageConfig{Path: "/srv/weekwise.db", Secure: true}
	cfg.Server.Addr = ":9090"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	if want := filepath.Join(dir, "weekwise", "config.toml"); ConfigPath() != want {
		t.Fatalf("ConfigPath() = %q, want %q", ConfigPath(), want)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if got != cfg {
		t.Fatalf("Load() = %+v, want %+v", got, cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WEEKWISE_USER", "carla")
	t.Setenv("WEEKWISE_ADDR", ":7000")

	cfg := DefaultConfig()
	if got := GetUser(cfg); got != "carla" {
		t.Fatalf("GetUser() = %q, want %q", got, "carla")
	}
	if got := GetAddr(cfg); got != ":7000" {
		t.Fatalf("GetAddr() = %q, want %q", got, ":7000")
	}
}
