package storage

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/lachiem1/weekwise/internal/auth"
)

type Mode string

const (
	ModePlain  Mode = "plain"
	ModeSecure Mode = "secure"
)

const schemaVersion = 3

var errSecureUnsupported = errors.New(
	"secure mode requires a sqlcipher-enabled build; rebuild with '-tags sqlcipher'",
)

type Config struct {
	Mode Mode
	Path string
}

// ResolveConfig picks the database location. WEEKWISE_DB_PATH wins over the
// configured path, which wins over the per-user config directory.
func ResolveConfig(path string, secure bool) (Config, error) {
	mode := ModePlain
	if secure {
		mode = ModeSecure
	}

	if dbPath := strings.TrimSpace(os.Getenv("WEEKWISE_DB_PATH")); dbPath != "" {
		return Config{Mode: mode, Path: dbPath}, nil
	}
	if p := strings.TrimSpace(path); p != "" {
		return Config{Mode: mode, Path: p}, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve user config directory: %w", err)
	}
	return Config{
		Mode: mode,
		Path: filepath.Join(configDir, "weekwise", "weekwise.db"),
	}, nil
}

// Open opens the database described by cfg and brings its schema up to date.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	var (
		db  *sql.DB
		err error
	)
	switch cfg.Mode {
	case ModeSecure:
		db, err = openSecure(cfg.Path)
	case ModePlain, "":
		db, err = openPlainSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage mode %q", cfg.Mode)
	}
	if err != nil {
		return nil, err
	}

	// One connection serializes writers; InTx holds it for the whole transaction.
	db.SetMaxOpenConns(1)

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func openPlainSQLite(path string) (*sql.DB, error) {
	dsn := path + "?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	return db, nil
}

func openSecure(path string) (*sql.DB, error) {
	if !secureSQLiteSupported() {
		return nil, errSecureUnsupported
	}

	key, created, err := ensureDBKey()
	if err != nil {
		return nil, fmt.Errorf("ensure secure db key: %w", err)
	}
	if created {
		exists, err := hasLocalDBFiles(path)
		if err != nil {
			return nil, fmt.Errorf("inspect db files: %w", err)
		}
		if exists {
			return nil, fmt.Errorf(
				"database %s was encrypted with a key that is no longer in the keychain; "+
					"import it with 'weekwise key import' or remove the file with 'weekwise key wipe'",
				path,
			)
		}
	}
	return openSecureSQLite(path, key)
}

// Wipe removes the local database files for cfg.
func Wipe(cfg Config) error {
	if err := resetLocalDBFiles(cfg.Path); err != nil {
		return fmt.Errorf("wipe local db files: %w", err)
	}
	return nil
}

func ensureDBKey() (key string, created bool, err error) {
	key, err = auth.LoadDBKey()
	if err == nil {
		return key, false, nil
	}
	if !errors.Is(err, auth.ErrKeyNotFound) {
		return "", false, err
	}

	newKey, err := generateRandomKey()
	if err != nil {
		return "", false, err
	}
	if err := auth.SaveDBKey(newKey); err != nil {
		return "", false, err
	}
	return newKey, true, nil
}

func generateRandomKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return base64.RawStdEncoding.EncodeToString(buf), nil
}

func hasLocalDBFiles(path string) (bool, error) {
	for _, p := range localDBFiles(path) {
		_, err := os.Stat(p)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return false, err
		}
	}
	return false, nil
}

func resetLocalDBFiles(path string) error {
	for _, p := range localDBFiles(path) {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

func localDBFiles(path string) []string {
	return []string{
		path,
		path + "-wal",
		path + "-shm",
	}
}
