package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	defaultSecretService = "weekwise"
	defaultSecretUser    = "db_key"
)

// ErrKeyNotFound means no database key is stored yet.
var ErrKeyNotFound = errors.New("database key not found")

var (
	keyringGet = keyring.Get
	keyringSet = keyring.Set
)

// LoadDBKey loads the key of the encrypted database.
//
// Order of precedence:
// 1) WEEKWISE_DB_KEY environment variable.
// 2) OS keychain item referenced by service/account.
func LoadDBKey() (string, error) {
	if key := strings.TrimSpace(os.Getenv("WEEKWISE_DB_KEY")); key != "" {
		return key, nil
	}

	key, err := loadFromKeyring()
	if err != nil {
		return "", err
	}
	if key == "" {
		return "", ErrKeyNotFound
	}
	return key, nil
}

// SaveDBKey stores the database key in the system credential store.
func SaveDBKey(key string) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return errors.New("database key cannot be empty")
	}

	service, account := keyringItem()
	if err := keyringSet(service, account, trimmed); err != nil {
		return fmt.Errorf(
			"failed to store keyring item service=%q account=%q: %w",
			service,
			account,
			err,
		)
	}
	return nil
}

func loadFromKeyring() (string, error) {
	service, account := keyringItem()

	secret, err := keyringGet(service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf(
			"failed to read keyring item service=%q account=%q: %w",
			service,
			account,
			err,
		)
	}
	return strings.TrimSpace(secret), nil
}

func keyringItem() (service, account string) {
	return envOrDefault("WEEKWISE_KEYCHAIN_SERVICE", defaultSecretService),
		envOrDefault("WEEKWISE_KEYCHAIN_ACCOUNT", defaultSecretUser)
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
