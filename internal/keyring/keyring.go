package keyring

import (
	"errors"
	"fmt"

	"github.com/mwhitten/tally/internal/constants"
	"github.com/zalando/go-keyring"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func get(account string) (string, error) {
	value, err := keyring.Get(constants.AppName, account)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		// Wrap other keyring errors as unavailable
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

func set(account, value string) error {
	if err := keyring.Set(constants.AppName, account, value); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func del(account string) error {
	if err := keyring.Delete(constants.AppName, account); err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetConnectionString retrieves the database connection string from the OS keyring.
// Returns ErrNotFound if no credentials are stored.
func GetConnectionString() (string, error) {
	return get(constants.KeyringConnectionUser)
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return set(constants.KeyringConnectionUser, connStr)
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	return del(constants.KeyringConnectionUser)
}

// GetSessionUser retrieves the signed-in user's id from the OS keyring.
func GetSessionUser() (string, error) {
	return get(constants.KeyringSessionUser)
}

// SetSessionUser stores the signed-in user's id in the OS keyring so the
// session survives restarts.
func SetSessionUser(userID string) error {
	if userID == "" {
		return errors.New("user id cannot be empty")
	}
	return set(constants.KeyringSessionUser, userID)
}

// DeleteSessionUser clears the stored session.
func DeleteSessionUser() error {
	return del(constants.KeyringSessionUser)
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	// ErrNotFound means the keyring answered, it is just empty
	return err == nil || err == keyring.ErrNotFound
}
