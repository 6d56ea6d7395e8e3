// Package validation rejects bad input locally, before any store or auth
// call is made.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/mwhitten/tally/internal/constants"
)

// HabitName checks that a habit name is non-empty after trimming.
func HabitName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	return nil
}

// Email performs a light sanity check; the store is the real authority on
// uniqueness.
func Email(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("invalid email address: %s", email)
	}
	return nil
}

// Password checks minimum length and confirmation match.
func Password(password, confirm string) error {
	if len(password) < constants.MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", constants.MinPasswordLen)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}

// Date checks the YYYY-MM-DD boundary format.
func Date(day string) error {
	if _, err := time.Parse(constants.DateFormat, day); err != nil {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	}
	return nil
}
