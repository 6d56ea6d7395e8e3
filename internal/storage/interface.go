package storage

import (
	"errors"
	"time"

	"github.com/mwhitten/tally/internal/models"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// Provider is the durable source of truth for accounts, habits and entries.
// Implementations exist for SQLite (local) and PostgreSQL (shared).
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	GetConfigPath() string

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Users
	CreateUser(user models.User, salt, passwordHash []byte) error
	GetUser(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	GetCredentials(userID string) (salt, passwordHash []byte, err error)
	UpdatePassword(userID string, salt, passwordHash []byte) error
	SaveResetToken(userID string, tokenHash []byte, expiresAt time.Time) error
	// ConsumeResetToken deletes the token and returns the owning user id.
	// Expired or unknown tokens return ErrNotFound.
	ConsumeResetToken(tokenHash []byte, now time.Time) (string, error)

	// Habits, scoped by user and listed in creation order
	CreateHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitsForUser(userID string) ([]models.Habit, error)
	// DeleteHabit removes the habit and every entry keyed by it.
	DeleteHabit(userID, habitID string) error

	// Entries, keyed on (user_id, habit_id, day) with upsert-on-conflict.
	// UpsertEntry returns the stored row as confirmed by the database.
	UpsertEntry(models.Entry) (models.Entry, error)
	GetEntry(userID, habitID, day string) (models.Entry, error)
	GetEntriesForUser(userID string) ([]models.Entry, error)
}
