// Package remote mediates between the in-memory entry log and the backing
// store. Every write goes through an Adapter and only the confirmed row it
// returns is authoritative.
package remote

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/mwhitten/tally/internal/constants"
	"github.com/mwhitten/tally/internal/logger"
	"github.com/mwhitten/tally/internal/models"
	"github.com/mwhitten/tally/internal/storage"
)

// Adapter is the write/read boundary for habit data. Implementations must
// make UpsertEntry idempotent on (user, habit, day).
type Adapter interface {
	FetchHabits(ctx context.Context, userID string) ([]models.Habit, error)
	FetchEntries(ctx context.Context, userID string) ([]models.Entry, error)
	UpsertEntry(ctx context.Context, userID, habitID, day string, value bool) (models.Entry, error)
	CreateHabit(ctx context.Context, userID, name string) (models.Habit, error)
	DeleteHabit(ctx context.Context, userID, habitID string) error
}

// StoreAdapter serves habit data from a storage provider, retrying transient
// write failures with fibonacci backoff before reporting them to the caller.
type StoreAdapter struct {
	provider storage.Provider
	backoff  time.Duration
	now      func() time.Time
}

func NewStoreAdapter(provider storage.Provider) *StoreAdapter {
	return &StoreAdapter{
		provider: provider,
		backoff:  100 * time.Millisecond,
		now:      time.Now,
	}
}

func (a *StoreAdapter) FetchHabits(ctx context.Context, userID string) ([]models.Habit, error) {
	return a.provider.GetHabitsForUser(userID)
}

func (a *StoreAdapter) FetchEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	return a.provider.GetEntriesForUser(userID)
}

func (a *StoreAdapter) UpsertEntry(ctx context.Context, userID, habitID, day string, value bool) (models.Entry, error) {
	entry := models.Entry{
		UserID:    userID,
		HabitID:   habitID,
		Day:       day,
		Value:     value,
		UpdatedAt: a.now().UTC(),
	}

	var confirmed models.Entry
	b := retry.WithMaxRetries(constants.UpsertMaxRetries, retry.NewFibonacci(a.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		var err error
		confirmed, err = a.provider.UpsertEntry(entry)
		if err != nil {
			logger.Warn("Entry upsert failed, retrying", "habit", habitID, "day", day, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return models.Entry{}, err
	}
	return confirmed, nil
}

func (a *StoreAdapter) CreateHabit(ctx context.Context, userID, name string) (models.Habit, error) {
	habit := models.Habit{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: a.now().UTC(),
	}
	if err := a.provider.CreateHabit(habit); err != nil {
		return models.Habit{}, err
	}
	return a.provider.GetHabit(habit.ID)
}

func (a *StoreAdapter) DeleteHabit(ctx context.Context, userID, habitID string) error {
	return a.provider.DeleteHabit(userID, habitID)
}
