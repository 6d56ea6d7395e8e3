package remote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitten/tally/internal/models"
	"github.com/mwhitten/tally/internal/storage"
)

// flakyProvider fails the first failCount upserts, then succeeds by echoing
// the entry back as the confirmed row.
type flakyProvider struct {
	storage.Provider
	failCount int
	calls     int
	habits    map[string]models.Habit
}

func (p *flakyProvider) UpsertEntry(entry models.Entry) (models.Entry, error) {
	p.calls++
	if p.calls <= p.failCount {
		return models.Entry{}, errors.New("database is locked")
	}
	return entry, nil
}

func (p *flakyProvider) CreateHabit(habit models.Habit) error {
	if p.habits == nil {
		p.habits = make(map[string]models.Habit)
	}
	p.habits[habit.ID] = habit
	return nil
}

func (p *flakyProvider) GetHabit(id string) (models.Habit, error) {
	h, ok := p.habits[id]
	if !ok {
		return models.Habit{}, storage.ErrNotFound
	}
	return h, nil
}

func newTestAdapter(p storage.Provider) *StoreAdapter {
	a := NewStoreAdapter(p)
	a.backoff = time.Millisecond
	a.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return a
}

func TestUpsertEntry_ReturnsConfirmedRow(t *testing.T) {
	p := &flakyProvider{}
	a := newTestAdapter(p)

	confirmed, err := a.UpsertEntry(context.Background(), "u1", "h1", "2025-06-01", true)
	require.NoError(t, err)

	assert.Equal(t, "u1", confirmed.UserID)
	assert.Equal(t, "h1", confirmed.HabitID)
	assert.Equal(t, "2025-06-01", confirmed.Day)
	assert.True(t, confirmed.Value)
	assert.Equal(t, 1, p.calls)
}

func TestUpsertEntry_RetriesTransientFailures(t *testing.T) {
	p := &flakyProvider{failCount: 2}
	a := newTestAdapter(p)

	confirmed, err := a.UpsertEntry(context.Background(), "u1", "h1", "2025-06-01", false)
	require.NoError(t, err)

	assert.False(t, confirmed.Value)
	assert.Equal(t, 3, p.calls)
}

func TestUpsertEntry_GivesUpAfterMaxRetries(t *testing.T) {
	p := &flakyProvider{failCount: 100}
	a := newTestAdapter(p)

	_, err := a.UpsertEntry(context.Background(), "u1", "h1", "2025-06-01", true)
	require.Error(t, err)

	// initial attempt plus the bounded retries
	assert.Equal(t, 4, p.calls)
}

func TestCreateHabit_ReturnsStoredRow(t *testing.T) {
	p := &flakyProvider{}
	a := newTestAdapter(p)

	habit, err := a.CreateHabit(context.Background(), "u1", "meditate")
	require.NoError(t, err)

	assert.NotEmpty(t, habit.ID)
	assert.Equal(t, "u1", habit.UserID)
	assert.Equal(t, "meditate", habit.Name)
}
