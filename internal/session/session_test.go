package session

import (
	"context"
	"testing"
	"time"

	"github.com/mwhitten/tally/internal/constants"
	"github.com/mwhitten/tally/internal/models"
)

type stubAdapter struct {
	habits  []models.Habit
	entries []models.Entry
}

func (a *stubAdapter) FetchHabits(ctx context.Context, userID string) ([]models.Habit, error) {
	return a.habits, nil
}

func (a *stubAdapter) FetchEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	return a.entries, nil
}

func (a *stubAdapter) UpsertEntry(ctx context.Context, userID, habitID, day string, value bool) (models.Entry, error) {
	return models.Entry{UserID: userID, HabitID: habitID, Day: day, Value: value}, nil
}

func (a *stubAdapter) CreateHabit(ctx context.Context, userID, name string) (models.Habit, error) {
	return models.Habit{ID: "new", UserID: userID, Name: name}, nil
}

func (a *stubAdapter) DeleteHabit(ctx context.Context, userID, habitID string) error {
	return nil
}

func TestNew_SelectsToday(t *testing.T) {
	s := New(models.User{ID: "u1"})

	if len(s.Axis) == 0 {
		t.Fatal("New() produced an empty axis")
	}
	today := time.Now().Format(constants.DateFormat)
	if s.SelectedDate != today {
		t.Errorf("SelectedDate = %s, want %s", s.SelectedDate, today)
	}
	if s.Axis[len(s.Axis)-1].Date != today {
		t.Errorf("last axis day = %s, want %s", s.Axis[len(s.Axis)-1].Date, today)
	}
}

func TestLoad_ReplacesState(t *testing.T) {
	s := New(models.User{ID: "u1"})
	s.Entries.Upsert("stale", "2025-01-01", true)

	adapter := &stubAdapter{
		habits: []models.Habit{{ID: "h1", UserID: "u1", Name: "read"}},
		entries: []models.Entry{
			{UserID: "u1", HabitID: "h1", Day: "2025-01-02", Value: true},
		},
	}
	if err := s.Load(context.Background(), adapter); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(s.Habits) != 1 || s.Habits[0].Name != "read" {
		t.Errorf("Habits = %+v, want the fetched habit", s.Habits)
	}
	if s.Entries.Get("stale", "2025-01-01") {
		t.Error("stale entry survived Load()")
	}
	if !s.Entries.Get("h1", "2025-01-02") {
		t.Error("fetched entry missing after Load()")
	}
}

func TestRemoveHabit_DropsEntries(t *testing.T) {
	s := New(models.User{ID: "u1"})
	s.Habits = []models.Habit{{ID: "h1"}, {ID: "h2"}}
	s.Entries.Upsert("h1", "2025-01-01", true)
	s.Entries.Upsert("h2", "2025-01-01", true)

	s.RemoveHabit("h1")

	if len(s.Habits) != 1 || s.Habits[0].ID != "h2" {
		t.Errorf("Habits = %+v, want only h2", s.Habits)
	}
	if s.Entries.Get("h1", "2025-01-01") {
		t.Error("h1 entry survived RemoveHabit()")
	}
	if !s.Entries.Get("h2", "2025-01-01") {
		t.Error("h2 entry was dropped by RemoveHabit(h1)")
	}
}

func TestHabitByID(t *testing.T) {
	s := New(models.User{ID: "u1"})
	s.Habits = []models.Habit{{ID: "h1", Name: "read"}}

	if got := s.HabitByID("h1"); got == nil || got.Name != "read" {
		t.Errorf("HabitByID(h1) = %+v, want the read habit", got)
	}
	if got := s.HabitByID("missing"); got != nil {
		t.Errorf("HabitByID(missing) = %+v, want nil", got)
	}
}

func TestReset(t *testing.T) {
	s := New(models.User{ID: "u1"})
	s.Habits = []models.Habit{{ID: "h1"}}
	s.Entries.Upsert("h1", "2025-01-01", true)
	s.StatusMsg = "saved"

	s.Reset()

	if s.User.ID != "" || s.Habits != nil || s.StatusMsg != "" {
		t.Errorf("Reset() left user data behind: %+v", s)
	}
	if s.Entries.Get("h1", "2025-01-01") {
		t.Error("Reset() left entries behind")
	}
}
