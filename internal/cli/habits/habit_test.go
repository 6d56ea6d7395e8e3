package habits

import (
	"context"
	"testing"

	"github.com/mwhitten/tally/internal/cli"
	"github.com/mwhitten/tally/internal/models"
)

type stubAdapter struct {
	habits []models.Habit
}

func (s *stubAdapter) FetchHabits(ctx context.Context, userID string) ([]models.Habit, error) {
	return s.habits, nil
}

func (s *stubAdapter) FetchEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	return nil, nil
}

func (s *stubAdapter) UpsertEntry(ctx context.Context, userID, habitID, day string, value bool) (models.Entry, error) {
	return models.Entry{UserID: userID, HabitID: habitID, Day: day, Value: value}, nil
}

func (s *stubAdapter) CreateHabit(ctx context.Context, userID, name string) (models.Habit, error) {
	return models.Habit{ID: "new", UserID: userID, Name: name}, nil
}

func (s *stubAdapter) DeleteHabit(ctx context.Context, userID, habitID string) error {
	return nil
}

func TestFindByName(t *testing.T) {
	ctx := &cli.Context{Adapter: &stubAdapter{habits: []models.Habit{
		{ID: "h1", Name: "Read"},
		{ID: "h2", Name: "Morning Run"},
	}}}

	t.Run("exact match", func(t *testing.T) {
		h, err := FindByName(ctx, "u1", "Read")
		if err != nil {
			t.Fatalf("FindByName failed: %v", err)
		}
		if h.ID != "h1" {
			t.Errorf("expected h1, got %s", h.ID)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		h, err := FindByName(ctx, "u1", "morning run")
		if err != nil {
			t.Fatalf("FindByName failed: %v", err)
		}
		if h.ID != "h2" {
			t.Errorf("expected h2, got %s", h.ID)
		}
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		h, err := FindByName(ctx, "u1", "  Read ")
		if err != nil {
			t.Fatalf("FindByName failed: %v", err)
		}
		if h.ID != "h1" {
			t.Errorf("expected h1, got %s", h.ID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := FindByName(ctx, "u1", "Meditate"); err == nil {
			t.Error("expected an error for an unknown habit")
		}
	})
}
