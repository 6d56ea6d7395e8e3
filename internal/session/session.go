// Package session holds the per-user working state: the day axis, the
// loaded habits, and the sparse entry log the views read from.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/mwhitten/tally/internal/calendar"
	"github.com/mwhitten/tally/internal/entrylog"
	"github.com/mwhitten/tally/internal/models"
	"github.com/mwhitten/tally/internal/remote"
)

// Session is the state shared by the grid, stats, and command surfaces.
// The axis is built once when the session starts and stays fixed until the
// next launch.
type Session struct {
	User         models.User
	Axis         []calendar.Day
	Habits       []models.Habit
	Entries      *entrylog.Store
	SelectedDate string
	StatusMsg    string
}

// New builds a session for the user with the axis ending today.
func New(user models.User) *Session {
	axis := calendar.BuildAxis(time.Now())
	return &Session{
		User:         user,
		Axis:         axis,
		Entries:      entrylog.NewStore(),
		SelectedDate: axis[len(axis)-1].Date,
	}
}

// Load fetches the user's habits and entries through the adapter and
// replaces the in-memory state with them.
func (s *Session) Load(ctx context.Context, adapter remote.Adapter) error {
	habits, err := adapter.FetchHabits(ctx, s.User.ID)
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}

	entries, err := adapter.FetchEntries(ctx, s.User.ID)
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}

	s.Habits = habits
	s.Entries.BulkLoad(entries)
	return nil
}

// HabitByID returns the loaded habit with the given id, or nil.
func (s *Session) HabitByID(id string) *models.Habit {
	for i := range s.Habits {
		if s.Habits[i].ID == id {
			return &s.Habits[i]
		}
	}
	return nil
}

// AddHabit appends a confirmed habit to the loaded list.
func (s *Session) AddHabit(habit models.Habit) {
	s.Habits = append(s.Habits, habit)
}

// RemoveHabit drops the habit and all of its entries from memory.
func (s *Session) RemoveHabit(habitID string) {
	habits := s.Habits[:0]
	for _, h := range s.Habits {
		if h.ID != habitID {
			habits = append(habits, h)
		}
	}
	s.Habits = habits
	s.Entries.RemoveAllForHabit(habitID)
}

// Reset clears all user data, for sign-out.
func (s *Session) Reset() {
	s.User = models.User{}
	s.Habits = nil
	s.Entries = entrylog.NewStore()
	s.StatusMsg = ""
}
