package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwhitten/tally/internal/models"
	"github.com/mwhitten/tally/internal/remote"
)

type sessionLoadedMsg struct {
	habits  []models.Habit
	entries []models.Entry
}

type entryConfirmedMsg struct {
	entry models.Entry
	seq   uint64
}

type entryFailedMsg struct {
	habitID string
	day     string
	seq     uint64
	err     error
}

type habitCreatedMsg struct {
	habit models.Habit
}

type habitDeletedMsg struct {
	habitID string
}

type errMsg struct {
	err error
}

func loadSessionCmd(adapter remote.Adapter, userID string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		habits, err := adapter.FetchHabits(ctx, userID)
		if err != nil {
			return errMsg{err: err}
		}
		entries, err := adapter.FetchEntries(ctx, userID)
		if err != nil {
			return errMsg{err: err}
		}
		return sessionLoadedMsg{habits: habits, entries: entries}
	}
}

func upsertEntryCmd(adapter remote.Adapter, userID string, w pendingWrite, seq uint64) tea.Cmd {
	return func() tea.Msg {
		confirmed, err := adapter.UpsertEntry(context.Background(), userID, w.habitID, w.day, w.value)
		if err != nil {
			return entryFailedMsg{habitID: w.habitID, day: w.day, seq: seq, err: err}
		}
		return entryConfirmedMsg{entry: confirmed, seq: seq}
	}
}

func createHabitCmd(adapter remote.Adapter, userID, name string) tea.Cmd {
	return func() tea.Msg {
		habit, err := adapter.CreateHabit(context.Background(), userID, name)
		if err != nil {
			return errMsg{err: err}
		}
		return habitCreatedMsg{habit: habit}
	}
}

func deleteHabitCmd(adapter remote.Adapter, userID, habitID string) tea.Cmd {
	return func() tea.Msg {
		if err := adapter.DeleteHabit(context.Background(), userID, habitID); err != nil {
			return errMsg{err: err}
		}
		return habitDeletedMsg{habitID: habitID}
	}
}
