// Package analytics derives streak and completion figures from the day axis
// and the entry log. Every function is pure and recomputed per query; at one
// user's yearly log the scans are cheap enough that no caching is kept.
package analytics

import (
	"math"

	"github.com/mwhitten/tally/internal/calendar"
	"github.com/mwhitten/tally/internal/entrylog"
	"github.com/mwhitten/tally/internal/models"
)

// CurrentStreak counts consecutive done-days ending at the last axis day.
// Zero if the last day is not done.
func CurrentStreak(habitID string, axis []calendar.Day, store *entrylog.Store) int {
	streak := 0
	for i := len(axis) - 1; i >= 0; i-- {
		if !store.Get(habitID, axis[i].Date) {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive done-days anywhere on
// the axis. Single forward pass.
func LongestStreak(habitID string, axis []calendar.Day, store *entrylog.Store) int {
	longest, run := 0, 0
	for _, day := range axis {
		if store.Get(habitID, day.Date) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

// DayCompletionRatio returns done habits divided by total habits for one day.
// Zero habits yields 0, not an error.
func DayCompletionRatio(day calendar.Day, habits []models.Habit, store *entrylog.Store) float64 {
	if len(habits) == 0 {
		return 0
	}
	done := 0
	for _, h := range habits {
		if store.Get(h.ID, day.Date) {
			done++
		}
	}
	return float64(done) / float64(len(habits))
}

// OverallCompletionRate returns total done entries over the full grid
// (|axis| x |habits|) as a rounded percentage. Guarded against zero habits.
func OverallCompletionRate(axis []calendar.Day, habits []models.Habit, store *entrylog.Store) int {
	if len(axis) == 0 {
		return 0
	}
	cells := len(axis) * max(len(habits), 1)
	return int(math.Round(float64(store.CountDone()) / float64(cells) * 100))
}

// BestHabit returns the habit with the maximum longest streak, ties broken by
// position in creation order. Nil when there are no habits.
func BestHabit(habits []models.Habit, axis []calendar.Day, store *entrylog.Store) *models.Habit {
	if len(habits) == 0 {
		return nil
	}
	best := 0
	bestStreak := LongestStreak(habits[0].ID, axis, store)
	for i := 1; i < len(habits); i++ {
		if s := LongestStreak(habits[i].ID, axis, store); s > bestStreak {
			best, bestStreak = i, s
		}
	}
	return &habits[best]
}
