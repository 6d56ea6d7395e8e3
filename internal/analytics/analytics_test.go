package analytics

import (
	"testing"
	"time"

	"github.com/mwhitten/tally/internal/calendar"
	"github.com/mwhitten/tally/internal/entrylog"
	"github.com/mwhitten/tally/internal/models"
)

func testAxis(t *testing.T, days int) []calendar.Day {
	t.Helper()
	ref := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days-1)
	axis := calendar.BuildAxis(ref)
	if len(axis) != days {
		t.Fatalf("test axis length = %d, want %d", len(axis), days)
	}
	return axis
}

// markRuns marks done-days following run lengths separated by single
// not-done days, starting at the beginning of the axis.
func markRuns(store *entrylog.Store, habitID string, axis []calendar.Day, runs []int) int {
	i := 0
	for ri, run := range runs {
		for j := 0; j < run; j++ {
			store.Upsert(habitID, axis[i].Date, true)
			i++
		}
		if ri < len(runs)-1 {
			i++ // gap day
		}
	}
	return i
}

func TestStreaks_NoEntries(t *testing.T) {
	axis := testAxis(t, 30)
	store := entrylog.NewStore()

	if got := CurrentStreak("h1", axis, store); got != 0 {
		t.Errorf("CurrentStreak() = %d, want 0", got)
	}
	if got := LongestStreak("h1", axis, store); got != 0 {
		t.Errorf("LongestStreak() = %d, want 0", got)
	}
}

func TestStreaks_AllDone(t *testing.T) {
	axis := testAxis(t, 45)
	store := entrylog.NewStore()
	for _, d := range axis {
		store.Upsert("h1", d.Date, true)
	}

	if got := CurrentStreak("h1", axis, store); got != 45 {
		t.Errorf("CurrentStreak() = %d, want 45", got)
	}
	if got := LongestStreak("h1", axis, store); got != 45 {
		t.Errorf("LongestStreak() = %d, want 45", got)
	}
}

func TestStreaks_Runs(t *testing.T) {
	// Runs of 3, 5, 2 separated by single not-done days.
	axis := testAxis(t, 40)
	store := entrylog.NewStore()
	end := markRuns(store, "h1", axis, []int{3, 5, 2})

	if got := LongestStreak("h1", axis, store); got != 5 {
		t.Errorf("LongestStreak() = %d, want 5", got)
	}
	// Axis extends beyond the trailing run, so the current streak is 0.
	if end >= len(axis) {
		t.Fatal("runs filled the whole axis; test setup broken")
	}
	if got := CurrentStreak("h1", axis, store); got != 0 {
		t.Errorf("CurrentStreak() = %d, want 0 (axis ends on a not-done day)", got)
	}
}

func TestCurrentStreak_TrailingRun(t *testing.T) {
	axis := testAxis(t, 20)
	store := entrylog.NewStore()
	// Mark the last 4 days done, with a miss just before.
	for _, d := range axis[len(axis)-4:] {
		store.Upsert("h1", d.Date, true)
	}

	if got := CurrentStreak("h1", axis, store); got != 4 {
		t.Errorf("CurrentStreak() = %d, want 4", got)
	}
}

func TestCurrentStreak_ExplicitFalseBreaks(t *testing.T) {
	axis := testAxis(t, 10)
	store := entrylog.NewStore()
	for _, d := range axis {
		store.Upsert("h1", d.Date, true)
	}
	// A stored false must read exactly like an absent day.
	store.Upsert("h1", axis[len(axis)-3].Date, false)

	if got := CurrentStreak("h1", axis, store); got != 2 {
		t.Errorf("CurrentStreak() = %d, want 2", got)
	}
}

func TestDayCompletionRatio(t *testing.T) {
	axis := testAxis(t, 5)
	store := entrylog.NewStore()
	habits := []models.Habit{{ID: "h1"}, {ID: "h2"}, {ID: "h3"}, {ID: "h4"}}
	store.Upsert("h1", axis[2].Date, true)
	store.Upsert("h3", axis[2].Date, true)

	if got := DayCompletionRatio(axis[2], habits, store); got != 0.5 {
		t.Errorf("DayCompletionRatio() = %v, want 0.5", got)
	}
	if got := DayCompletionRatio(axis[0], habits, store); got != 0 {
		t.Errorf("DayCompletionRatio() on empty day = %v, want 0", got)
	}
}

func TestDayCompletionRatio_NoHabits(t *testing.T) {
	axis := testAxis(t, 5)
	store := entrylog.NewStore()

	if got := DayCompletionRatio(axis[0], nil, store); got != 0 {
		t.Errorf("DayCompletionRatio() with no habits = %v, want 0", got)
	}
}

func TestOverallCompletionRate(t *testing.T) {
	axis := testAxis(t, 10)
	store := entrylog.NewStore()
	habits := []models.Habit{{ID: "h1"}, {ID: "h2"}}
	// 5 done cells out of 20.
	for _, d := range axis[:5] {
		store.Upsert("h1", d.Date, true)
	}

	if got := OverallCompletionRate(axis, habits, store); got != 25 {
		t.Errorf("OverallCompletionRate() = %d, want 25", got)
	}
}

func TestOverallCompletionRate_NoHabits(t *testing.T) {
	axis := testAxis(t, 10)
	store := entrylog.NewStore()

	if got := OverallCompletionRate(axis, nil, store); got != 0 {
		t.Errorf("OverallCompletionRate() with no habits = %d, want 0", got)
	}
}

func TestBestHabit(t *testing.T) {
	axis := testAxis(t, 30)
	store := entrylog.NewStore()
	habits := []models.Habit{{ID: "h1"}, {ID: "h2"}, {ID: "h3"}}

	markRuns(store, "h1", axis, []int{2})
	markRuns(store, "h2", axis, []int{4})
	markRuns(store, "h3", axis, []int{3})

	best := BestHabit(habits, axis, store)
	if best == nil || best.ID != "h2" {
		t.Errorf("BestHabit() = %+v, want h2", best)
	}
}

func TestBestHabit_TieBreaksByCreationOrder(t *testing.T) {
	axis := testAxis(t, 30)
	store := entrylog.NewStore()
	habits := []models.Habit{{ID: "h1"}, {ID: "h2"}}

	markRuns(store, "h1", axis, []int{3})
	markRuns(store, "h2", axis, []int{3})

	best := BestHabit(habits, axis, store)
	if best == nil || best.ID != "h1" {
		t.Errorf("BestHabit() = %+v, want h1 (first created)", best)
	}
}

func TestBestHabit_NoHabits(t *testing.T) {
	axis := testAxis(t, 30)
	store := entrylog.NewStore()

	if best := BestHabit(nil, axis, store); best != nil {
		t.Errorf("BestHabit() with no habits = %+v, want nil", best)
	}
}
