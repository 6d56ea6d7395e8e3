package calendar

import (
	"testing"
	"time"

	"github.com/mwhitten/tally/internal/constants"
)

func TestBuildAxis_Bounds(t *testing.T) {
	refs := []time.Time{
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 9, 15, 4, 5, 0, time.UTC),
		time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), // leap year, full span
		time.Date(2025, time.July, 4, 23, 59, 59, 0, time.UTC),
	}

	for _, ref := range refs {
		t.Run(ref.Format(constants.DateFormat), func(t *testing.T) {
			axis := BuildAxis(ref)
			if len(axis) == 0 {
				t.Fatal("BuildAxis() returned empty axis")
			}

			wantFirst := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, time.UTC).Format(constants.DateFormat)
			if axis[0].Date != wantFirst {
				t.Errorf("first day = %s, want %s", axis[0].Date, wantFirst)
			}
			if last := axis[len(axis)-1].Date; last != ref.Format(constants.DateFormat) {
				t.Errorf("last day = %s, want %s", last, ref.Format(constants.DateFormat))
			}
		})
	}
}

func TestBuildAxis_ConsecutiveDays(t *testing.T) {
	ref := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	axis := BuildAxis(ref)

	prev, err := time.Parse(constants.DateFormat, axis[0].Date)
	if err != nil {
		t.Fatalf("failed to parse first day: %v", err)
	}
	for _, day := range axis[1:] {
		cur, err := time.Parse(constants.DateFormat, day.Date)
		if err != nil {
			t.Fatalf("failed to parse day %s: %v", day.Date, err)
		}
		if cur.Sub(prev) != 24*time.Hour {
			t.Errorf("gap between %s and %s is not one day", prev.Format(constants.DateFormat), day.Date)
		}
		prev = cur
	}
}

func TestBuildAxis_LeapYearLength(t *testing.T) {
	ref := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	axis := BuildAxis(ref)
	if len(axis) != 366 {
		t.Errorf("leap year axis length = %d, want 366", len(axis))
	}
}

func TestBuildAxis_JanFirst(t *testing.T) {
	ref := time.Date(2025, time.January, 1, 8, 30, 0, 0, time.UTC)
	axis := BuildAxis(ref)
	if len(axis) != 1 {
		t.Fatalf("axis length = %d, want 1", len(axis))
	}

	day := axis[0]
	if day.Date != "2025-01-01" {
		t.Errorf("date = %s, want 2025-01-01", day.Date)
	}
	// 2025-01-01 is a Wednesday
	if day.Weekday != 2 {
		t.Errorf("weekday = %d, want 2 (Wednesday, Monday-indexed)", day.Weekday)
	}
	if day.Month != 0 {
		t.Errorf("month index = %d, want 0", day.Month)
	}
	if day.MonthName != "Jan" {
		t.Errorf("month name = %s, want Jan", day.MonthName)
	}
	if day.DayOfMonth != 1 {
		t.Errorf("day of month = %d, want 1", day.DayOfMonth)
	}
}

func TestBuildAxis_Deterministic(t *testing.T) {
	ref := time.Date(2025, time.August, 27, 0, 0, 0, 0, time.UTC)
	a := BuildAxis(ref)
	b := BuildAxis(ref)
	if len(a) != len(b) {
		t.Fatalf("axis lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("axis[%d] differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
