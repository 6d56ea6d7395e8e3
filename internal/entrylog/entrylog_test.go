package entrylog

import (
	"testing"

	"github.com/mwhitten/tally/internal/models"
)

func TestGet_DefaultsToFalse(t *testing.T) {
	s := NewStore()
	if s.Get("h1", "2025-01-01") {
		t.Error("Get() on empty store = true, want false")
	}
}

func TestUpsert_Idempotent(t *testing.T) {
	s := NewStore()
	s.Upsert("h1", "2025-01-01", true)
	s.Upsert("h1", "2025-01-01", true)

	if !s.Get("h1", "2025-01-01") {
		t.Error("Get() after double upsert = false, want true")
	}
	if n := s.CountDone(); n != 1 {
		t.Errorf("CountDone() = %d, want 1", n)
	}
}

func TestUpsert_FalseReadsLikeAbsent(t *testing.T) {
	s := NewStore()
	s.Upsert("h1", "2025-01-01", true)
	s.Upsert("h1", "2025-01-01", false)

	if s.Get("h1", "2025-01-01") {
		t.Error("Get() = true after upserting false")
	}
	if n := s.CountDone(); n != 0 {
		t.Errorf("CountDone() = %d, want 0", n)
	}
}

func TestRemoveAllForHabit(t *testing.T) {
	s := NewStore()
	s.Upsert("h1", "2025-01-01", true)
	s.Upsert("h1", "2025-01-02", true)
	s.Upsert("h2", "2025-01-01", true)

	s.RemoveAllForHabit("h1")

	if s.Get("h1", "2025-01-01") || s.Get("h1", "2025-01-02") {
		t.Error("entries for deleted habit still readable as done")
	}
	if !s.Get("h2", "2025-01-01") {
		t.Error("entries for other habit were removed")
	}
}

func TestBulkLoad_ReplacesContents(t *testing.T) {
	s := NewStore()
	s.Upsert("old", "2025-01-01", true)

	s.BulkLoad([]models.Entry{
		{HabitID: "h1", Day: "2025-02-01", Value: true},
		{HabitID: "h1", Day: "2025-02-02", Value: false},
	})

	if s.Get("old", "2025-01-01") {
		t.Error("BulkLoad() did not replace prior contents")
	}
	if !s.Get("h1", "2025-02-01") {
		t.Error("loaded entry not readable")
	}
	if s.Get("h1", "2025-02-02") {
		t.Error("loaded false entry reads as done")
	}
}
