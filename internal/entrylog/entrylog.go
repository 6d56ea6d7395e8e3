// Package entrylog holds the in-memory sparse log of habit completions. It is
// a write-through cache of the remote store: only logged days are kept, and a
// missing entry always reads as not-done.
package entrylog

import "github.com/mwhitten/tally/internal/models"

// Key is the natural identity of an entry within one user's session.
type Key struct {
	HabitID string
	Day     string
}

// Store is a sparse map of (habit, day) to the latest known value. All
// operations are total; there are no error states. Not safe for concurrent
// use — mutation happens only on the single event loop.
type Store struct {
	entries map[Key]bool
}

func NewStore() *Store {
	return &Store{entries: make(map[Key]bool)}
}

// Get returns the stored value, or false if no entry exists. An entry stored
// with value=false is indistinguishable from an absent one.
func (s *Store) Get(habitID, day string) bool {
	return s.entries[Key{HabitID: habitID, Day: day}]
}

// Upsert replaces or inserts the entry for the natural key. Idempotent.
func (s *Store) Upsert(habitID, day string, value bool) {
	s.entries[Key{HabitID: habitID, Day: day}] = value
}

// RemoveAllForHabit drops every entry for the habit. Used on habit deletion.
func (s *Store) RemoveAllForHabit(habitID string) {
	for k := range s.entries {
		if k.HabitID == habitID {
			delete(s.entries, k)
		}
	}
}

// BulkLoad replaces the store contents with the given entries. Used on the
// initial fetch from the remote store.
func (s *Store) BulkLoad(entries []models.Entry) {
	s.entries = make(map[Key]bool, len(entries))
	for _, e := range entries {
		s.entries[Key{HabitID: e.HabitID, Day: e.Day}] = e.Value
	}
}

// CountDone returns the number of entries currently true.
func (s *Store) CountDone() int {
	n := 0
	for _, v := range s.entries {
		if v {
			n++
		}
	}
	return n
}
