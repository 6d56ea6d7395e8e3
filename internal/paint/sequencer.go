package paint

import (
	"github.com/mwhitten/tally/internal/entrylog"
	"github.com/mwhitten/tally/internal/models"
)

// Sequencer serializes remote confirmations per natural key. Each local write
// takes a sequence number; a confirmation or failure arriving for anything
// but the latest write of its key is dropped, so an out-of-order round trip
// can never clobber a newer local value with a stale confirmed row.
type Sequencer struct {
	latest    map[entrylog.Key]uint64
	confirmed map[entrylog.Key]bool // last server-confirmed value per key
}

func NewSequencer() *Sequencer {
	return &Sequencer{
		latest:    make(map[entrylog.Key]uint64),
		confirmed: make(map[entrylog.Key]bool),
	}
}

// Baseline records server state after a bulk fetch, so failed writes can roll
// back to what the server last confirmed.
func (s *Sequencer) Baseline(entries []models.Entry) {
	s.latest = make(map[entrylog.Key]uint64)
	s.confirmed = make(map[entrylog.Key]bool, len(entries))
	for _, e := range entries {
		s.confirmed[entrylog.Key{HabitID: e.HabitID, Day: e.Day}] = e.Value
	}
}

// Next registers a new local write for the key and returns its sequence
// number.
func (s *Sequencer) Next(habitID, day string) uint64 {
	k := entrylog.Key{HabitID: habitID, Day: day}
	s.latest[k]++
	return s.latest[k]
}

// Confirm records a server-confirmed value. Returns false when the
// confirmation belongs to a superseded write and must be ignored.
func (s *Sequencer) Confirm(habitID, day string, seq uint64, value bool) bool {
	k := entrylog.Key{HabitID: habitID, Day: day}
	if seq < s.latest[k] {
		return false
	}
	s.confirmed[k] = value
	return true
}

// Fail reports a permanently failed write. When the failed write is still the
// latest for its key the cell rolls back to the last confirmed value;
// superseded failures are ignored.
func (s *Sequencer) Fail(habitID, day string, seq uint64) (rollback, lastConfirmed bool) {
	k := entrylog.Key{HabitID: habitID, Day: day}
	if seq < s.latest[k] {
		return false, false
	}
	return true, s.confirmed[k]
}

// DropHabit forgets all state for a deleted habit.
func (s *Sequencer) DropHabit(habitID string) {
	for k := range s.latest {
		if k.HabitID == habitID {
			delete(s.latest, k)
		}
	}
	for k := range s.confirmed {
		if k.HabitID == habitID {
			delete(s.confirmed, k)
		}
	}
}
