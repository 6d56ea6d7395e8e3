// Package calendar builds the day axis the grid and analytics run over: every
// calendar day from January 1 of the reference year through the reference day.
package calendar

import (
	"time"

	"github.com/mwhitten/tally/internal/constants"
)

// Day is one cell column on the axis. Immutable once generated.
type Day struct {
	Date       string // YYYY-MM-DD
	Label      string // e.g. "Jan 2"
	Weekday    int    // 0=Monday .. 6=Sunday
	DayOfMonth int
	Month      int    // 0=January .. 11=December
	MonthName  string // e.g. "Jan"
}

// BuildAxis returns every day from January 1 of ref's year through ref,
// inclusive and in order. The result is deterministic for a fixed ref and
// always holds at least one day.
func BuildAxis(ref time.Time) []Day {
	ref = time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	start := time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())

	var axis []Day
	for d := start; !d.After(ref); d = d.AddDate(0, 0, 1) {
		axis = append(axis, Day{
			Date:       d.Format(constants.DateFormat),
			Label:      d.Format("Jan 2"),
			Weekday:    mondayIndexed(d.Weekday()),
			DayOfMonth: d.Day(),
			Month:      int(d.Month()) - 1,
			MonthName:  d.Format("Jan"),
		})
	}
	return axis
}

// mondayIndexed converts Go's Sunday-based weekday to a Monday-based index.
func mondayIndexed(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
