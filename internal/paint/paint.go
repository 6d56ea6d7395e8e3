// Package paint coordinates the batch-edit gesture: a press on a day cell
// starts a gesture that paints one fixed value across every cell the pointer
// crosses, ending on release anywhere on the interaction surface. Each painted
// cell is applied to the entry log immediately and mirrored to the remote
// store through the apply callback without waiting for confirmation.
package paint

import "github.com/mwhitten/tally/internal/entrylog"

// ApplyFunc mirrors a painted cell to the remote store.
type ApplyFunc func(habitID, day string, value bool)

// Controller is the gesture state machine. Two states: idle and dragging with
// a fixed target value. The owner routes press/enter/release input to it for
// the controller's lifetime and tears the routing down with the session.
type Controller struct {
	store *entrylog.Store
	apply ApplyFunc

	dragging bool
	target   bool
	habitID  string
	painted  map[string]bool // days already painted this gesture
}

func NewController(store *entrylog.Store, apply ApplyFunc) *Controller {
	return &Controller{store: store, apply: apply}
}

// Press starts a gesture on a day cell. The target value for the whole
// gesture is the negation of the cell's value at gesture start, and the
// starting cell is painted immediately.
func (c *Controller) Press(habitID, day string) {
	c.dragging = true
	c.habitID = habitID
	c.target = !c.store.Get(habitID, day)
	c.painted = map[string]bool{day: true}

	c.store.Upsert(habitID, day, c.target)
	c.apply(habitID, day, c.target)
}

// Enter paints a cell the pointer crossed mid-gesture. Cells on other habit
// rows are ignored; re-crossing a cell is a no-op.
func (c *Controller) Enter(habitID, day string) {
	if !c.dragging || habitID != c.habitID || c.painted[day] {
		return
	}
	c.painted[day] = true

	c.store.Upsert(habitID, day, c.target)
	c.apply(habitID, day, c.target)
}

// Release ends the gesture wherever it happens. A bare press+release pair
// acts as a single-cell toggle.
func (c *Controller) Release() {
	c.dragging = false
	c.habitID = ""
	c.painted = nil
}

// Dragging reports whether a gesture is in flight.
func (c *Controller) Dragging() bool { return c.dragging }

// Target returns the value being painted by the current gesture.
func (c *Controller) Target() bool { return c.target }
