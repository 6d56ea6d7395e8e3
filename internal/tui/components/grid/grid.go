// Package grid renders the habit board: one row per habit, one column per
// axis day, windowed horizontally around the selected day. It also maps
// terminal coordinates back to cells so the pointer can paint them.
package grid

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mwhitten/tally/internal/calendar"
	"github.com/mwhitten/tally/internal/entrylog"
	"github.com/mwhitten/tally/internal/models"
)

const (
	// GutterWidth is the habit-name column including its trailing space.
	GutterWidth = 14
	// CellWidth is the rendered width of one day column.
	CellWidth = 2
	// HeaderRows is the number of rows above the first habit row.
	HeaderRows = 1
)

var (
	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("205"))

	monthStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)
)

type Model struct {
	axis   []calendar.Day
	habits []models.Habit
	store  *entrylog.Store

	selRow int
	selCol int // index into axis
	offset int // first visible axis index
	width  int
}

func New(axis []calendar.Day, habits []models.Habit, store *entrylog.Store) Model {
	m := Model{
		axis:   axis,
		habits: habits,
		store:  store,
		selCol: len(axis) - 1,
	}
	m.clampView()
	return m
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.clampView()
}

func (m *Model) SetHabits(habits []models.Habit) {
	m.habits = habits
	if m.selRow >= len(habits) {
		m.selRow = len(habits) - 1
	}
	if m.selRow < 0 {
		m.selRow = 0
	}
}

// MoveSelection shifts the selected cell by rows and columns, clamped to the
// grid bounds.
func (m *Model) MoveSelection(dRow, dCol int) {
	m.selRow = clamp(m.selRow+dRow, 0, len(m.habits)-1)
	m.selCol = clamp(m.selCol+dCol, 0, len(m.axis)-1)
	m.clampView()
}

// SelectDate moves the column selection to the given day if it is on the axis.
func (m *Model) SelectDate(day string) {
	for i, d := range m.axis {
		if d.Date == day {
			m.selCol = i
			m.clampView()
			return
		}
	}
}

func (m Model) SelectedDay() calendar.Day {
	if len(m.axis) == 0 {
		return calendar.Day{}
	}
	return m.axis[m.selCol]
}

func (m Model) SelectedHabit() *models.Habit {
	if m.selRow < 0 || m.selRow >= len(m.habits) {
		return nil
	}
	return &m.habits[m.selRow]
}

// visibleDays returns how many day columns fit beside the gutter.
func (m Model) visibleDays() int {
	if m.width <= GutterWidth+CellWidth {
		return 1
	}
	n := (m.width - GutterWidth) / CellWidth
	if n > len(m.axis) {
		n = len(m.axis)
	}
	return n
}

// clampView scrolls the window so the selected column stays visible.
func (m *Model) clampView() {
	visible := m.visibleDays()
	if m.selCol < m.offset {
		m.offset = m.selCol
	}
	if m.selCol >= m.offset+visible {
		m.offset = m.selCol - visible + 1
	}
	maxOffset := len(m.axis) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	m.offset = clamp(m.offset, 0, maxOffset)
}

// CellAt maps grid-relative coordinates to the habit and day under them.
func (m Model) CellAt(x, y int) (habitID, day string, ok bool) {
	row := y - HeaderRows
	if row < 0 || row >= len(m.habits) {
		return "", "", false
	}
	if x < GutterWidth {
		return "", "", false
	}
	col := m.offset + (x-GutterWidth)/CellWidth
	if col < m.offset+m.visibleDays() && col < len(m.axis) {
		return m.habits[row].ID, m.axis[col].Date, true
	}
	return "", "", false
}

func (m Model) View() string {
	if len(m.habits) == 0 {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}

	visible := m.visibleDays()
	var b strings.Builder

	b.WriteString(m.renderMonthHeader(visible))
	b.WriteString("\n")

	for row, habit := range m.habits {
		b.WriteString(m.renderHabitRow(row, habit, visible))
		if row < len(m.habits)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderMonthHeader labels each month at its first visible column.
func (m Model) renderMonthHeader(visible int) string {
	cells := make([]string, visible)
	for i := range cells {
		cells[i] = strings.Repeat(" ", CellWidth)
	}

	for i := 0; i < visible; i++ {
		col := m.offset + i
		if col >= len(m.axis) {
			break
		}
		day := m.axis[col]
		atWindowStart := i == 0
		atMonthStart := day.DayOfMonth == 1
		if (atMonthStart || atWindowStart) && i+2 <= visible {
			// The three-letter label plus a space spans two columns.
			cells[i] = day.MonthName + " "
			cells[i+1] = ""
			i++
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", GutterWidth))
	for _, c := range cells {
		b.WriteString(monthStyle.Render(c))
	}
	return b.String()
}

func (m Model) renderHabitRow(row int, habit models.Habit, visible int) string {
	var b strings.Builder

	// Width, not bytes: CellAt assumes every day column starts at
	// GutterWidth, so wide runes in a name must not shift the row.
	name := ansi.Truncate(habit.Name, GutterWidth-2, "…")
	style := nameStyle
	if row == m.selRow {
		style = selectedNameStyle
	}
	b.WriteString(style.Render(padRight(name, GutterWidth)))

	for i := 0; i < visible; i++ {
		col := m.offset + i
		if col >= len(m.axis) {
			break
		}
		done := m.store.Get(habit.ID, m.axis[col].Date)
		glyph := "□ "
		cellStyle := emptyStyle
		if done {
			glyph = "■ "
			cellStyle = doneStyle
		}
		if row == m.selRow && col == m.selCol {
			cellStyle = selectedStyle
		}
		b.WriteString(cellStyle.Render(glyph))
	}
	return b.String()
}

func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
