package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mwhitten/tally/internal/export"
	"github.com/mwhitten/tally/internal/logger"
	"github.com/mwhitten/tally/internal/session"
	"github.com/mwhitten/tally/internal/validation"
)

// chromeRows is the vertical space taken by the title, status, and help
// lines around the grid.
const chromeRows = 3

// gridOriginY is the screen row of the grid's first line.
const gridOriginY = 1

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.sess != nil {
			m.grid.SetSize(msg.Width, msg.Height-chromeRows)
		}
		return m, nil

	case sessionLoadedMsg:
		m.sess.Habits = msg.habits
		m.sess.Entries.BulkLoad(msg.entries)
		m.seq.Baseline(msg.entries)
		m.grid.SetHabits(msg.habits)
		return m, nil

	case entryConfirmedMsg:
		// A confirmation for a superseded write is dropped; applying it
		// would clobber the newer local value.
		if m.seq.Confirm(msg.entry.HabitID, msg.entry.Day, msg.seq, msg.entry.Value) {
			m.sess.Entries.Upsert(msg.entry.HabitID, msg.entry.Day, msg.entry.Value)
		}
		return m, nil

	case entryFailedMsg:
		if rollback, last := m.seq.Fail(msg.habitID, msg.day, msg.seq); rollback {
			logger.Error("Entry write failed", "habit", msg.habitID, "day", msg.day, "error", msg.err)
			m.sess.Entries.Upsert(msg.habitID, msg.day, last)
			m.statusMsg = fmt.Sprintf("Failed to save %s: %v, change reverted", msg.day, msg.err)
		}
		return m, nil

	case habitCreatedMsg:
		m.sess.AddHabit(msg.habit)
		m.grid.SetHabits(m.sess.Habits)
		m.statusMsg = fmt.Sprintf("Added habit %q", msg.habit.Name)
		return m, nil

	case habitDeletedMsg:
		habit := m.sess.HabitByID(msg.habitID)
		name := msg.habitID
		if habit != nil {
			name = habit.Name
		}
		m.sess.RemoveHabit(msg.habitID)
		m.seq.DropHabit(msg.habitID)
		m.grid.SetHabits(m.sess.Habits)
		m.statusMsg = fmt.Sprintf("Deleted habit %q", name)
		return m, nil

	case errMsg:
		m.statusMsg = msg.err.Error()
		return m, nil
	}

	switch m.state {
	case StateSignIn:
		return m.updateSignIn(msg)
	case StateSignUp:
		return m.updateSignUp(msg)
	case StateAddHabit:
		return m.updateAddHabit(msg)
	case StateChangePassword:
		return m.updateChangePassword(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	case StateStats:
		return m.updateStats(msg)
	case StateGrid:
		return m.updateGrid(msg)
	}
	return m, nil
}

func (m Model) updateGrid(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up):
			m.grid.MoveSelection(-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.grid.MoveSelection(1, 0)
		case key.Matches(msg, m.keys.Left):
			m.grid.MoveSelection(0, -1)
		case key.Matches(msg, m.keys.Right):
			m.grid.MoveSelection(0, 1)
		case key.Matches(msg, m.keys.Toggle):
			// Keyboard toggle is a degenerate gesture: press and
			// release on the same cell.
			if habit := m.grid.SelectedHabit(); habit != nil {
				m.controller.Press(habit.ID, m.grid.SelectedDay().Date)
				m.controller.Release()
				m.sess.SelectedDate = m.grid.SelectedDay().Date
				return m, m.flushPaints()
			}
		case key.Matches(msg, m.keys.Add):
			m.state = StateAddHabit
			m.form = m.newHabitForm()
			return m, m.form.Init()
		case key.Matches(msg, m.keys.Delete):
			if habit := m.grid.SelectedHabit(); habit != nil {
				m.habitToDeleteID = habit.ID
				m.state = StateConfirmDelete
			}
		case key.Matches(msg, m.keys.Stats):
			m.state = StateStats
		case key.Matches(msg, m.keys.Export):
			return m.exportGrid()
		case key.Matches(msg, m.keys.Password):
			m.state = StateChangePassword
			m.form = m.newPasswordForm()
			return m, m.form.Init()
		case key.Matches(msg, m.keys.SignOut):
			return m.signOut()
		}
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if habitID, day, ok := m.grid.CellAt(msg.X, msg.Y-gridOriginY); ok {
			m.controller.Press(habitID, day)
			m.grid.SelectDate(day)
			m.sess.SelectedDate = day
			return m, m.flushPaints()
		}

	case tea.MouseActionMotion:
		if !m.controller.Dragging() {
			return m, nil
		}
		if habitID, day, ok := m.grid.CellAt(msg.X, msg.Y-gridOriginY); ok {
			m.controller.Enter(habitID, day)
			return m, m.flushPaints()
		}

	case tea.MouseActionRelease:
		// The gesture ends wherever the button comes up, on or off the
		// grid.
		m.controller.Release()
	}
	return m, nil
}

// flushPaints turns every cell painted since the last flush into a store
// write carrying a fresh sequence number.
func (m *Model) flushPaints() tea.Cmd {
	writes := m.pending.drain()
	if len(writes) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(writes))
	for _, w := range writes {
		seq := m.seq.Next(w.habitID, w.day)
		cmds = append(cmds, upsertEntryCmd(m.adapter, m.sess.User.ID, w, seq))
	}
	return tea.Batch(cmds...)
}

func (m Model) updateSignIn(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "ctrl+n":
			m.state = StateSignUp
			m.form = m.newSignUpForm()
			return m, m.form.Init()
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		user, err := m.auth.SignInWithPassword(m.signInForm.Email, m.signInForm.Password)
		if err != nil {
			m.statusMsg = err.Error()
			m.form = m.newSignInForm()
			return m, m.form.Init()
		}
		m.statusMsg = ""
		m.startSession(session.New(user))
		m.state = StateGrid
		return m, loadSessionCmd(m.adapter, user.ID)
	}
	return m, cmd
}

func (m Model) updateSignUp(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			m.state = StateSignIn
			m.form = m.newSignInForm()
			return m, m.form.Init()
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		user, err := m.auth.SignUp(m.signUpForm.Email, m.signUpForm.Password, m.signUpForm.Confirm)
		if err != nil {
			m.statusMsg = err.Error()
			m.form = m.newSignUpForm()
			return m, m.form.Init()
		}
		m.statusMsg = ""
		m.startSession(session.New(user))
		m.state = StateGrid
		return m, loadSessionCmd(m.adapter, user.ID)
	}
	return m, cmd
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateGrid
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := validation.HabitName(m.habitForm.Name); err != nil {
			m.statusMsg = err.Error()
			m.state = StateGrid
			return m, nil
		}
		m.state = StateGrid
		return m, createHabitCmd(m.adapter, m.sess.User.ID, m.habitForm.Name)
	case huh.StateAborted:
		m.state = StateGrid
	}
	return m, cmd
}

func (m Model) updateChangePassword(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateGrid
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.auth.UpdatePassword(m.passwordForm.Current, m.passwordForm.Next, m.passwordForm.Confirm); err != nil {
			m.statusMsg = err.Error()
		} else {
			m.statusMsg = "Password updated"
		}
		m.state = StateGrid
	case huh.StateAborted:
		m.state = StateGrid
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y":
			habitID := m.habitToDeleteID
			m.habitToDeleteID = ""
			m.state = StateGrid
			return m, deleteHabitCmd(m.adapter, m.sess.User.ID, habitID)
		case "n", "N", "esc":
			m.habitToDeleteID = ""
			m.state = StateGrid
		}
	}
	return m, nil
}

func (m Model) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Stats):
			m.state = StateGrid
		}
	}
	return m, nil
}

func (m Model) exportGrid() (tea.Model, tea.Cmd) {
	settings, err := m.store.GetSettings()
	if err != nil {
		m.statusMsg = fmt.Sprintf("Export failed: %v", err)
		return m, nil
	}
	dir := settings.ExportDir
	if dir == "" {
		dir = filepath.Join(filepath.Dir(m.store.GetConfigPath()), "exports")
	}

	path, err := export.WriteGrid(dir, m.grid.View(), time.Now())
	if err != nil {
		m.statusMsg = fmt.Sprintf("Export failed: %v", err)
		return m, nil
	}
	m.statusMsg = "Exported to " + path
	return m, nil
}

func (m Model) signOut() (tea.Model, tea.Cmd) {
	if err := m.auth.SignOut(); err != nil {
		m.statusMsg = err.Error()
		return m, nil
	}
	m.sess.Reset()
	m.sess = nil
	m.statusMsg = ""
	m.state = StateSignIn
	m.form = m.newSignInForm()
	return m, m.form.Init()
}
