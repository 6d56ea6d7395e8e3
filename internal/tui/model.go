package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/mwhitten/tally/internal/auth"
	"github.com/mwhitten/tally/internal/constants"
	"github.com/mwhitten/tally/internal/paint"
	"github.com/mwhitten/tally/internal/remote"
	"github.com/mwhitten/tally/internal/session"
	"github.com/mwhitten/tally/internal/storage"
	"github.com/mwhitten/tally/internal/tui/components/grid"
)

type SessionState = constants.SessionState

const (
	StateSignIn         = constants.StateSignIn
	StateSignUp         = constants.StateSignUp
	StateGrid           = constants.StateGrid
	StateStats          = constants.StateStats
	StateAddHabit       = constants.StateAddHabit
	StateConfirmDelete  = constants.StateConfirmDelete
	StateChangePassword = constants.StateChangePassword
)

type SignInFormModel struct {
	Email    string
	Password string
}

type SignUpFormModel struct {
	Email    string
	Password string
	Confirm  string
}

type HabitFormModel struct {
	Name string
}

type PasswordFormModel struct {
	Current string
	Next    string
	Confirm string
}

// pendingWrite is a painted cell waiting to be mirrored to the store.
type pendingWrite struct {
	habitID string
	day     string
	value   bool
}

// pendingQueue collects paint callbacks behind a pointer, so the gesture
// controller's closure and every copy of the model see the same writes.
type pendingQueue struct {
	writes []pendingWrite
}

func (q *pendingQueue) drain() []pendingWrite {
	writes := q.writes
	q.writes = nil
	return writes
}

type Model struct {
	store   storage.Provider
	adapter remote.Adapter
	auth    *auth.Service
	sess    *session.Session

	state      SessionState
	keys       KeyMap
	help       help.Model
	grid       grid.Model
	controller *paint.Controller
	seq        *paint.Sequencer

	form         *huh.Form
	signInForm   *SignInFormModel
	signUpForm   *SignUpFormModel
	habitForm    *HabitFormModel
	passwordForm *PasswordFormModel

	habitToDeleteID string
	pending         *pendingQueue
	statusMsg       string
	width           int
	height          int
	quitting        bool
}

func NewModel(store storage.Provider, adapter remote.Adapter, authSvc *auth.Service) Model {
	m := Model{
		store:   store,
		adapter: adapter,
		auth:    authSvc,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		seq:     paint.NewSequencer(),
	}

	if user, err := authSvc.Resume(); err == nil {
		m.startSession(session.New(user))
		m.state = StateGrid
	} else {
		m.state = StateSignIn
		m.form = m.newSignInForm()
	}
	return m
}

// startSession wires the grid and the gesture controller to a fresh session.
func (m *Model) startSession(sess *session.Session) {
	m.sess = sess
	m.grid = grid.New(sess.Axis, sess.Habits, sess.Entries)
	m.grid.SetSize(m.width, m.height)
	m.seq = paint.NewSequencer()
	queue := &pendingQueue{}
	m.pending = queue
	m.controller = paint.NewController(sess.Entries, func(habitID, day string, value bool) {
		queue.writes = append(queue.writes, pendingWrite{habitID: habitID, day: day, value: value})
	})
}

func (m Model) Init() tea.Cmd {
	if m.state == StateGrid {
		return loadSessionCmd(m.adapter, m.sess.User.ID)
	}
	return m.form.Init()
}

func (m *Model) newSignInForm() *huh.Form {
	m.signInForm = &SignInFormModel{}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&m.signInForm.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.signInForm.Password),
		),
	)
}

func (m *Model) newSignUpForm() *huh.Form {
	m.signUpForm = &SignUpFormModel{}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&m.signUpForm.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.signUpForm.Password),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&m.signUpForm.Confirm),
		),
	)
}

func (m *Model) newHabitForm() *huh.Form {
	m.habitForm = &HabitFormModel{}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit name").
				Value(&m.habitForm.Name),
		),
	)
}

func (m *Model) newPasswordForm() *huh.Form {
	m.passwordForm = &PasswordFormModel{}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Current password").
				EchoMode(huh.EchoModePassword).
				Value(&m.passwordForm.Current),
			huh.NewInput().
				Title("New password").
				EchoMode(huh.EchoModePassword).
				Value(&m.passwordForm.Next),
			huh.NewInput().
				Title("Confirm new password").
				EchoMode(huh.EchoModePassword).
				Value(&m.passwordForm.Confirm),
		),
	)
}
