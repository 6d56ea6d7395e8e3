package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Toggle   key.Binding
	Add      key.Binding
	Delete   key.Binding
	Stats    key.Binding
	Export   key.Binding
	Password key.Binding
	SignOut  key.Binding
	Back     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous habit"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next habit"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add habit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete habit"),
		),
		Stats: key.NewBinding(
			key.WithKeys("s", "tab"),
			key.WithHelp("s/tab", "stats"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Password: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "change password"),
		),
		SignOut: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "sign out"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateGrid:
		return []key.Binding{m.keys.Toggle, m.keys.Add, m.keys.Stats, m.keys.Help, m.keys.Quit}
	case StateStats:
		return []key.Binding{m.keys.Back, m.keys.Quit}
	default:
		return []key.Binding{m.keys.Back, m.keys.Quit}
	}
}

func (m Model) FullHelp() [][]key.Binding {
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}
	actions := []key.Binding{m.keys.Toggle, m.keys.Add, m.keys.Delete, m.keys.Stats, m.keys.Export}
	account := []key.Binding{m.keys.Password, m.keys.SignOut, m.keys.Help, m.keys.Quit}
	return [][]key.Binding{navigation, actions, account}
}
