package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mwhitten/tally/internal/analytics"
	"github.com/mwhitten/tally/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case StateSignIn:
		return m.viewAuth("Sign in", "ctrl+n: create account", m.form.View())
	case StateSignUp:
		return m.viewAuth("Create account", "esc: back to sign in", m.form.View())
	case StateAddHabit, StateChangePassword:
		return docStyle.Render(m.form.View())
	case StateConfirmDelete:
		return m.viewConfirmDelete()
	case StateStats:
		return m.viewStats()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTitleBar(),
		m.grid.View(),
		m.viewStatusLine(),
		m.help.View(m),
	)
}

func (m Model) viewTitleBar() string {
	title := titleStyle.Render(constants.AppName)
	day := m.grid.SelectedDay()
	label := ""
	if day.Date != "" {
		label = userStyle.Render(day.Label)
	}
	email := ""
	if m.sess != nil {
		email = userStyle.Render(m.sess.User.Email)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, label, email)
}

func (m Model) viewStatusLine() string {
	if m.statusMsg == "" {
		return " "
	}
	return statusStyle.Render(m.statusMsg)
}

func (m Model) viewAuth(title, hint, form string) string {
	header := titleStyle.Render(constants.AppName) + "  " + title
	footer := userStyle.Render(hint)
	if m.statusMsg != "" {
		footer = statusStyle.Render(m.statusMsg) + "\n" + footer
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", form, "", footer))
}

func (m Model) viewConfirmDelete() string {
	name := m.habitToDeleteID
	if habit := m.sess.HabitByID(m.habitToDeleteID); habit != nil {
		name = habit.Name
	}
	return lipgloss.Place(m.width, m.height-chromeRows,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Delete habit %q and all its entries?", name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewStats() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Stats"))
	b.WriteString("\n\n")

	axis := m.sess.Axis
	habits := m.sess.Habits
	store := m.sess.Entries

	for _, habit := range habits {
		current := analytics.CurrentStreak(habit.ID, axis, store)
		longest := analytics.LongestStreak(habit.ID, axis, store)
		b.WriteString(fmt.Sprintf("%s current %s, longest %s\n",
			statLabelStyle.Render(habit.Name),
			statValueStyle.Render(fmt.Sprintf("%dd", current)),
			statValueStyle.Render(fmt.Sprintf("%dd", longest)),
		))
	}
	if len(habits) == 0 {
		b.WriteString(userStyle.Render("No habits yet.") + "\n")
	}
	b.WriteString("\n")

	rate := analytics.OverallCompletionRate(axis, habits, store)
	b.WriteString(statLabelStyle.Render("Overall"))
	b.WriteString(statValueStyle.Render(fmt.Sprintf("%d%%", rate)))
	b.WriteString("\n")

	today := axis[len(axis)-1]
	ratio := analytics.DayCompletionRatio(today, habits, store)
	b.WriteString(statLabelStyle.Render("Today"))
	b.WriteString(statValueStyle.Render(fmt.Sprintf("%.0f%%", ratio*100)))
	b.WriteString("\n")

	if best := analytics.BestHabit(habits, axis, store); best != nil {
		b.WriteString(statLabelStyle.Render("Best habit"))
		b.WriteString(statValueStyle.Render(best.Name))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(userStyle.Render("esc: back"))
	return docStyle.Render(b.String())
}
