package system

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwhitten/tally/internal/cli"
	"github.com/mwhitten/tally/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	// All-motion mouse reporting, the paint gesture needs motion events
	// between press and release.
	p := tea.NewProgram(
		tui.NewModel(ctx.Store, ctx.Adapter, ctx.Auth),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
