// Package entries holds the commands that read and write day entries from
// the command line: mark, log, stats, and export.
package entries

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/mwhitten/tally/internal/analytics"
	"github.com/mwhitten/tally/internal/calendar"
	"github.com/mwhitten/tally/internal/cli"
	"github.com/mwhitten/tally/internal/cli/habits"
	"github.com/mwhitten/tally/internal/constants"
	"github.com/mwhitten/tally/internal/entrylog"
	"github.com/mwhitten/tally/internal/export"
	"github.com/mwhitten/tally/internal/models"
	"github.com/mwhitten/tally/internal/tui/components/grid"
	"github.com/mwhitten/tally/internal/validation"
)

type MarkCmd struct {
	Habit  string `arg:"" help:"Habit name."`
	Date   string `help:"Day to mark (YYYY-MM-DD), defaults to today." short:"d"`
	Undone bool   `help:"Mark the day as not done instead."`
}

func (c *MarkCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		day = time.Now().Format(constants.DateFormat)
	}
	if err := validation.Date(day); err != nil {
		return err
	}

	habit, err := habits.FindByName(ctx, user.ID, c.Habit)
	if err != nil {
		return err
	}

	confirmed, err := ctx.Adapter.UpsertEntry(context.Background(), user.ID, habit.ID, day, !c.Undone)
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	mark := "✓"
	if !confirmed.Value {
		mark = "○"
	}
	fmt.Printf("%s %s on %s\n", mark, habit.Name, confirmed.Day)
	return nil
}

type LogCmd struct {
	Days int `help:"Number of recent days to show, defaults to the configured log window." short:"n"`
}

func (c *LogCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	days := c.Days
	if days <= 0 {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		days = settings.LogDays
	}

	userHabits, store, axis, err := loadUserData(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(userHabits) == 0 {
		fmt.Println("No habits yet. Add one with 'tally habit add <name>'.")
		return nil
	}

	if days > len(axis) {
		days = len(axis)
	}
	window := axis[len(axis)-days:]

	nameWidth := 0
	for _, h := range userHabits {
		if w := ansi.StringWidth(h.Name); w > nameWidth {
			nameWidth = w
		}
	}

	fmt.Printf("%s  %s .. %s\n", strings.Repeat(" ", nameWidth), window[0].Date, window[len(window)-1].Date)
	for _, h := range userHabits {
		var row strings.Builder
		for _, d := range window {
			if store.Get(h.ID, d.Date) {
				row.WriteString("■ ")
			} else {
				row.WriteString("· ")
			}
		}
		fmt.Printf("%s  %s\n", padName(h.Name, nameWidth), strings.TrimRight(row.String(), " "))
	}
	return nil
}

// padName pads to display columns; %-*s would count bytes and misalign
// multi-byte names.
func padName(name string, width int) string {
	if w := ansi.StringWidth(name); w < width {
		return name + strings.Repeat(" ", width-w)
	}
	return name
}

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	userHabits, store, axis, err := loadUserData(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(userHabits) == 0 {
		fmt.Println("No habits yet. Add one with 'tally habit add <name>'.")
		return nil
	}

	for _, h := range userHabits {
		current := analytics.CurrentStreak(h.ID, axis, store)
		longest := analytics.LongestStreak(h.ID, axis, store)
		fmt.Printf("  %s current %dd, longest %dd\n", padName(h.Name, 20), current, longest)
	}
	fmt.Println()

	rate := analytics.OverallCompletionRate(axis, userHabits, store)
	fmt.Printf("  Overall completion: %d%%\n", rate)

	today := axis[len(axis)-1]
	ratio := analytics.DayCompletionRatio(today, userHabits, store)
	fmt.Printf("  Today: %.0f%%\n", ratio*100)

	if best := analytics.BestHabit(userHabits, axis, store); best != nil {
		fmt.Printf("  Best habit: %s\n", best.Name)
	}
	return nil
}

type ExportCmd struct {
	Dir string `help:"Directory to write the export to, defaults to the configured export directory."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	userHabits, store, axis, err := loadUserData(ctx, user.ID)
	if err != nil {
		return err
	}

	dir := c.Dir
	if dir == "" {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		dir = settings.ExportDir
	}
	if dir == "" {
		dir = filepath.Join(filepath.Dir(ctx.Store.GetConfigPath()), "exports")
	}

	g := grid.New(axis, userHabits, store)
	g.SetSize(grid.GutterWidth+len(axis)*grid.CellWidth, 0)

	path, err := export.WriteGrid(dir, g.View(), time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("✓ Exported to %s\n", path)
	return nil
}

func loadUserData(ctx *cli.Context, userID string) ([]models.Habit, *entrylog.Store, []calendar.Day, error) {
	userHabits, err := ctx.Adapter.FetchHabits(context.Background(), userID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load habits: %w", err)
	}
	entries, err := ctx.Adapter.FetchEntries(context.Background(), userID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load entries: %w", err)
	}

	store := entrylog.NewStore()
	store.BulkLoad(entries)
	return userHabits, store, calendar.BuildAxis(time.Now()), nil
}
