package habits

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mwhitten/tally/internal/calendar"
	"github.com/mwhitten/tally/internal/cli"
	"github.com/mwhitten/tally/internal/entrylog"
	"github.com/mwhitten/tally/internal/models"
	"github.com/mwhitten/tally/internal/validation"
)

type HabitAddCmd struct {
	Name string `arg:"" help:"Name of the habit to track."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if err := validation.HabitName(c.Name); err != nil {
		return err
	}
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	habit, err := ctx.Adapter.CreateHabit(context.Background(), user.ID, strings.TrimSpace(c.Name))
	if err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}
	fmt.Printf("✓ Added habit %q\n", habit.Name)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	habits, err := ctx.Adapter.FetchHabits(context.Background(), user.ID)
	if err != nil {
		return fmt.Errorf("failed to list habits: %w", err)
	}
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'tally habit add <name>'.")
		return nil
	}

	entries, err := ctx.Adapter.FetchEntries(context.Background(), user.ID)
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}
	store := entrylog.NewStore()
	store.BulkLoad(entries)
	axis := calendar.BuildAxis(time.Now())
	today := axis[len(axis)-1].Date

	for _, h := range habits {
		mark := "○"
		if store.Get(h.ID, today) {
			mark = "✓"
		}
		fmt.Printf("  %s %s\n", mark, h.Name)
	}
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Name of the habit to delete."`
	Yes  bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	habit, err := FindByName(ctx, user.ID, c.Name)
	if err != nil {
		return err
	}

	if !c.Yes {
		fmt.Printf("Delete habit %q and all of its entries? [y/N]: ", habit.Name)
		var response string
		fmt.Scanln(&response)
		if r := strings.ToLower(strings.TrimSpace(response)); r != "y" && r != "yes" {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.Adapter.DeleteHabit(context.Background(), user.ID, habit.ID); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	fmt.Printf("✓ Deleted habit %q\n", habit.Name)
	return nil
}

// FindByName resolves a habit by exact name, case-insensitive.
func FindByName(ctx *cli.Context, userID, name string) (models.Habit, error) {
	habits, err := ctx.Adapter.FetchHabits(context.Background(), userID)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to load habits: %w", err)
	}
	for _, h := range habits {
		if strings.EqualFold(h.Name, strings.TrimSpace(name)) {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("no habit named %q", name)
}
