package system

import (
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/mwhitten/tally/internal/backup"
	"github.com/mwhitten/tally/internal/cli"
	"github.com/mwhitten/tally/internal/constants"
	"github.com/mwhitten/tally/internal/migration"
	"github.com/mwhitten/tally/internal/storage"
	"github.com/mwhitten/tally/internal/storage/sqlite"
	"github.com/mwhitten/tally/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	if dbReachable {
		if err := checkEntryIntegrity(ctx); err != nil {
			fmt.Printf("❌ Entry integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Entry integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Entry integrity: SKIPPED (database not reachable)\n")
	}

	if dbReachable {
		if err := checkDateFormats(ctx); err != nil {
			fmt.Printf("❌ Date formats: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Date formats: OK\n")
		}
	} else {
		fmt.Printf("⊘ Date formats: SKIPPED (database not reachable)\n")
	}

	// Warning only.
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock sanity: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock sanity: OK\n")
	}

	// Warning only. Two writers on one SQLite file risks lock contention.
	if err := checkRunningInstances(); err != nil {
		fmt.Printf("⚠ Running instances: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Running instances: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access migrations: %w", err)
	}
	runner := migration.NewRunner(sqliteStore.GetDB(), subFS)

	current, err := runner.CurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.LatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'tally migrate')", current, latest)
	}
	return nil
}

func checkEntryIntegrity(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}
	db := sqliteStore.GetDB()

	// Entries referencing deleted habits.
	var orphaned int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM habit_entries he
		LEFT JOIN habits h ON he.habit_id = h.id
		WHERE h.id IS NULL`).Scan(&orphaned)
	if err != nil {
		return fmt.Errorf("failed to check orphaned entries: %w", err)
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d orphaned entries (referencing non-existent habits)", orphaned)
	}

	// The unique index should make duplicates impossible; verify anyway.
	var duplicates int
	err = db.QueryRow(`
		SELECT COUNT(*)
		FROM (
			SELECT user_id, habit_id, day, COUNT(*) as cnt
			FROM habit_entries
			GROUP BY user_id, habit_id, day
			HAVING cnt > 1
		)`).Scan(&duplicates)
	if err != nil {
		return fmt.Errorf("failed to check duplicate entries: %w", err)
	}
	if duplicates > 0 {
		return fmt.Errorf("found %d (habit, day) combinations with duplicate entries", duplicates)
	}
	return nil
}

func checkDateFormats(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}

	var invalid int
	err := sqliteStore.GetDB().QueryRow(`
		SELECT COUNT(*)
		FROM habit_entries
		WHERE day NOT GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]'`).Scan(&invalid)
	if err != nil {
		return fmt.Errorf("failed to check entry dates: %w", err)
	}
	if invalid > 0 {
		return fmt.Errorf("found %d entries with invalid date format", invalid)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if storage.IsPostgres(ctx.Store.GetConfigPath()) {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, consider creating one with 'tally backup create'")
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkRunningInstances() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	count := 0
	for _, p := range procs {
		name := p.Executable()
		if name == constants.AppName || strings.TrimSuffix(name, ".exe") == constants.AppName {
			count++
		}
	}
	// This process counts as one.
	if count > 1 {
		return fmt.Errorf("found %d running tally processes, concurrent writes can contend for the database", count)
	}
	return nil
}
