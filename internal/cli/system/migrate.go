package system

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"

	_ "modernc.org/sqlite"

	"github.com/mwhitten/tally/internal/cli"
	"github.com/mwhitten/tally/internal/migration"
	"github.com/mwhitten/tally/internal/storage"
	"github.com/mwhitten/tally/migrations"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if storage.IsPostgres(ctx.Store.GetConfigPath()) {
		// Postgres migrations run during 'tally init'.
		return fmt.Errorf("migrate command only supports SQLite storage")
	}

	dbPath := ctx.Store.GetConfigPath()
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'tally init' first")
	}

	// Migrations rewrite the schema in place, snapshot first.
	ctx.PerformAutomaticBackup()

	// Open directly: the provider's Load refuses databases that are behind,
	// which is exactly the state this command repairs.
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access migrations: %w", err)
	}

	runner := migration.NewRunner(db, subFS)
	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
