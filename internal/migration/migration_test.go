package migration

import (
	"database/sql"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testMigrations() fstest.MapFS {
	return fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE things (id TEXT PRIMARY KEY);")},
		"002_add_label.sql": {Data: []byte("ALTER TABLE things ADD COLUMN label TEXT;")},
	}
}

func TestApplyMigrations(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, testMigrations())

	count, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 migrations applied, got %d", count)
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	if _, err := db.Exec("INSERT INTO things (id, label) VALUES ('a', 'b')"); err != nil {
		t.Errorf("migrated schema rejected insert: %v", err)
	}
}

func TestApplyMigrationsIdempotent(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, testMigrations())

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	count, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no migrations on second run, got %d", count)
	}
}

func TestCurrentVersionFreshDatabase(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, fstest.MapFS{})

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0 for fresh database, got %d", version)
	}
}

func TestReadMigrationFilesRejectsBadNames(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, fstest.MapFS{
		"nonsense.sql": {Data: []byte("SELECT 1;")},
	})

	if _, err := runner.ReadMigrationFiles(); err == nil {
		t.Error("expected an error for a filename without a version prefix")
	}
}

func TestValidateVersion(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, testMigrations())

	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected pending migrations to fail validation")
	}

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if err := runner.ValidateVersion(); err != nil {
		t.Errorf("expected up-to-date schema to validate, got %v", err)
	}
}

func TestValidateVersionNewerThanSupported(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, testMigrations())

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}

	// Simulate a database written by a newer build.
	older := NewRunner(db, fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE things (id TEXT PRIMARY KEY);")},
	})
	if err := older.ValidateVersion(); err == nil {
		t.Error("expected a newer schema version to fail validation")
	}
}
