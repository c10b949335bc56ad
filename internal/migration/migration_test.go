package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func migrationFS(files map[string]string) fstest.MapFS {
	mapFS := fstest.MapFS{}
	for name, content := range files {
		mapFS[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return mapFS
}

func TestGetCurrentVersion_FreshDatabase(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_test.sql": "CREATE TABLE test (id INTEGER);",
	}))

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("fresh database should be at version 0, got %d", version)
	}
}

func TestApplyMigrations_AppliesInOrder(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"002_add_column.sql": "ALTER TABLE test ADD COLUMN name TEXT;",
		"001_create.sql":     "CREATE TABLE test (id INTEGER);",
	}))

	applied, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 migrations applied, got %d", applied)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	// The ALTER from migration 2 must have landed on the table from migration 1.
	if _, err := db.Exec("INSERT INTO test (id, name) VALUES (1, 'a')"); err != nil {
		t.Errorf("migrated schema incomplete: %v", err)
	}
}

func TestApplyMigrations_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_create.sql": "CREATE TABLE test (id INTEGER);",
	}))

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}

	applied, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second apply failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("second apply should be a no-op, applied %d", applied)
	}
}

func TestApplyMigrations_FailureRollsBack(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_broken.sql": "THIS IS NOT SQL;",
	}))

	if _, err := runner.ApplyMigrations(nil); err == nil {
		t.Fatal("expected broken migration to fail")
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("failed migration must not advance the version, got %d", version)
	}
}

func TestReadMigrationFiles_RejectsBadFilenames(t *testing.T) {
	db := setupTestDB(t)

	cases := map[string]string{
		"noversion.sql": "missing version prefix",
		"abc_test.sql":  "non-numeric version",
		"000_test.sql":  "version below 1",
	}
	for filename, desc := range cases {
		runner := NewRunner(db, migrationFS(map[string]string{filename: "SELECT 1;"}))
		if _, err := runner.ReadMigrationFiles(); err == nil {
			t.Errorf("expected error for %s (%s)", filename, desc)
		}
	}
}

func TestReadMigrationFiles_RejectsDuplicateVersions(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_one.sql": "SELECT 1;",
		"001_two.sql": "SELECT 2;",
	}))

	_, err := runner.ReadMigrationFiles()
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("expected duplicate version error, got %v", err)
	}
}

func TestValidateVersion_NewerSchemaRejected(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_create.sql": "CREATE TABLE test (id INTEGER);",
	}))

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	// Simulate a database written by a newer release.
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("failed to bump version: %v", err)
	}

	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected validation to reject a newer schema version")
	}
}
