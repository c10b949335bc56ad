package storage

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/focuslog/internal/models"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "focuslog.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testEntry(day string, items ...models.Item) models.DayEntry {
	return models.DayEntry{
		Day:       day,
		CreatedAt: time.Now().UTC(),
		Items:     items,
	}
}

func TestSQLiteStore_InitWritesDefaultSettings(t *testing.T) {
	store := setupSQLiteStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings != DefaultSettings() {
		t.Errorf("expected default settings, got %+v", settings)
	}
}

func TestSQLiteStore_SaveSettingsRoundTrip(t *testing.T) {
	store := setupSQLiteStore(t)

	want := models.Settings{
		Timezone:        "Pacific/Auckland",
		StreakThreshold: 3,
		MaxItemsPerDay:  3,
	}
	if err := store.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestSQLiteStore_SaveAndGetEntry(t *testing.T) {
	store := setupSQLiteStore(t)

	entry := testEntry("2025-03-10",
		models.Item{ID: "a", Title: "write report", Tag: "work", Position: 0, Completed: true},
		models.Item{ID: "b", Title: "run 5k", Tag: "health", Position: 1},
	)
	if err := store.SaveEntry(entry); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	got, err := store.GetEntry("2025-03-10")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
	if got.Items[0].Title != "write report" || !got.Items[0].Completed {
		t.Errorf("first item mismatch: %+v", got.Items[0])
	}
	if got.Items[1].Tag != "health" || got.Items[1].Completed {
		t.Errorf("second item mismatch: %+v", got.Items[1])
	}
}

func TestSQLiteStore_SaveEntryUpserts(t *testing.T) {
	store := setupSQLiteStore(t)

	if err := store.SaveEntry(testEntry("2025-03-10",
		models.Item{ID: "a", Title: "draft", Position: 0},
	)); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := store.SaveEntry(testEntry("2025-03-10",
		models.Item{ID: "a", Title: "draft", Position: 0, Completed: true},
		models.Item{ID: "b", Title: "review", Position: 1},
	)); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, err := store.GetEntry("2025-03-10")
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected replaced items, got %d", len(got.Items))
	}
	if !got.Items[0].Completed {
		t.Error("expected updated completion state to persist")
	}
}

func TestSQLiteStore_GetEntryMissing(t *testing.T) {
	store := setupSQLiteStore(t)

	if _, err := store.GetEntry("2025-01-01"); err == nil {
		t.Error("expected error for missing entry")
	}
}

func TestSQLiteStore_GetEntriesInRange(t *testing.T) {
	store := setupSQLiteStore(t)

	for _, day := range []string{"2025-03-08", "2025-03-10", "2025-03-12", "2025-03-15"} {
		if err := store.SaveEntry(testEntry(day, models.Item{ID: "i-" + day, Title: "focus", Position: 0})); err != nil {
			t.Fatalf("save %s failed: %v", day, err)
		}
	}

	entries, err := store.GetEntriesInRange("2025-03-09", "2025-03-13")
	if err != nil {
		t.Fatalf("GetEntriesInRange failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries in range, got %d", len(entries))
	}
	if entries[0].Day != "2025-03-10" || entries[1].Day != "2025-03-12" {
		t.Errorf("range results out of order: %s, %s", entries[0].Day, entries[1].Day)
	}
}

func TestSQLiteStore_GetRecentEntries(t *testing.T) {
	store := setupSQLiteStore(t)

	for _, day := range []string{"2025-03-08", "2025-03-10", "2025-03-12"} {
		if err := store.SaveEntry(testEntry(day, models.Item{ID: "i-" + day, Title: "focus", Position: 0})); err != nil {
			t.Fatalf("save %s failed: %v", day, err)
		}
	}

	entries, err := store.GetRecentEntries(2)
	if err != nil {
		t.Fatalf("GetRecentEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Day != "2025-03-12" || entries[1].Day != "2025-03-10" {
		t.Errorf("expected newest first, got %s, %s", entries[0].Day, entries[1].Day)
	}
}

func TestSQLiteStore_SoftDeleteAndRestore(t *testing.T) {
	store := setupSQLiteStore(t)

	if err := store.SaveEntry(testEntry("2025-03-10",
		models.Item{ID: "a", Title: "focus", Position: 0},
	)); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	if err := store.DeleteEntry("2025-03-10"); err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if _, err := store.GetEntry("2025-03-10"); err == nil {
		t.Error("deleted entry should not be readable")
	}
	if entries, _ := store.GetAllEntries(); len(entries) != 0 {
		t.Errorf("deleted entry should be excluded from GetAllEntries, got %d", len(entries))
	}

	// Double delete is rejected
	if err := store.DeleteEntry("2025-03-10"); err == nil {
		t.Error("expected error deleting an already-deleted entry")
	}

	// Saving over a deleted day is rejected
	if err := store.SaveEntry(testEntry("2025-03-10", models.Item{ID: "b", Title: "other", Position: 0})); err == nil {
		t.Error("expected error saving over a deleted entry")
	}

	if err := store.RestoreEntry("2025-03-10"); err != nil {
		t.Fatalf("RestoreEntry failed: %v", err)
	}
	got, err := store.GetEntry("2025-03-10")
	if err != nil {
		t.Fatalf("restored entry should be readable: %v", err)
	}
	if len(got.Items) != 1 {
		t.Errorf("restore should bring back the entry's items, got %d", len(got.Items))
	}
}

func TestSQLiteStore_RestoreNotDeleted(t *testing.T) {
	store := setupSQLiteStore(t)

	if err := store.SaveEntry(testEntry("2025-03-10", models.Item{ID: "a", Title: "focus", Position: 0})); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}

	err := store.RestoreEntry("2025-03-10")
	if err == nil || !strings.Contains(err.Error(), "not deleted") {
		t.Errorf("expected not-deleted error, got %v", err)
	}
}

func TestSQLiteStore_SaveEntryRejectsDeletedAt(t *testing.T) {
	store := setupSQLiteStore(t)

	now := time.Now().UTC().Format(time.RFC3339)
	entry := testEntry("2025-03-10", models.Item{ID: "a", Title: "focus", Position: 0})
	entry.DeletedAt = &now

	if err := store.SaveEntry(entry); err == nil {
		t.Error("expected error saving an entry with deleted_at set")
	}
}

func TestSQLiteStore_LoadUninitialized(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("expected error loading uninitialized storage")
	}
}

func TestSQLiteStore_LoadAfterInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focuslog.db")

	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.SaveEntry(testEntry("2025-03-10", models.Item{ID: "a", Title: "focus", Position: 0})); err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	store.Close()

	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	if _, err := reopened.GetEntry("2025-03-10"); err != nil {
		t.Errorf("entry should survive reopen: %v", err)
	}
}
