package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/focuslog/internal/constants"
	"github.com/julianstephens/focuslog/internal/migration"
	"github.com/julianstephens/focuslog/internal/models"
	"github.com/julianstephens/focuslog/migrations"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	// Run migrations
	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'focuslog init' first")
	}

	if err := s.open(); err != nil {
		return err
	}

	runner := migration.NewRunner(s.db, migrations.FS)
	return runner.ValidateVersion()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) runMigrations() error {
	runner := migration.NewRunner(s.db, migrations.FS)
	_, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	return err
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingStreakThreshold:
			if _, err := fmt.Sscanf(value, "%d", &settings.StreakThreshold); err != nil {
				return models.Settings{}, fmt.Errorf("parsing streak_threshold: %w", err)
			}
		case constants.SettingMaxItemsPerDay:
			if _, err := fmt.Sscanf(value, "%d", &settings.MaxItemsPerDay); err != nil {
				return models.Settings{}, fmt.Errorf("parsing max_items_per_day: %w", err)
			}
		}
		count++
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(constants.SettingTimezone, settings.Timezone); err != nil {
		return err
	}
	if _, err := stmt.Exec(constants.SettingStreakThreshold, fmt.Sprintf("%d", settings.StreakThreshold)); err != nil {
		return err
	}
	if _, err := stmt.Exec(constants.SettingMaxItemsPerDay, fmt.Sprintf("%d", settings.MaxItemsPerDay)); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) SaveEntry(entry models.DayEntry) error {
	// Prevent bypassing the delete/restore workflow by ensuring entries cannot be
	// saved with DeletedAt manually set. Use DeleteEntry/RestoreEntry instead.
	if entry.DeletedAt != nil {
		return fmt.Errorf("cannot save an entry with deleted_at set; use DeleteEntry to soft-delete or RestoreEntry to restore")
	}

	// Refuse to silently resurrect a soft-deleted day
	var existingDeletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM entries WHERE day = ?", entry.Day).Scan(&existingDeletedAt)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to check existing entry: %w", err)
	}
	if err == nil && existingDeletedAt.Valid {
		return fmt.Errorf("entry for %s is deleted; use 'focuslog restore %s' to restore it", entry.Day, entry.Day)
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO entries (day, created_at, deleted_at) VALUES (?, ?, NULL)",
		entry.Day, entry.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	// Replace active items; individually soft-deleted items stay on record
	_, err = tx.Exec("DELETE FROM items WHERE entry_day = ? AND deleted_at IS NULL", entry.Day)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO items (id, entry_day, title, tag, position, completed, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, item := range entry.Items {
		var itemDeletedAt sql.NullString
		if item.DeletedAt != nil {
			itemDeletedAt = sql.NullString{String: *item.DeletedAt, Valid: true}
		}
		_, err = stmt.Exec(
			item.ID, entry.Day, item.Title, item.Tag, item.Position, item.Completed, itemDeletedAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetEntry(day string) (models.DayEntry, error) {
	var createdAt string
	err := s.db.QueryRow(
		"SELECT created_at FROM entries WHERE day = ? AND deleted_at IS NULL", day,
	).Scan(&createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.DayEntry{}, fmt.Errorf("no entry found for day: %s", day)
		}
		return models.DayEntry{}, err
	}

	entry := models.DayEntry{Day: day}
	entry.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.DayEntry{}, fmt.Errorf("invalid created_at for day %s: %w", day, err)
	}

	entry.Items, err = s.getItems(day)
	if err != nil {
		return models.DayEntry{}, err
	}

	return entry, nil
}

func (s *SQLiteStore) getItems(day string) ([]models.Item, error) {
	rows, err := s.db.Query(`
		SELECT id, title, tag, position, completed
		FROM items WHERE entry_day = ? AND deleted_at IS NULL ORDER BY position`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Title, &item.Tag, &item.Position, &item.Completed); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *SQLiteStore) GetAllEntries() ([]models.DayEntry, error) {
	return s.queryEntries("SELECT day, created_at FROM entries WHERE deleted_at IS NULL ORDER BY day")
}

func (s *SQLiteStore) GetEntriesInRange(startDay, endDay string) ([]models.DayEntry, error) {
	// Day keys compare lexicographically in chronological order
	return s.queryEntries(
		"SELECT day, created_at FROM entries WHERE deleted_at IS NULL AND day >= ? AND day <= ? ORDER BY day",
		startDay, endDay,
	)
}

func (s *SQLiteStore) GetRecentEntries(limit int) ([]models.DayEntry, error) {
	return s.queryEntries(
		"SELECT day, created_at FROM entries WHERE deleted_at IS NULL ORDER BY day DESC LIMIT ?",
		limit,
	)
}

func (s *SQLiteStore) queryEntries(query string, args ...any) ([]models.DayEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.DayEntry
	for rows.Next() {
		var entry models.DayEntry
		var createdAt string
		if err := rows.Scan(&entry.Day, &createdAt); err != nil {
			return nil, err
		}
		entry.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("invalid created_at for day %s: %w", entry.Day, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Items, err = s.getItems(entries[i].Day)
		if err != nil {
			return nil, err
		}
	}

	return entries, nil
}

func (s *SQLiteStore) DeleteEntry(day string) error {
	// Soft delete: set deleted_at timestamp for the entry and its items
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var deletedAt sql.NullString
	err = tx.QueryRow("SELECT deleted_at FROM entries WHERE day = ?", day).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("no entry found for day: %s", day)
		}
		return err
	}
	if deletedAt.Valid {
		return fmt.Errorf("entry for %s is already deleted", day)
	}

	now := time.Now().UTC().Format(time.RFC3339)

	if _, err := tx.Exec("UPDATE entries SET deleted_at = ? WHERE day = ?", now, day); err != nil {
		return err
	}
	if _, err := tx.Exec("UPDATE items SET deleted_at = ? WHERE entry_day = ? AND deleted_at IS NULL", now, day); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) RestoreEntry(day string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var deletedAt sql.NullString
	err = tx.QueryRow("SELECT deleted_at FROM entries WHERE day = ?", day).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("no entry found for day: %s", day)
		}
		return err
	}
	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore an entry that is not deleted: %s", day)
	}

	if _, err := tx.Exec("UPDATE entries SET deleted_at = NULL WHERE day = ?", day); err != nil {
		return err
	}

	// Restore only items deleted as part of the same DeleteEntry operation,
	// not items individually removed earlier
	if _, err := tx.Exec(
		"UPDATE items SET deleted_at = NULL WHERE entry_day = ? AND deleted_at = ?",
		day, deletedAt.String,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}
