package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/focuslog/internal/constants"
	"github.com/julianstephens/focuslog/internal/models"
	_ "github.com/lib/pq"
)

type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		connStr: connStr,
	}
}

func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := s.ensureSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Schema statements are idempotent, so Load can bring an older
	// database up to date the same way Init does.
	return s.ensureSchema()
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) ensureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS entries (
			day TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			deleted_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			entry_day TEXT NOT NULL REFERENCES entries(day) ON DELETE CASCADE,
			title TEXT NOT NULL,
			tag TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL,
			completed BOOLEAN NOT NULL DEFAULT FALSE,
			deleted_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_entry_day ON items(entry_day)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) GetSettings() (models.Settings, error) {
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

func (s *PostgresStore) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// PostgreSQL uses INSERT ... ON CONFLICT for upsert
	stmt, err := tx.Prepare(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`)
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

func (s *PostgresStore) SaveEntry(entry models.DayEntry) error {
	if entry.DeletedAt != nil {
		return fmt.Errorf("cannot save an entry with deleted_at set; use DeleteEntry to soft-delete or RestoreEntry to restore")
	}

	var existingDeletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM entries WHERE day = $1", entry.Day).Scan(&existingDeletedAt)
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

	_, err = tx.Exec(`
		INSERT INTO entries (day, created_at, deleted_at) VALUES ($1, $2, NULL)
		ON CONFLICT (day) DO UPDATE SET created_at = EXCLUDED.created_at, deleted_at = NULL`,
		entry.Day, entry.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec("DELETE FROM items WHERE entry_day = $1 AND deleted_at IS NULL", entry.Day)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO items (id, entry_day, title, tag, position, completed, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`)
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

func (s *PostgresStore) GetEntry(day string) (models.DayEntry, error) {
	var createdAt string
	err := s.db.QueryRow(
		"SELECT created_at FROM entries WHERE day = $1 AND deleted_at IS NULL", day,
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

func (s *PostgresStore) getItems(day string) ([]models.Item, error) {
	rows, err := s.db.Query(`
		SELECT id, title, tag, position, completed
		FROM items WHERE entry_day = $1 AND deleted_at IS NULL ORDER BY position`, day)
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

func (s *PostgresStore) GetAllEntries() ([]models.DayEntry, error) {
	return s.queryEntries("SELECT day, created_at FROM entries WHERE deleted_at IS NULL ORDER BY day")
}

func (s *PostgresStore) GetEntriesInRange(startDay, endDay string) ([]models.DayEntry, error) {
	return s.queryEntries(
		"SELECT day, created_at FROM entries WHERE deleted_at IS NULL AND day >= $1 AND day <= $2 ORDER BY day",
		startDay, endDay,
	)
}

func (s *PostgresStore) GetRecentEntries(limit int) ([]models.DayEntry, error) {
	return s.queryEntries(
		"SELECT day, created_at FROM entries WHERE deleted_at IS NULL ORDER BY day DESC LIMIT $1",
		limit,
	)
}

func (s *PostgresStore) queryEntries(query string, args ...any) ([]models.DayEntry, error) {
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

func (s *PostgresStore) DeleteEntry(day string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var deletedAt sql.NullString
	err = tx.QueryRow("SELECT deleted_at FROM entries WHERE day = $1", day).Scan(&deletedAt)
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

	if _, err := tx.Exec("UPDATE entries SET deleted_at = $1 WHERE day = $2", now, day); err != nil {
		return err
	}
	if _, err := tx.Exec("UPDATE items SET deleted_at = $1 WHERE entry_day = $2 AND deleted_at IS NULL", now, day); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *PostgresStore) RestoreEntry(day string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var deletedAt sql.NullString
	err = tx.QueryRow("SELECT deleted_at FROM entries WHERE day = $1", day).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("no entry found for day: %s", day)
		}
		return err
	}
	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore an entry that is not deleted: %s", day)
	}

	if _, err := tx.Exec("UPDATE entries SET deleted_at = NULL WHERE day = $1", day); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"UPDATE items SET deleted_at = NULL WHERE entry_day = $1 AND deleted_at = $2",
		day, deletedAt.String,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}
