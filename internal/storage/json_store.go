package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/julianstephens/focuslog/internal/models"
)

type Store struct {
	Version  int                        `json:"version"`
	Settings models.Settings            `json:"settings"`
	Entries  map[string]models.DayEntry `json:"entries"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:  1,
		Settings: DefaultSettings(),
		Entries:  make(map[string]models.DayEntry),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'focuslog init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Entries == nil {
		s.store.Entries = make(map[string]models.DayEntry)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) SaveEntry(entry models.DayEntry) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if entry.DeletedAt != nil {
		return fmt.Errorf("cannot save an entry with deleted_at set; use DeleteEntry to soft-delete or RestoreEntry to restore")
	}

	if existing, ok := s.store.Entries[entry.Day]; ok && existing.DeletedAt != nil {
		return fmt.Errorf("entry for %s is deleted; use 'focuslog restore %s' to restore it", entry.Day, entry.Day)
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	s.store.Entries[entry.Day] = entry
	return s.save()
}

func (s *JSONStore) GetEntry(day string) (models.DayEntry, error) {
	if s.store == nil {
		return models.DayEntry{}, fmt.Errorf("storage not loaded")
	}

	entry, ok := s.store.Entries[day]
	if !ok || entry.DeletedAt != nil {
		return models.DayEntry{}, fmt.Errorf("no entry found for day: %s", day)
	}

	entry.Items = entry.ActiveItems()
	return entry, nil
}

func (s *JSONStore) GetAllEntries() ([]models.DayEntry, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var entries []models.DayEntry
	for _, entry := range s.store.Entries {
		if entry.DeletedAt == nil {
			entry.Items = entry.ActiveItems()
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Day < entries[j].Day
	})

	return entries, nil
}

func (s *JSONStore) GetEntriesInRange(startDay, endDay string) ([]models.DayEntry, error) {
	all, err := s.GetAllEntries()
	if err != nil {
		return nil, err
	}

	var entries []models.DayEntry
	for _, entry := range all {
		if entry.Day >= startDay && entry.Day <= endDay {
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

func (s *JSONStore) GetRecentEntries(limit int) ([]models.DayEntry, error) {
	all, err := s.GetAllEntries()
	if err != nil {
		return nil, err
	}

	// Newest first
	sort.Slice(all, func(i, j int) bool {
		return all[i].Day > all[j].Day
	})

	if limit >= 0 && len(all) > limit {
		all = all[:limit]
	}

	return all, nil
}

func (s *JSONStore) DeleteEntry(day string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	entry, ok := s.store.Entries[day]
	if !ok {
		return fmt.Errorf("no entry found for day: %s", day)
	}
	if entry.DeletedAt != nil {
		return fmt.Errorf("entry for %s is already deleted", day)
	}

	// Soft delete: set deleted_at on the entry and its still-active items
	now := time.Now().UTC().Format(time.RFC3339)
	entry.DeletedAt = &now
	for i := range entry.Items {
		if entry.Items[i].DeletedAt == nil {
			entry.Items[i].DeletedAt = &now
		}
	}

	s.store.Entries[day] = entry
	return s.save()
}

func (s *JSONStore) RestoreEntry(day string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	entry, ok := s.store.Entries[day]
	if !ok {
		return fmt.Errorf("no entry found for day: %s", day)
	}
	if entry.DeletedAt == nil {
		return fmt.Errorf("cannot restore an entry that is not deleted: %s", day)
	}

	// Restore items deleted as part of the same DeleteEntry operation only
	entryDeletedAt := entry.DeletedAt
	entry.DeletedAt = nil
	for i := range entry.Items {
		if entry.Items[i].DeletedAt != nil && *entry.Items[i].DeletedAt == *entryDeletedAt {
			entry.Items[i].DeletedAt = nil
		}
	}

	s.store.Entries[day] = entry
	return s.save()
}

// GetConfigPath returns the path to the underlying storage file.
//
// Concurrency note:
//   - JSONStore is not safe for concurrent use by multiple goroutines without
//     external synchronization.
//   - Running multiple focuslog processes against the same storage path at the
//     same time is not supported and may lead to data loss.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
