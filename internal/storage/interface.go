package storage

import (
	"github.com/julianstephens/focuslog/internal/constants"
	"github.com/julianstephens/focuslog/internal/models"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Day entries
	SaveEntry(models.DayEntry) error
	GetEntry(day string) (models.DayEntry, error)
	GetAllEntries() ([]models.DayEntry, error)
	GetEntriesInRange(startDay, endDay string) ([]models.DayEntry, error)
	GetRecentEntries(limit int) ([]models.DayEntry, error)
	DeleteEntry(day string) error
	RestoreEntry(day string) error

	// Utils
	GetConfigPath() string
}

// DefaultSettings returns the settings written on first init.
func DefaultSettings() models.Settings {
	return models.Settings{
		Timezone:        constants.DefaultTimezone,
		StreakThreshold: constants.DefaultStreakThreshold,
		MaxItemsPerDay:  constants.DefaultMaxItemsPerDay,
	}
}
