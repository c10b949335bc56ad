package validation

import (
	"fmt"
	"time"

	"github.com/julianstephens/focuslog/internal/constants"
	"github.com/julianstephens/focuslog/internal/daykey"
	"github.com/julianstephens/focuslog/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictInvalidDayKey     ConflictType = "invalid_day_key"
	ConflictEmptyTitle        ConflictType = "empty_title"
	ConflictTitleTooLong      ConflictType = "title_too_long"
	ConflictTooManyItems      ConflictType = "too_many_items"
	ConflictDuplicatePosition ConflictType = "duplicate_position"
	ConflictDuplicateDay      ConflictType = "duplicate_day"
	ConflictInvalidThreshold  ConflictType = "invalid_threshold"
	ConflictInvalidMaxItems   ConflictType = "invalid_max_items"
	ConflictInvalidTimezone   ConflictType = "invalid_timezone"
)

// Conflict represents a detected problem in entries or settings
type Conflict struct {
	Type        ConflictType
	Description string
	Day         string   // YYYY-MM-DD format (if applicable)
	Items       []string // Titles of the focuses involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator validates day entries and settings
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateEntry checks a single day entry against the given settings.
// Soft-deleted items are ignored.
func (v *Validator) ValidateEntry(entry models.DayEntry, settings models.Settings) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if _, ok := daykey.Parse(entry.Day); !ok {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidDayKey,
			Description: fmt.Sprintf("Entry has invalid day key: %q (expected YYYY-MM-DD)", entry.Day),
			Day:         entry.Day,
		})
	}

	items := entry.ActiveItems()

	maxItems := settings.MaxItemsPerDay
	if maxItems <= 0 {
		maxItems = constants.DefaultMaxItemsPerDay
	}
	if len(items) > maxItems {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictTooManyItems,
			Description: fmt.Sprintf("Day %s has %d focuses, the maximum is %d", entry.Day, len(items), maxItems),
			Day:         entry.Day,
		})
	}

	positions := make(map[int][]string)
	for _, item := range items {
		if item.Title == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyTitle,
				Description: fmt.Sprintf("Day %s has a focus with an empty title", entry.Day),
				Day:         entry.Day,
			})
		}
		if len(item.Title) > constants.MaxTitleLen {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictTitleTooLong,
				Description: fmt.Sprintf("Day %s focus title exceeds %d characters: %q", entry.Day, constants.MaxTitleLen, truncate(item.Title, 40)),
				Day:         entry.Day,
				Items:       []string{item.Title},
			})
		}
		positions[item.Position] = append(positions[item.Position], item.Title)
	}

	for position, titles := range positions {
		if len(titles) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicatePosition,
				Description: fmt.Sprintf("Day %s has %d focuses at position %d", entry.Day, len(titles), position),
				Day:         entry.Day,
				Items:       titles,
			})
		}
	}

	return result
}

// ValidateEntries checks a full history: each entry individually plus
// cross-entry duplicate day keys.
func (v *Validator) ValidateEntries(entries []models.DayEntry, settings models.Settings) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seen := make(map[string]int)
	for _, entry := range entries {
		if entry.DeletedAt != nil {
			continue
		}
		seen[entry.Day]++

		entryResult := v.ValidateEntry(entry, settings)
		result.Conflicts = append(result.Conflicts, entryResult.Conflicts...)
	}

	for day, count := range seen {
		if count > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateDay,
				Description: fmt.Sprintf("Day %s appears %d times in the history", day, count),
				Day:         day,
			})
		}
	}

	return result
}

// ValidateSettings checks settings values for sanity.
func (v *Validator) ValidateSettings(settings models.Settings) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if settings.StreakThreshold < 1 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidThreshold,
			Description: fmt.Sprintf("streak_threshold must be at least 1, got %d", settings.StreakThreshold),
		})
	}

	if settings.MaxItemsPerDay < 1 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidMaxItems,
			Description: fmt.Sprintf("max_items_per_day must be at least 1, got %d", settings.MaxItemsPerDay),
		})
	}

	if settings.Timezone != "" && settings.Timezone != "Local" {
		if _, err := time.LoadLocation(settings.Timezone); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTimezone,
				Description: fmt.Sprintf("timezone %q is not a valid IANA zone name", settings.Timezone),
			})
		}
	}

	return result
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
