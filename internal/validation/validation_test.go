package validation

import (
	"strings"
	"testing"

	"github.com/julianstephens/focuslog/internal/constants"
	"github.com/julianstephens/focuslog/internal/models"
)

func testSettings() models.Settings {
	return models.Settings{
		Timezone:        "Local",
		StreakThreshold: 2,
		MaxItemsPerDay:  3,
	}
}

func hasConflictType(result ValidationResult, ct ConflictType) bool {
	for _, c := range result.Conflicts {
		if c.Type == ct {
			return true
		}
	}
	return false
}

func TestValidateEntry_Clean(t *testing.T) {
	v := New()
	entry := models.DayEntry{
		Day: "2025-03-10",
		Items: []models.Item{
			{ID: "a", Title: "write report", Position: 0},
			{ID: "b", Title: "run 5k", Position: 1},
		},
	}

	result := v.ValidateEntry(entry, testSettings())
	if result.HasConflicts() {
		t.Errorf("expected no conflicts, got: %s", result.FormatReport())
	}
}

func TestValidateEntry_InvalidDayKey(t *testing.T) {
	v := New()
	cases := []string{"2025-3-10", "03/10/2025", "not-a-day", ""}

	for _, day := range cases {
		entry := models.DayEntry{Day: day}
		result := v.ValidateEntry(entry, testSettings())
		if !hasConflictType(result, ConflictInvalidDayKey) {
			t.Errorf("day %q: expected invalid day key conflict", day)
		}
	}
}

func TestValidateEntry_EmptyTitle(t *testing.T) {
	v := New()
	entry := models.DayEntry{
		Day:   "2025-03-10",
		Items: []models.Item{{ID: "a", Title: "", Position: 0}},
	}

	result := v.ValidateEntry(entry, testSettings())
	if !hasConflictType(result, ConflictEmptyTitle) {
		t.Error("expected empty title conflict")
	}
}

func TestValidateEntry_TitleTooLong(t *testing.T) {
	v := New()
	entry := models.DayEntry{
		Day:   "2025-03-10",
		Items: []models.Item{{ID: "a", Title: strings.Repeat("x", constants.MaxTitleLen+1), Position: 0}},
	}

	result := v.ValidateEntry(entry, testSettings())
	if !hasConflictType(result, ConflictTitleTooLong) {
		t.Error("expected title too long conflict")
	}
}

func TestValidateEntry_TooManyItems(t *testing.T) {
	v := New()
	entry := models.DayEntry{
		Day: "2025-03-10",
		Items: []models.Item{
			{ID: "a", Title: "one", Position: 0},
			{ID: "b", Title: "two", Position: 1},
			{ID: "c", Title: "three", Position: 2},
			{ID: "d", Title: "four", Position: 3},
		},
	}

	result := v.ValidateEntry(entry, testSettings())
	if !hasConflictType(result, ConflictTooManyItems) {
		t.Error("expected too many items conflict")
	}
}

func TestValidateEntry_SoftDeletedItemsIgnored(t *testing.T) {
	v := New()
	deleted := "2025-03-09T10:00:00Z"
	entry := models.DayEntry{
		Day: "2025-03-10",
		Items: []models.Item{
			{ID: "a", Title: "one", Position: 0},
			{ID: "b", Title: "two", Position: 1},
			{ID: "c", Title: "three", Position: 2},
			{ID: "d", Title: "", Position: 3, DeletedAt: &deleted},
		},
	}

	result := v.ValidateEntry(entry, testSettings())
	if result.HasConflicts() {
		t.Errorf("soft-deleted items should not trigger conflicts: %s", result.FormatReport())
	}
}

func TestValidateEntry_DuplicatePositions(t *testing.T) {
	v := New()
	entry := models.DayEntry{
		Day: "2025-03-10",
		Items: []models.Item{
			{ID: "a", Title: "one", Position: 0},
			{ID: "b", Title: "two", Position: 0},
		},
	}

	result := v.ValidateEntry(entry, testSettings())
	if !hasConflictType(result, ConflictDuplicatePosition) {
		t.Error("expected duplicate position conflict")
	}
}

func TestValidateEntries_DuplicateDays(t *testing.T) {
	v := New()
	entries := []models.DayEntry{
		{Day: "2025-03-10", Items: []models.Item{{ID: "a", Title: "one", Position: 0}}},
		{Day: "2025-03-10", Items: []models.Item{{ID: "b", Title: "two", Position: 0}}},
		{Day: "2025-03-11", Items: []models.Item{{ID: "c", Title: "three", Position: 0}}},
	}

	result := v.ValidateEntries(entries, testSettings())
	if !hasConflictType(result, ConflictDuplicateDay) {
		t.Error("expected duplicate day conflict")
	}
}

func TestValidateEntries_SkipsSoftDeleted(t *testing.T) {
	v := New()
	deleted := "2025-03-09T10:00:00Z"
	entries := []models.DayEntry{
		{Day: "2025-03-10", Items: []models.Item{{ID: "a", Title: "one", Position: 0}}},
		{Day: "2025-03-10", DeletedAt: &deleted},
	}

	result := v.ValidateEntries(entries, testSettings())
	if result.HasConflicts() {
		t.Errorf("soft-deleted entries should not count as duplicates: %s", result.FormatReport())
	}
}

func TestValidateSettings(t *testing.T) {
	v := New()

	if result := v.ValidateSettings(testSettings()); result.HasConflicts() {
		t.Errorf("expected default-like settings to be valid: %s", result.FormatReport())
	}

	bad := models.Settings{Timezone: "Mars/Olympus_Mons", StreakThreshold: 0, MaxItemsPerDay: 0}
	result := v.ValidateSettings(bad)
	for _, want := range []ConflictType{ConflictInvalidThreshold, ConflictInvalidMaxItems, ConflictInvalidTimezone} {
		if !hasConflictType(result, want) {
			t.Errorf("expected %s conflict", want)
		}
	}
}

func TestFormatReport(t *testing.T) {
	clean := ValidationResult{}
	if got := clean.FormatReport(); got != "No conflicts detected." {
		t.Errorf("unexpected clean report: %q", got)
	}

	result := ValidationResult{Conflicts: []Conflict{
		{Type: ConflictEmptyTitle, Description: "Day 2025-03-10 has a focus with an empty title"},
	}}
	report := result.FormatReport()
	if !strings.Contains(report, "empty title") {
		t.Errorf("report missing conflict description: %q", report)
	}
}
