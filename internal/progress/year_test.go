package progress

import (
	"testing"
	"time"

	"github.com/julianstephens/focuslog/internal/models"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func TestYearData_EmptyLeapYear(t *testing.T) {
	today := date(2024, time.June, 1)
	result := YearData(2024, nil, today, testThreshold)

	if result.Summary.TotalDays != 366 {
		t.Fatalf("2024 has 366 days, got %d", result.Summary.TotalDays)
	}
	if len(result.Days) != 366 {
		t.Fatalf("expected 366 day dots, got %d", len(result.Days))
	}
	if result.Summary.CompletedDays != 0 {
		t.Errorf("expected 0 completed days, got %d", result.Summary.CompletedDays)
	}

	for _, dot := range result.Days {
		var want YearDayStatus
		switch {
		case dot.Day < "2024-06-01":
			want = YearDayEmptyPast
		case dot.Day == "2024-06-01":
			want = YearDayEmptyToday
		default:
			want = YearDayFuture
		}
		if dot.Status != want {
			t.Fatalf("day %s: expected %s, got %s", dot.Day, want, dot.Status)
		}
	}
}

func TestYearData_StatusPriority(t *testing.T) {
	entries := []models.DayEntry{
		entry("2025-03-10", 2, 0), // success
		entry("2025-03-11", 0, 2), // incomplete
		entry("2025-03-12", 1, 2), // today with an entry, below threshold
	}
	today := date(2025, time.March, 12)

	result := YearData(2025, entries, today, testThreshold)
	byDay := make(map[string]YearDayStatus, len(result.Days))
	for _, dot := range result.Days {
		byDay[dot.Day] = dot.Status
	}

	cases := map[string]YearDayStatus{
		"2025-03-09": YearDayEmptyPast,
		"2025-03-10": YearDaySuccess,
		"2025-03-11": YearDayIncomplete,
		"2025-03-12": YearDayIncomplete, // an entry for today outranks empty-today
		"2025-03-13": YearDayFuture,
	}
	for day, want := range cases {
		if got := byDay[day]; got != want {
			t.Errorf("day %s: expected %s, got %s", day, want, got)
		}
	}

	if result.Summary.CompletedDays != 1 {
		t.Errorf("expected 1 completed day, got %d", result.Summary.CompletedDays)
	}
}

func TestYearData_PastYear(t *testing.T) {
	today := date(2025, time.June, 1)
	result := YearData(2023, nil, today, testThreshold)

	if result.Summary.DaysLeft != 0 {
		t.Errorf("past year should have 0 days left, got %d", result.Summary.DaysLeft)
	}
	if result.Summary.CompletionPercent != 100 {
		t.Errorf("past year should be 100%% elapsed, got %d", result.Summary.CompletionPercent)
	}
	for _, dot := range result.Days {
		if dot.Status != YearDayEmptyPast {
			t.Fatalf("day %s of a past empty year should be empty_past, got %s", dot.Day, dot.Status)
		}
	}
}

func TestYearData_FutureYear(t *testing.T) {
	today := date(2025, time.June, 1)
	result := YearData(2026, nil, today, testThreshold)

	if result.Summary.DaysLeft != 365 {
		t.Errorf("future year should have all 365 days left, got %d", result.Summary.DaysLeft)
	}
	if result.Summary.CompletionPercent != 0 {
		t.Errorf("future year should be 0%% elapsed, got %d", result.Summary.CompletionPercent)
	}
	for _, dot := range result.Days {
		if dot.Status != YearDayFuture {
			t.Fatalf("every day of a future year should be future, got %s on %s", dot.Status, dot.Day)
		}
	}
}

func TestYearData_CurrentYearElapsed(t *testing.T) {
	// June 1 2025 is day 152 of 365.
	today := date(2025, time.June, 1)
	result := YearData(2025, nil, today, testThreshold)

	if result.Summary.DaysLeft != 365-152 {
		t.Errorf("expected %d days left, got %d", 365-152, result.Summary.DaysLeft)
	}
	if result.Summary.CompletionPercent != 42 {
		t.Errorf("expected 42%% elapsed (152/365 rounded), got %d", result.Summary.CompletionPercent)
	}
}

func TestCachedYearData_HitAndInvalidation(t *testing.T) {
	cache := &YearCache{}
	today := date(2025, time.March, 12)
	entries := []models.DayEntry{entry("2025-03-12", 1, 2)}

	first := CachedYearData(cache, 2025, entries, today, testThreshold)
	second := CachedYearData(cache, 2025, entries, today, testThreshold)
	if first.Summary != second.Summary {
		t.Error("cached result should match the computed one")
	}

	// Completing a focus today changes the cache key and forces a recompute.
	entries = []models.DayEntry{entry("2025-03-12", 2, 1)}
	third := CachedYearData(cache, 2025, entries, today, testThreshold)
	if third.Summary.CompletedDays != 1 {
		t.Errorf("stale cache served after today's counts changed: %+v", third.Summary)
	}

	// Editing a past day does not move the key; callers invalidate explicitly.
	entries = append(entries, entry("2025-03-10", 2, 0))
	stale := CachedYearData(cache, 2025, entries, today, testThreshold)
	if stale.Summary.CompletedDays != 1 {
		t.Errorf("expected stale hit before invalidation, got %+v", stale.Summary)
	}
	cache.Invalidate()
	fresh := CachedYearData(cache, 2025, entries, today, testThreshold)
	if fresh.Summary.CompletedDays != 2 {
		t.Errorf("expected recompute after invalidation, got %+v", fresh.Summary)
	}
}

func TestCachedYearData_NilCache(t *testing.T) {
	today := date(2025, time.March, 12)
	result := CachedYearData(nil, 2025, nil, today, testThreshold)
	if result.Summary.TotalDays != 365 {
		t.Errorf("nil cache should fall through to YearData, got %+v", result.Summary)
	}
}
