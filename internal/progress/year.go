package progress

import (
	"math"
	"time"

	"github.com/julianstephens/focuslog/internal/daykey"
	"github.com/julianstephens/focuslog/internal/models"
)

// YearDayStatus classifies one calendar day of a year.
type YearDayStatus string

const (
	// YearDaySuccess is a set-up day that qualified.
	YearDaySuccess YearDayStatus = "success"
	// YearDayIncomplete is a set-up day that did not qualify.
	YearDayIncomplete YearDayStatus = "incomplete"
	// YearDayEmptyToday is today without an entry: not set up yet, but
	// still actionable, unlike a missed past day.
	YearDayEmptyToday YearDayStatus = "empty_today"
	// YearDayEmptyPast is an elapsed day without an entry, a true miss.
	YearDayEmptyPast YearDayStatus = "empty_past"
	// YearDayFuture is a day strictly after today.
	YearDayFuture YearDayStatus = "future"
)

// YearDayDot is the status of a single day in the year grid.
type YearDayDot struct {
	Day    string
	Status YearDayStatus
}

// YearSummary holds year-level statistics. CompletionPercent measures
// calendar progress through the year, not goal completion; CompletedDays
// carries the latter.
type YearSummary struct {
	Year              int
	TotalDays         int
	CompletedDays     int
	DaysLeft          int
	CompletionPercent int
}

// YearResult is the full derived year view.
type YearResult struct {
	Days    []YearDayDot
	Summary YearSummary
}

// YearData classifies every calendar day of the requested year against
// the reference point today and computes summary statistics. It works for
// arbitrary years, including ones with no data.
func YearData(year int, entries []models.DayEntry, today time.Time, threshold int) YearResult {
	idx := indexByDay(entries)
	todayKey := daykey.Make(today)

	days := make([]YearDayDot, 0, 366)
	completed := 0
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for d := start; d.Year() == year; d = d.AddDate(0, 0, 1) {
		key := daykey.Make(d)
		status := classifyYearDay(key, todayKey, idx, threshold)
		if status == YearDaySuccess {
			completed++
		}
		days = append(days, YearDayDot{Day: key, Status: status})
	}

	totalDays := len(days) // 365 or 366 depending on leap year

	var daysLeft, completionPercent int
	switch {
	case year > today.Year():
		daysLeft = totalDays
		completionPercent = 0
	case year < today.Year():
		daysLeft = 0
		completionPercent = 100
	default:
		daysLeft = totalDays - today.YearDay()
		if daysLeft < 0 {
			daysLeft = 0
		}
		completionPercent = int(math.Round(float64(today.YearDay()) / float64(totalDays) * 100))
	}

	return YearResult{
		Days: days,
		Summary: YearSummary{
			Year:              year,
			TotalDays:         totalDays,
			CompletedDays:     completed,
			DaysLeft:          daysLeft,
			CompletionPercent: completionPercent,
		},
	}
}

// classifyYearDay applies the status priority: future, then entry
// success/incomplete, then empty-today, then empty-past. Canonical day
// keys order lexicographically, so string comparison is chronological.
func classifyYearDay(key, todayKey string, idx map[string]models.DayEntry, threshold int) YearDayStatus {
	if key > todayKey {
		return YearDayFuture
	}
	if entry, ok := idx[key]; ok {
		if entry.MaintainsStreak(threshold) {
			return YearDaySuccess
		}
		return YearDayIncomplete
	}
	if key == todayKey {
		return YearDayEmptyToday
	}
	return YearDayEmptyPast
}
