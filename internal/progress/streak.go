// Package progress derives streak, weekly, and yearly views from day
// entries. All functions are pure: they read an in-memory snapshot of
// entries, perform no I/O, and are safe to call repeatedly.
package progress

import (
	"github.com/julianstephens/focuslog/internal/daykey"
	"github.com/julianstephens/focuslog/internal/models"
)

// indexByDay builds a day-key lookup over the entries. The store enforces
// one entry per day; on duplicates the last write wins as a defensive
// fallback. Soft-deleted entries are excluded.
func indexByDay(entries []models.DayEntry) map[string]models.DayEntry {
	idx := make(map[string]models.DayEntry, len(entries))
	for _, entry := range entries {
		if entry.DeletedAt != nil {
			continue
		}
		idx[entry.Day] = entry
	}
	return idx
}

// walkStart determines where the backward streak walk begins. Today only
// counts once it already qualifies; until then the streak is evaluated as
// of yesterday, so a day still in progress never breaks it.
func walkStart(todayKey string, idx map[string]models.DayEntry, threshold int) string {
	if entry, ok := idx[todayKey]; ok && entry.MaintainsStreak(threshold) {
		return todayKey
	}
	return daykey.Previous(todayKey)
}

// CurrentStreak returns the number of consecutive qualifying days ending
// at or immediately before todayKey. Any gap or non-qualifying day stops
// the walk.
func CurrentStreak(todayKey string, entries []models.DayEntry, threshold int) int {
	idx := indexByDay(entries)

	key := walkStart(todayKey, idx, threshold)
	count := 0
	for {
		entry, ok := idx[key]
		if !ok || !entry.MaintainsStreak(threshold) {
			break
		}
		count++

		prev := daykey.Previous(key)
		if prev == key {
			// Malformed key; Previous is a no-op and the walk cannot advance.
			break
		}
		key = prev
	}
	return count
}

// StreakStartDayKey returns the earliest day of the current streak. The
// second return value is false when the streak is zero.
func StreakStartDayKey(todayKey string, entries []models.DayEntry, threshold int) (string, bool) {
	streak := CurrentStreak(todayKey, entries, threshold)
	if streak == 0 {
		return "", false
	}

	key := walkStart(todayKey, indexByDay(entries), threshold)
	for i := 0; i < streak-1; i++ {
		key = daykey.Previous(key)
	}
	return key, true
}
