// Package daykey provides the canonical YYYY-MM-DD calendar-day identifier
// and day arithmetic. Keys sort lexicographically in chronological order.
package daykey

import (
	"time"

	"github.com/julianstephens/focuslog/internal/constants"
)

// Make formats a point in time as the calendar-day key of its location.
func Make(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Parse is the inverse of Make. It reports false for malformed keys and
// never panics; the returned time is midnight UTC of the keyed day.
func Parse(key string) (time.Time, bool) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Previous returns the calendar day immediately before key, crossing
// month and year boundaries via calendar arithmetic. If key fails to
// parse, Previous returns key unchanged; callers rely on this no-op
// fallback rather than an error.
func Previous(key string) string {
	t, ok := Parse(key)
	if !ok {
		return key
	}
	return Make(t.AddDate(0, 0, -1))
}

// Next returns the calendar day immediately after key, with the same
// parse-failure fallback as Previous.
func Next(key string) string {
	t, ok := Parse(key)
	if !ok {
		return key
	}
	return Make(t.AddDate(0, 0, 1))
}

// WeekStart returns the Monday of the ISO week containing key. Keys that
// fail to parse are returned unchanged.
func WeekStart(key string) string {
	t, ok := Parse(key)
	if !ok {
		return key
	}
	// time.Weekday numbers Sunday as 0; shift so Monday is 0.
	offset := (int(t.Weekday()) + 6) % 7
	return Make(t.AddDate(0, 0, -offset))
}

// Today returns the current day key in the given location.
func Today(loc *time.Location) string {
	return Make(time.Now().In(loc))
}
