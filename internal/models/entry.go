package models

import "time"

// Item represents a single focus attached to one day
type Item struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Tag       string  `json:"tag,omitempty"`
	Position  int     `json:"position"`
	Completed bool    `json:"completed"`
	DeletedAt *string `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// DayEntry represents one day's committed focuses
type DayEntry struct {
	Day       string    `json:"day"` // YYYY-MM-DD format
	CreatedAt time.Time `json:"created_at"`
	Items     []Item    `json:"items"`
	DeletedAt *string   `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// ActiveItems returns the entry's items excluding soft-deleted ones,
// preserving order.
func (e DayEntry) ActiveItems() []Item {
	var items []Item
	for _, item := range e.Items {
		if item.DeletedAt == nil {
			items = append(items, item)
		}
	}
	return items
}

// TotalItems returns the number of non-deleted items.
func (e DayEntry) TotalItems() int {
	count := 0
	for _, item := range e.Items {
		if item.DeletedAt == nil {
			count++
		}
	}
	return count
}

// CompletedCount returns the number of non-deleted items marked complete.
func (e DayEntry) CompletedCount() int {
	count := 0
	for _, item := range e.Items {
		if item.DeletedAt == nil && item.Completed {
			count++
		}
	}
	return count
}

// MaintainsStreak reports whether this day qualifies for the streak:
// the completed count must reach min(threshold, total). A day with no
// items never qualifies.
func (e DayEntry) MaintainsStreak(threshold int) bool {
	total := e.TotalItems()
	if total == 0 {
		return false
	}
	required := threshold
	if total < required {
		required = total
	}
	return e.CompletedCount() >= required
}
