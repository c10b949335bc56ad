package models

// Settings holds user-configurable application settings
type Settings struct {
	// Timezone is an IANA timezone name, or "Local" for the system timezone.
	// "Today" is always resolved against this zone, never the ambient one.
	Timezone string `json:"timezone"`
	// StreakThreshold is the number of completed focuses a day needs to
	// qualify for the streak (capped at the day's total item count).
	StreakThreshold int `json:"streak_threshold"`
	// MaxItemsPerDay bounds how many focuses a day can hold.
	MaxItemsPerDay int `json:"max_items_per_day"`
}
