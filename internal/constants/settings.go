package constants

const (
	// Setting keys
	SettingTimezone        = "timezone"
	SettingStreakThreshold = "streak_threshold"
	SettingMaxItemsPerDay  = "max_items_per_day"

	// Default Settings Values
	DefaultTimezone        = "Local" // Use system local timezone by default
	DefaultStreakThreshold = 2       // A day qualifies with min(2, total) completed focuses
	DefaultMaxItemsPerDay  = 3

	// MaxTitleLen bounds focus titles on the write path.
	MaxTitleLen = 120
)

func init() {
	// Runtime validation: the qualifying rule is completed >= min(threshold, total),
	// which degenerates to "every empty day qualifies" at threshold 0.
	if DefaultStreakThreshold < 1 {
		panic("DefaultStreakThreshold must be at least 1")
	}
}
