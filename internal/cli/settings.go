package cli

import (
	"fmt"

	"github.com/julianstephens/focuslog/internal/validation"
)

type SettingsCmd struct {
	Timezone        string `help:"IANA timezone name, or 'Local' for the system timezone."`
	StreakThreshold int    `help:"Completed focuses a day needs to qualify for the streak."`
	MaxItemsPerDay  int    `help:"Maximum number of focuses per day."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	changed := false
	if c.Timezone != "" {
		settings.Timezone = c.Timezone
		changed = true
	}
	if c.StreakThreshold != 0 {
		settings.StreakThreshold = c.StreakThreshold
		changed = true
	}
	if c.MaxItemsPerDay != 0 {
		settings.MaxItemsPerDay = c.MaxItemsPerDay
		changed = true
	}

	if changed {
		validator := validation.New()
		if result := validator.ValidateSettings(settings); result.HasConflicts() {
			return fmt.Errorf("%s", result.FormatReport())
		}
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return err
		}
		ctx.YearCache.Invalidate()
		fmt.Println("✓ Settings updated.")
	}

	fmt.Printf("Timezone:          %s\n", settings.Timezone)
	fmt.Printf("Streak threshold:  %d\n", settings.StreakThreshold)
	fmt.Printf("Max focuses/day:   %d\n", settings.MaxItemsPerDay)
	return nil
}
