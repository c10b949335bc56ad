package cli

import (
	"fmt"

	"github.com/julianstephens/focuslog/internal/progress"
)

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	settings := ctx.loadSettings()
	todayKey, err := resolveDay("today", settings)
	if err != nil {
		return err
	}

	entries, err := ctx.Store.GetAllEntries()
	if err != nil {
		return err
	}

	streak := progress.CurrentStreak(todayKey, entries, settings.StreakThreshold)
	if streak == 0 {
		fmt.Println("No active streak. Complete today's focuses to start one.")
		return nil
	}

	fmt.Printf("Current streak: %d day(s)", streak)
	if start, ok := progress.StreakStartDayKey(todayKey, entries, settings.StreakThreshold); ok {
		fmt.Printf(" (since %s)", start)
	}
	fmt.Println()

	return nil
}
