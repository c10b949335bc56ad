package cli

import (
	"fmt"
)

type DayCmd struct {
	Day string `arg:"" help:"Day to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	settings := ctx.loadSettings()
	day, err := resolveDay(c.Day, settings)
	if err != nil {
		return err
	}

	entry, err := ctx.Store.GetEntry(day)
	if err != nil {
		fmt.Printf("No focuses set up for %s.\n", day)
		return nil
	}

	fmt.Printf("Focuses for %s:\n\n", day)
	for _, item := range entry.ActiveItems() {
		fmt.Println(formatItemLine(item))
	}

	fmt.Printf("\n%d/%d completed", entry.CompletedCount(), entry.TotalItems())
	if entry.MaintainsStreak(settings.StreakThreshold) {
		fmt.Print("  (streak maintained)")
	}
	fmt.Println()

	return nil
}
