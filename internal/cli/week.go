package cli

import (
	"fmt"

	"github.com/julianstephens/focuslog/internal/progress"
)

type WeekCmd struct {
	Tags bool `help:"Show the per-tag breakdown for the week."`
}

func (c *WeekCmd) Run(ctx *Context) error {
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

	summary, err := progress.BuildWeeklySummary(todayKey, entries, settings.StreakThreshold)
	if err != nil {
		return err
	}

	fmt.Printf("Week of %s:\n\n", summary.Days[0].Day)
	for _, day := range summary.Days {
		marker := " "
		if day.Day == todayKey {
			marker = ">"
		}

		status := "-"
		if day.Total > 0 {
			if day.MaintainsStreak(settings.StreakThreshold) {
				status = "ok"
			} else {
				status = "miss"
			}
		}

		fmt.Printf("%s %s  %s  %d/%d  %s\n",
			marker, day.Date.Weekday().String()[:3], day.Day, day.Completed, day.Total, status)
	}
	fmt.Printf("\nSuccess rate: %d%% of set-up days\n", summary.SuccessRate)

	if c.Tags {
		fmt.Println()
		if len(summary.Tags) == 0 {
			fmt.Println("No focuses this week.")
			return nil
		}
		fmt.Println("Tags:")
		for _, tag := range summary.Tags {
			fmt.Printf("  %-16s %d/%d\n", tag.Tag, tag.Completed, tag.Total)
		}
		if summary.TopTag != "" {
			fmt.Printf("\nTop tag: %s\n", summary.TopTag)
		}
	}

	return nil
}
