package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/focuslog/internal/progress"
	"github.com/julianstephens/focuslog/internal/utils"
)

type YearCmd struct {
	Year int  `help:"Year to show (defaults to the current year)."`
	Grid bool `help:"Print the day-by-day grid."`
}

func (c *YearCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	settings := ctx.loadSettings()
	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		return err
	}

	year := c.Year
	if year == 0 {
		year = now.Year()
	}

	entries, err := ctx.Store.GetAllEntries()
	if err != nil {
		return err
	}

	result := progress.CachedYearData(ctx.YearCache, year, entries, now, settings.StreakThreshold)
	summary := result.Summary

	fmt.Printf("Year %d:\n", summary.Year)
	fmt.Printf("  Completed days:  %d of %d\n", summary.CompletedDays, summary.TotalDays)
	fmt.Printf("  Days left:       %d\n", summary.DaysLeft)
	fmt.Printf("  Year elapsed:    %d%%\n", summary.CompletionPercent)

	if c.Grid {
		fmt.Println()
		printYearGrid(result.Days)
		fmt.Println()
		fmt.Println("  # success   x incomplete   o today (not set up)   . missed   (blank) future")
	}

	return nil
}

// printYearGrid prints one row per month, one mark per day.
func printYearGrid(days []progress.YearDayDot) {
	months := [13]strings.Builder{}
	for _, dot := range days {
		// Day keys are YYYY-MM-DD; the month is positions 5..6
		month := int(dot.Day[5]-'0')*10 + int(dot.Day[6]-'0')
		months[month].WriteString(yearDayMark(dot.Status))
	}
	names := []string{"", "Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	for month := 1; month <= 12; month++ {
		fmt.Printf("  %s %s\n", names[month], months[month].String())
	}
}

func yearDayMark(status progress.YearDayStatus) string {
	switch status {
	case progress.YearDaySuccess:
		return "#"
	case progress.YearDayIncomplete:
		return "x"
	case progress.YearDayEmptyToday:
		return "o"
	case progress.YearDayEmptyPast:
		return "."
	default:
		return " "
	}
}
