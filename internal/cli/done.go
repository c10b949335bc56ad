package cli

import (
	"fmt"

	"github.com/julianstephens/focuslog/internal/progress"
)

type DoneCmd struct {
	Position int    `arg:"" help:"Focus number to mark, as shown by 'focuslog day' (1-based)."`
	Day      string `help:"Day the focus belongs to (YYYY-MM-DD or 'today')." default:"today"`
	Undo     bool   `help:"Mark the focus as not completed instead."`
}

func (c *DoneCmd) Run(ctx *Context) error {
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
		return fmt.Errorf("no focuses set up for %s, run 'focuslog setup' first", day)
	}

	items := entry.ActiveItems()
	if c.Position < 1 || c.Position > len(items) {
		return fmt.Errorf("focus %d does not exist, %s has %d focus(es)", c.Position, day, len(items))
	}

	items[c.Position-1].Completed = !c.Undo
	entry.Items = items

	if err := ctx.Store.SaveEntry(entry); err != nil {
		return err
	}
	ctx.YearCache.Invalidate()

	item := items[c.Position-1]
	if c.Undo {
		fmt.Printf("Unmarked: %s\n", item.Title)
	} else {
		fmt.Printf("Completed: %s (%d/%d done)\n", item.Title, entry.CompletedCount(), entry.TotalItems())
	}

	// Show the streak impact right away
	todayKey, err := resolveDay("today", settings)
	if err != nil {
		return err
	}
	entries, err := ctx.Store.GetAllEntries()
	if err != nil {
		return err
	}
	streak := progress.CurrentStreak(todayKey, entries, settings.StreakThreshold)
	fmt.Printf("Current streak: %d day(s)\n", streak)

	return nil
}
