package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/julianstephens/focuslog/internal/models"
	"github.com/julianstephens/focuslog/internal/validation"
)

type AddCmd struct {
	Title string `arg:"" help:"Focus title."`
	Tag   string `help:"Optional tag for the focus."`
	Day   string `help:"Day to add to (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *AddCmd) Run(ctx *Context) error {
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
		// No entry yet, start a fresh one
		entry = models.DayEntry{Day: day}
	}

	items := entry.ActiveItems()
	position := 0
	for _, item := range items {
		if item.Position >= position {
			position = item.Position + 1
		}
	}

	entry.Items = append(items, models.Item{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(c.Title),
		Tag:      c.Tag,
		Position: position,
	})

	validator := validation.New()
	if result := validator.ValidateEntry(entry, settings); result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}

	if err := ctx.Store.SaveEntry(entry); err != nil {
		return err
	}
	ctx.YearCache.Invalidate()

	fmt.Printf("Added focus to %s (%d/%d):\n", day, len(entry.Items), settings.MaxItemsPerDay)
	for _, item := range entry.Items {
		fmt.Println(formatItemLine(item))
	}
	return nil
}
