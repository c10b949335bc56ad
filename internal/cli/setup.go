package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/julianstephens/focuslog/internal/models"
	"github.com/julianstephens/focuslog/internal/validation"
)

type SetupCmd struct {
	Focuses []string `arg:"" help:"Focus titles for the day."`
	Tags    []string `help:"Optional tags, matched to focuses by position." sep:","`
	Day     string   `help:"Day to set up (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *SetupCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	settings := ctx.loadSettings()
	day, err := resolveDay(c.Day, settings)
	if err != nil {
		return err
	}

	if len(c.Tags) > len(c.Focuses) {
		return fmt.Errorf("got %d tags for %d focuses", len(c.Tags), len(c.Focuses))
	}

	entry := models.DayEntry{Day: day}
	for i, title := range c.Focuses {
		item := models.Item{
			ID:       uuid.NewString(),
			Title:    title,
			Position: i,
		}
		if i < len(c.Tags) {
			item.Tag = c.Tags[i]
		}
		entry.Items = append(entry.Items, item)
	}

	validator := validation.New()
	if result := validator.ValidateEntry(entry, settings); result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}

	if err := ctx.Store.SaveEntry(entry); err != nil {
		return err
	}
	ctx.YearCache.Invalidate()

	fmt.Printf("Set up %s with %d focus(es):\n", day, len(entry.Items))
	for _, item := range entry.Items {
		fmt.Println(formatItemLine(item))
	}
	return nil
}
