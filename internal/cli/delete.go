package cli

import "fmt"

type DeleteCmd struct {
	Day string `arg:"" help:"Day to delete (YYYY-MM-DD or 'today')."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	settings := ctx.loadSettings()
	day, err := resolveDay(c.Day, settings)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteEntry(day); err != nil {
		return err
	}
	ctx.YearCache.Invalidate()

	fmt.Printf("Deleted %s. Undo with 'focuslog restore %s'.\n", day, day)
	return nil
}

type RestoreCmd struct {
	Day string `arg:"" help:"Day to restore (YYYY-MM-DD or 'today')."`
}

func (c *RestoreCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	settings := ctx.loadSettings()
	day, err := resolveDay(c.Day, settings)
	if err != nil {
		return err
	}

	if err := ctx.Store.RestoreEntry(day); err != nil {
		return err
	}
	ctx.YearCache.Invalidate()

	fmt.Printf("Restored %s:\n", day)
	entry, err := ctx.Store.GetEntry(day)
	if err != nil {
		return nil
	}
	for _, item := range entry.ActiveItems() {
		fmt.Println(formatItemLine(item))
	}
	return nil
}
