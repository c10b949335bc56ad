package cli

import (
	"fmt"

	"github.com/julianstephens/focuslog/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	defer ctx.Store.Close()

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	entries, err := ctx.Store.GetAllEntries()
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}

	validator := validation.New()

	fmt.Println("Validating settings...")
	settingsResult := validator.ValidateSettings(settings)

	fmt.Println("Validating entries...")
	entriesResult := validator.ValidateEntries(entries, settings)

	combined := validation.ValidationResult{
		Conflicts: append(settingsResult.Conflicts, entriesResult.Conflicts...),
	}

	fmt.Println()
	fmt.Println(combined.FormatReport())

	return nil
}
