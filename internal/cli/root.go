package cli

import (
	"fmt"

	"github.com/julianstephens/focuslog/internal/backup"
	"github.com/julianstephens/focuslog/internal/constants"
	"github.com/julianstephens/focuslog/internal/daykey"
	"github.com/julianstephens/focuslog/internal/logger"
	"github.com/julianstephens/focuslog/internal/models"
	"github.com/julianstephens/focuslog/internal/progress"
	"github.com/julianstephens/focuslog/internal/storage"
	"github.com/julianstephens/focuslog/internal/utils"
)

type Context struct {
	Store     storage.Provider
	YearCache *progress.YearCache
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// loadSettings returns stored settings, falling back to defaults when the
// store has none or holds out-of-range values.
func (c *Context) loadSettings() models.Settings {
	settings, err := c.Store.GetSettings()
	if err != nil {
		logger.Warn("Falling back to default settings", "error", err)
		return storage.DefaultSettings()
	}
	if settings.StreakThreshold < 1 {
		settings.StreakThreshold = constants.DefaultStreakThreshold
	}
	if settings.MaxItemsPerDay < 1 {
		settings.MaxItemsPerDay = constants.DefaultMaxItemsPerDay
	}
	return settings
}

// resolveDay maps a command argument to a canonical day key. "today" is
// resolved against the configured timezone, never the ambient one.
func resolveDay(arg string, settings models.Settings) (string, error) {
	if arg == "" || arg == "today" {
		return utils.GetTodayFromSettings(settings)
	}
	if _, ok := daykey.Parse(arg); !ok {
		return "", fmt.Errorf("invalid day %q, use YYYY-MM-DD or 'today'", arg)
	}
	return arg, nil
}

// checkbox renders a focus's completion marker
func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

func formatItemLine(item models.Item) string {
	line := fmt.Sprintf("  %s %s", checkbox(item.Completed), item.Title)
	if item.Tag != "" {
		line += fmt.Sprintf("  (%s)", item.Tag)
	}
	return line
}
