package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/focuslog/internal/cli"
	"github.com/julianstephens/focuslog/internal/errors"
	"github.com/julianstephens/focuslog/internal/keyring"
	"github.com/julianstephens/focuslog/internal/logger"
	"github.com/julianstephens/focuslog/internal/progress"
	"github.com/julianstephens/focuslog/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path." type:"path" default:"~/.config/focuslog/focuslog.db"`
	Debug   bool   `help:"Enable debug logging."`
	Remote  bool   `help:"Use the remote PostgreSQL database configured via 'focuslog connect'."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize focuslog storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Setup    cli.SetupCmd    `cmd:"" help:"Set up a day with focuses."`
	Add      cli.AddCmd      `cmd:"" help:"Add a focus to a day."`
	Done     cli.DoneCmd     `cmd:"" help:"Mark a focus as completed."`
	Day      cli.DayCmd      `cmd:"" help:"Show the focuses for a day."`
	Delete   cli.DeleteCmd   `cmd:"" help:"Soft-delete a day's entry."`
	Restore  cli.RestoreCmd  `cmd:"" help:"Restore a soft-deleted day."`
	Streak   cli.StreakCmd   `cmd:"" help:"Show the current streak."`
	Week     cli.WeekCmd     `cmd:"" help:"Show this week's progress."`
	Year     cli.YearCmd     `cmd:"" help:"Show year progress."`
	Settings cli.SettingsCmd `cmd:"" help:"Show or change settings."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the database."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the database from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Connect  cli.ConnectCmd  `cmd:"" help:"Store or inspect the remote database connection string."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks on the database."`
	Validate cli.ValidateCmd `cmd:"" help:"Validate settings and entries."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("focuslog"),
		kong.Description("Daily focus and streak tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	})

	store, err := selectStore()
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:     store,
		YearCache: &progress.YearCache{},
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}

// selectStore picks a backend: --remote uses the PostgreSQL connection
// string from the system keyring, a .json config path uses the JSON
// store, anything else the SQLite store.
func selectStore() (storage.Provider, error) {
	if CLI.Remote {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return nil, fmt.Errorf("no remote database configured, run 'focuslog connect <connection-string>' first: %w", err)
		}
		return storage.NewPostgresStore(connStr), nil
	}

	if strings.HasSuffix(CLI.Config, ".json") {
		return storage.NewJSONStore(CLI.Config), nil
	}
	return storage.NewSQLiteStore(CLI.Config), nil
}
