package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/daylog/internal/cli"
	"github.com/julianstephens/daylog/internal/cli/auth"
	"github.com/julianstephens/daylog/internal/cli/backups"
	"github.com/julianstephens/daylog/internal/cli/entries"
	"github.com/julianstephens/daylog/internal/cli/settings"
	"github.com/julianstephens/daylog/internal/cli/system"
	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/errors"
	"github.com/julianstephens/daylog/internal/logger"
	"github.com/julianstephens/daylog/internal/notifier"
	"github.com/julianstephens/daylog/internal/storage"
)

type CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Journal file path (.db for SQLite, .json for a JSON file), PostgreSQL connection string or Redis URL. PostgreSQL credentials must NOT be embedded; use DAYLOG_DB_CONNECTION, .pgpass or the OS keyring." type:"string" default:"${config}" env:"DAYLOG_CONFIG"`
	Verbose bool   `name:"debug" help:"Log debug output to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize daylog storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored records for problems."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Today   entries.TodayCmd   `cmd:"" help:"Show today's question and answer."`
	Answer  entries.AnswerCmd  `cmd:"" help:"Answer today's question."`
	History entries.HistoryCmd `cmd:"" help:"List past answers, newest first."`
	Delete  entries.DeleteCmd  `cmd:"" help:"Delete the answer for a day."`
	Export  entries.ExportCmd  `cmd:"" help:"Export the journal."`

	Settings settings.SettingsCmd `cmd:"" help:"Show or change the daily reminder."`
	Auth     struct {
		Guest   auth.GuestCmd   `cmd:"" help:"Continue as a guest."`
		Signin  auth.SignInCmd  `cmd:"" help:"Sign in."`
		Signout auth.SignOutCmd `cmd:"" help:"Sign out. Answers are kept."`
		Whoami  auth.WhoamiCmd  `cmd:"" help:"Show the current user."`
	} `cmd:"" help:"Manage the current user."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage journal backups."`
	Debug   system.DebugCmd `cmd:"" help:"Debug commands for troubleshooting."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Send the daily reminder if due (run every minute from cron)."`
	Remind system.RemindCmd `cmd:"" help:"Keep the daily reminder running in the foreground."`
}

func newParser(c *CLI) (*kong.Kong, error) {
	return kong.New(c,
		kong.Name(constants.AppName),
		kong.Description("One question a day: a daily journal for the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"config":  constants.DefaultConfigPath,
		},
	)
}

// logDir keeps the log next to a file-backed journal and under the default
// config dir otherwise.
func logDir(store storage.Provider) string {
	if cli.IsFileBacked(store) {
		return filepath.Dir(store.GetConfigPath())
	}
	dir, err := cli.ExpandPath(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return os.TempDir()
	}
	return dir
}

func main() {
	var args CLI
	parser, err := newParser(&args)
	if err != nil {
		panic(err)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	config, trusted := cli.ResolveConfig(args.Config)
	store, err := cli.NewStore(config, trusted)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: args.Verbose, ConfigDir: logDir(store)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	logger.Debug("Starting", "command", ctx.Command(), "store", store.GetConfigPath())

	appCtx := cli.NewContext(store, notifier.New(), nil)

	// init creates the store itself
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	if cerr := store.Close(); cerr != nil {
		logger.Warn("Failed to close store", "error", cerr)
	}
	errors.Fatal(err)
}
