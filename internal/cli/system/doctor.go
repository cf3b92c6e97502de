package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/daylog/internal/backup"
	"github.com/julianstephens/daylog/internal/cli"
	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/journal"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/storage/sqlite"
	"github.com/julianstephens/daylog/internal/validation"
)

var errChecksFailed = errors.New("one or more health checks failed")

type schemaVersioner interface {
	SchemaVersion() (current, latest int, err error)
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	fail := func(name string, err error) {
		ctx.Printf("❌ %s: FAIL\n", name)
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	}
	warn := func(name string, err error) {
		ctx.Printf("⚠ %s: WARNING\n", name)
		ctx.Printf("   %v\n", err)
	}
	ok := func(name string) { ctx.Printf("✓ %s: OK\n", name) }
	skip := func(name, why string) { ctx.Printf("⊘ %s: SKIPPED (%s)\n", name, why) }

	reachable := false
	if err := checkStoreReachable(ctx); err != nil {
		fail("Storage reachable", err)
	} else {
		ok("Storage reachable")
		reachable = true
	}

	if !reachable {
		skip("Schema version", "storage not reachable")
	} else if err := checkSchemaVersion(ctx); err != nil {
		fail("Schema version", err)
	} else {
		ok("Schema version")
	}

	if _, isSQLite := ctx.Store.(*sqlite.Store); !isSQLite {
		skip("Backups present", "only SQLite journals are backed up")
	} else if err := checkBackupsPresent(ctx); err != nil {
		warn("Backups present", err)
	} else {
		ok("Backups present")
	}

	if !reachable {
		skip("Data validation", "storage not reachable")
	} else if err := checkValidation(ctx); err != nil {
		fail("Data validation", err)
	} else {
		ok("Data validation")
	}

	if err := checkClockTimezone(ctx.Now()); err != nil {
		fail("Clock/timezone", err)
	} else {
		ok("Clock/timezone")
	}

	if !reachable || !ctx.Reminders.Settings().Enabled {
		skip("Notifications", "reminder disabled")
	} else if err := ctx.Sender.Available(); err != nil {
		warn("Notifications", fmt.Errorf("reminders cannot be shown: %w", err))
	} else {
		ok("Notifications")
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errChecksFailed
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load journal: %w", err)
	}
	if _, err := ctx.Store.Keys(); err != nil {
		return fmt.Errorf("failed to query journal: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	v, ok := ctx.Store.(schemaVersioner)
	if !ok {
		// File and key-value stores have no schema
		return nil
	}
	current, latest, err := v.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'daylog migrate')", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'daylog backup create'")
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	res, err := validateRecords(ctx)
	if err != nil {
		return err
	}
	if res.HasConflicts() {
		return fmt.Errorf("%d problem(s) found, run 'daylog validate' for details", len(res.Conflicts))
	}
	return nil
}

// validateRecords decodes the stored records directly, so a corrupt blob is
// reported instead of being read as empty the way the repositories do.
func validateRecords(ctx *cli.Context) (validation.Result, error) {
	var res validation.Result

	var answers []models.Answer
	if err := decodeRecord(ctx, constants.AnswersKey, &answers); err != nil {
		return res, err
	}
	res.Conflicts = append(res.Conflicts, validation.Answers(answers).Conflicts...)

	settings := models.DefaultNotificationSettings()
	if err := decodeRecord(ctx, constants.SettingsKey, &settings); err != nil {
		return res, err
	}
	models.ApplyDefaultSettings(&settings)
	res.Conflicts = append(res.Conflicts, validation.Settings(settings).Conflicts...)

	var user models.User
	if err := decodeRecord(ctx, constants.UserKey, &user); err != nil {
		return res, err
	}
	return res, nil
}

func decodeRecord(ctx *cli.Context, key string, v any) error {
	raw, ok, err := ctx.Store.Get(key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("%w: %s: %v", journal.ErrCorruptRecord, key, err)
	}
	return nil
}

func checkClockTimezone(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	res, err := validateRecords(ctx)
	if err != nil {
		return err
	}
	ctx.Println(strings.TrimRight(res.FormatReport(), "\n"))
	if res.HasConflicts() {
		return fmt.Errorf("journal has %d problem(s)", len(res.Conflicts))
	}
	return nil
}
