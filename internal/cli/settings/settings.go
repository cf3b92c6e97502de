package settings

import (
	"errors"
	"fmt"

	"github.com/julianstephens/daylog/internal/cli"
	"github.com/julianstephens/daylog/internal/reminder"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Enabled *bool   `help:"Enable or disable the daily reminder."`
	Time    *string `help:"Reminder time (HH:MM, 24h)."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if c.List || (c.Enabled == nil && c.Time == nil) {
		if !c.List {
			ctx.Println("No changes specified. Use --enabled or --time to update settings.")
			ctx.Println()
		}
		printSettings(ctx)
		return nil
	}

	// Time first, so enabling schedules at the new time.
	if c.Time != nil {
		if err := ctx.Reminders.SetTime(*c.Time); err != nil {
			return fmt.Errorf("failed to update reminder time: %w", err)
		}
	}

	if c.Enabled != nil {
		if err := ctx.Reminders.SetEnabled(*c.Enabled); err != nil {
			if errors.Is(err, reminder.ErrPermissionDenied) {
				return fmt.Errorf("%w: start the daylog tray app so reminders can be shown", err)
			}
			return fmt.Errorf("failed to update reminder: %w", err)
		}
	}

	ctx.Println("Settings updated successfully.")
	printSettings(ctx)
	return nil
}

func printSettings(ctx *cli.Context) {
	s := ctx.Reminders.Settings()
	ctx.Println("Reminder Settings:")
	ctx.Printf("  Enabled: %v\n", s.Enabled)
	ctx.Printf("  Time:    %s\n", s.Time)
}
