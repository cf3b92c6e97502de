package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/daylog/internal/cli"
	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/logger"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/questions"
	"github.com/julianstephens/daylog/internal/utils"
)

// NotifyCmd is meant to be run every minute from cron or a system timer.
type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
	Test   bool `help:"Send a test notification now."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if c.Test {
		if c.DryRun {
			ctx.Printf("[DryRun] %s: %s\n", constants.TestNotificationTitle, constants.TestNotificationBody)
			return nil
		}
		if err := ctx.Reminders.SendTest(); err != nil {
			return fmt.Errorf("failed to send test notification: %w", err)
		}
		ctx.Println("✓ Test notification sent")
		return nil
	}

	settings := ctx.Reminders.Settings()
	if !settings.Enabled {
		if c.DryRun {
			ctx.Println("Reminder is disabled in settings.")
		}
		return nil
	}

	now := ctx.Now()
	if !ctx.Reminders.Due(now) {
		if c.DryRun {
			ctx.Printf("Nothing to send at %s (reminder time %s).\n", utils.FormatClock(now.Hour(), now.Minute()), settings.Time)
		}
		return nil
	}

	body := reminderBody(utils.Today(now))
	if c.DryRun {
		ctx.Printf("[DryRun] %s: %s\n", constants.ReminderTitle, body)
		return nil
	}
	if err := ctx.Sender.Notify(constants.ReminderTitle, body); err != nil {
		// Cron would only mail this around; log and carry on
		logger.Warn("Failed to send reminder", "error", err)
		ctx.Printf("Failed to send notification: %v\n", err)
	}
	return nil
}

func reminderBody(date string) string {
	return constants.ReminderBody + " " + questions.ForDate(date).Text
}

// RemindCmd keeps the daily reminder armed in the foreground, following
// settings changes made from other daylog processes.
type RemindCmd struct {
	Poll time.Duration `help:"How often to re-read the reminder settings." default:"1m"`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runReminders(sigCtx, ctx, c.Poll)
}

func runReminders(runCtx context.Context, ctx *cli.Context, poll time.Duration) error {
	if poll <= 0 {
		poll = time.Minute
	}

	last := ctx.Reminders.Settings()
	if err := ctx.Reminders.Sync(); err != nil {
		return err
	}
	reportSchedule(ctx, last)

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-runCtx.Done():
			ctx.Scheduler.CancelAll()
			ctx.Println("Reminder stopped.")
			return nil
		case <-ticker.C:
			current := ctx.Reminders.Settings()
			if current == last {
				continue
			}
			last = current
			if err := ctx.Reminders.Sync(); err != nil {
				logger.Warn("Failed to reschedule reminder", "error", err)
				continue
			}
			reportSchedule(ctx, current)
		}
	}
}

func reportSchedule(ctx *cli.Context, settings models.NotificationSettings) {
	sched, ok := ctx.Scheduler.Scheduled()
	if !settings.Enabled || !ok {
		ctx.Println("Reminder is disabled; waiting for settings changes (Ctrl+C to stop).")
		return
	}
	ctx.Printf("Reminder armed for %s daily, next at %s (Ctrl+C to stop).\n",
		settings.Time, sched.NextFire.Format("Mon 2 Jan 15:04"))
}
