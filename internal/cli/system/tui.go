package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daylog/internal/cli"
	"github.com/julianstephens/daylog/internal/logger"
	"github.com/julianstephens/daylog/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	// Keep the reminder armed for as long as the TUI is open
	if err := ctx.Reminders.Sync(); err != nil {
		logger.Warn("Failed to arm reminder", "error", err)
	}
	defer ctx.Scheduler.CancelAll()

	model := tui.NewModel(tui.Deps{
		Answers:   ctx.Answers,
		Reminders: ctx.Reminders,
		Session:   ctx.Session,
		Clock:     ctx.Clock,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
