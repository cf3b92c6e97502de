package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/daylog/internal/backup"
	"github.com/julianstephens/daylog/internal/journal"
	"github.com/julianstephens/daylog/internal/logger"
	"github.com/julianstephens/daylog/internal/reminder"
	"github.com/julianstephens/daylog/internal/storage"
	"github.com/julianstephens/daylog/internal/storage/sqlite"
)

// Context is handed to every command's Run method.
type Context struct {
	Store storage.Provider
	Clock journal.Clock

	Answers  *journal.AnswerRepository
	Settings *journal.SettingsRepository
	Users    *journal.UserRepository
	Session  *journal.Session

	Sender    reminder.Sender
	Scheduler *reminder.Scheduler
	Reminders *reminder.Service

	Out io.Writer
	In  io.Reader
}

// NewContext wires the repositories and the reminder machinery over store.
// clock may be nil.
func NewContext(store storage.Provider, sender reminder.Sender, clock journal.Clock) *Context {
	answers := journal.NewAnswerRepository(store, clock)
	settings := journal.NewSettingsRepository(store)
	users := journal.NewUserRepository(store)

	answeredToday := func() bool {
		_, ok := answers.GetTodayAnswer()
		return ok
	}
	sched := reminder.NewScheduler(sender, answeredToday, clock)

	return &Context{
		Store:     store,
		Clock:     clock,
		Answers:   answers,
		Settings:  settings,
		Users:     users,
		Session:   journal.NewSession(users, clock),
		Sender:    sender,
		Scheduler: sched,
		Reminders: reminder.NewService(settings, answers, sched),
		Out:       os.Stdout,
		In:        os.Stdin,
	}
}

// Now returns the current time according to the context clock.
func (c *Context) Now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// Printf writes to the command output.
func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

// Println writes a line to the command output.
func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Confirm asks a yes/no question on the command input. Anything but y or yes is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// PerformAutomaticBackup snapshots a SQLite journal and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Don't interrupt the user's workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}
