package reminder

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/daylog/internal/journal"
	"github.com/julianstephens/daylog/internal/logger"
	"github.com/julianstephens/daylog/internal/models"
	"github.com/julianstephens/daylog/internal/utils"
	"github.com/julianstephens/daylog/internal/validation"
)

var (
	ErrPermissionDenied = errors.New("notification permission denied")
	ErrScheduleFailed   = errors.New("failed to schedule daily reminder")
)

// Notifications is the scheduling boundary the settings flows depend on.
type Notifications interface {
	RequestPermission() bool
	ScheduleDaily(hour, minute int) (string, bool)
	CancelAll()
	SendTest() error
}

// Service applies reminder settings changes: it persists them through the
// settings repository and keeps the scheduler in step.
type Service struct {
	settings      *journal.SettingsRepository
	answers       *journal.AnswerRepository
	notifications Notifications
}

func NewService(settings *journal.SettingsRepository, answers *journal.AnswerRepository, notifications Notifications) *Service {
	return &Service{
		settings:      settings,
		answers:       answers,
		notifications: notifications,
	}
}

// Settings returns the stored reminder settings.
func (s *Service) Settings() models.NotificationSettings {
	return s.settings.GetSettings()
}

func (s *Service) schedule(clock string) error {
	hour, minute, err := utils.ParseClock(clock)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrScheduleFailed, err)
	}
	if _, ok := s.notifications.ScheduleDaily(hour, minute); !ok {
		return ErrScheduleFailed
	}
	return nil
}

// SetEnabled turns the reminder on or off. Enabling asks for permission and
// schedules first; the stored settings change only if both succeed.
func (s *Service) SetEnabled(enabled bool) error {
	current := s.settings.GetSettings()

	if !enabled {
		s.notifications.CancelAll()
		current.Enabled = false
		return s.settings.SaveSettings(current)
	}

	if !s.notifications.RequestPermission() {
		return ErrPermissionDenied
	}
	if err := s.schedule(current.Time); err != nil {
		return err
	}

	current.Enabled = true
	if err := s.settings.SaveSettings(current); err != nil {
		s.notifications.CancelAll()
		return err
	}
	logger.Info("Reminder enabled", "time", current.Time)
	return nil
}

// SetTime stores a new HH:MM reminder time and reschedules when enabled.
func (s *Service) SetTime(clock string) error {
	if err := validation.Clock(clock); err != nil {
		return err
	}

	current := s.settings.GetSettings()
	current.Time = clock
	if err := s.settings.SaveSettings(current); err != nil {
		return err
	}

	if current.Enabled {
		return s.schedule(clock)
	}
	return nil
}

// Sync arms or disarms the scheduler to match the stored settings.
func (s *Service) Sync() error {
	current := s.settings.GetSettings()
	if !current.Enabled {
		s.notifications.CancelAll()
		return nil
	}
	return s.schedule(current.Time)
}

// SendTest delivers one test notification now.
func (s *Service) SendTest() error {
	return s.notifications.SendTest()
}

// Due reports whether the reminder should be shown in the minute containing
// now: it is enabled, the clock matches and today has no answer yet.
func (s *Service) Due(now time.Time) bool {
	current := s.settings.GetSettings()
	if !current.Enabled {
		return false
	}
	if utils.FormatClock(now.Hour(), now.Minute()) != current.Time {
		return false
	}
	_, answered := s.answers.GetAnswer(utils.Today(now))
	return !answered
}
