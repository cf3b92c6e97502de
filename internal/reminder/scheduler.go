// Package reminder schedules the daily journal reminder and applies reminder
// settings changes.
package reminder

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/daylog/internal/constants"
	"github.com/julianstephens/daylog/internal/logger"
	"github.com/julianstephens/daylog/internal/utils"
)

// ErrNoDeliveryChannel is returned by SendTest when nothing can show a notification.
var ErrNoDeliveryChannel = errors.New("no notification channel available")

// Sender delivers a notification. *notifier.Notifier implements it.
type Sender interface {
	Available() error
	Notify(title, body string) error
}

type stopper interface {
	Stop() bool
}

// Schedule describes the armed daily reminder.
type Schedule struct {
	Handle   string
	Hour     int
	Minute   int
	NextFire time.Time
}

// Scheduler is an in-process daily timer. Only one reminder is armed at a
// time; scheduling again replaces it.
type Scheduler struct {
	sender Sender
	skip   func() bool
	now    func() time.Time

	afterFunc func(time.Duration, func()) stopper

	mu       sync.Mutex
	timer    stopper
	schedule *Schedule
}

// NewScheduler returns a scheduler delivering through sender. When skip
// returns true at fire time the reminder is not shown (e.g. today's question
// was already answered). skip and now may be nil.
func NewScheduler(sender Sender, skip func() bool, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		sender: sender,
		skip:   skip,
		now:    now,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
	}
}

// RequestPermission reports whether notifications can currently be delivered.
func (s *Scheduler) RequestPermission() bool {
	if err := s.sender.Available(); err != nil {
		logger.Warn("Notifications unavailable", "error", err)
		return false
	}
	return true
}

// ScheduleDaily cancels any armed reminder and arms a new one firing every day
// at hour:minute local time. It returns the new schedule handle.
func (s *Scheduler) ScheduleDaily(hour, minute int) (string, bool) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		logger.Error("Error scheduling notification", "hour", hour, "minute", minute)
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	handle := uuid.NewString()
	s.armLocked(&Schedule{Handle: handle, Hour: hour, Minute: minute})
	logger.Info("Scheduled daily reminder", "time", utils.FormatClock(hour, minute), "next", s.schedule.NextFire)
	return handle, true
}

// CancelAll disarms the reminder, if any.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

// Scheduled returns the armed reminder.
func (s *Scheduler) Scheduled() (Schedule, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.schedule == nil {
		return Schedule{}, false
	}
	return *s.schedule, true
}

// SendTest delivers a test notification immediately.
func (s *Scheduler) SendTest() error {
	if err := s.sender.Available(); err != nil {
		return errors.Join(ErrNoDeliveryChannel, err)
	}
	return s.sender.Notify(constants.TestNotificationTitle, constants.TestNotificationBody)
}

func (s *Scheduler) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = nil
	s.schedule = nil
}

func (s *Scheduler) armLocked(sched *Schedule) {
	now := s.now()
	sched.NextFire = utils.NextOccurrence(now, sched.Hour, sched.Minute)
	s.schedule = sched

	handle := sched.Handle
	s.timer = s.afterFunc(sched.NextFire.Sub(now), func() { s.fire(handle) })
}

func (s *Scheduler) fire(handle string) {
	s.mu.Lock()
	if s.schedule == nil || s.schedule.Handle != handle {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	switch {
	case s.skip != nil && s.skip():
		logger.Debug("Skipping reminder, already answered today")
	default:
		if err := s.sender.Notify(constants.ReminderTitle, constants.ReminderBody); err != nil {
			logger.Error("Failed to deliver reminder", "error", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.schedule != nil && s.schedule.Handle == handle {
		s.armLocked(s.schedule)
	}
}
