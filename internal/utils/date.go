package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/daylog/internal/constants"
)

// Today returns the date identifier (YYYY-MM-DD) for now in its own location.
// It changes exactly at local midnight.
func Today(now time.Time) string {
	return now.Format(constants.DateFormat)
}

// ParseDate parses a date identifier at midnight in the local timezone.
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(constants.DateFormat, date, time.Local)
}

// IsValidDate reports whether date is a well-formed YYYY-MM-DD identifier.
func IsValidDate(date string) bool {
	_, err := ParseDate(date)
	return err == nil
}

// FormatDisplayDate renders a date identifier as "2 January 2006, Monday".
// Input that is not a date identifier is returned unchanged.
func FormatDisplayDate(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format(constants.DisplayDateFormat)
}

// FormatShortDate renders a date identifier as "2 Jan".
func FormatShortDate(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format(constants.ShortDateFormat)
}

// ParseClock splits an HH:MM (24h) string into hour and minute.
func ParseClock(clock string) (hour, minute int, err error) {
	if len(clock) != len(constants.TimeFormat) {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", clock)
	}
	t, err := time.Parse(constants.TimeFormat, clock)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM: %w", clock, err)
	}
	return t.Hour(), t.Minute(), nil
}

// FormatClock renders hour and minute as HH:MM.
func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// NextOccurrence returns the first time strictly after now whose local wall
// clock reads hour:minute.
func NextOccurrence(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
