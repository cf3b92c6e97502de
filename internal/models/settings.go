package models

import "github.com/julianstephens/daylog/internal/constants"

// NotificationSettings controls the daily reminder.
type NotificationSettings struct {
	Enabled bool   `json:"enabled"` // whether the daily reminder is on
	Time    string `json:"time"`    // local wall-clock time in HH:MM, 24-hour
}

// DefaultNotificationSettings returns the record used when nothing has been saved yet.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled: constants.DefaultNotificationsEnabled,
		Time:    constants.DefaultNotificationTime,
	}
}

// ApplyDefaultSettings fills in missing values.
func ApplyDefaultSettings(settings *NotificationSettings) {
	if settings.Time == "" {
		settings.Time = constants.DefaultNotificationTime
	}
}
