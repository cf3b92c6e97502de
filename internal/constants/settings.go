package constants

const (
	// Default notification settings, used whenever no settings record exists
	// or the stored one cannot be read.
	DefaultNotificationsEnabled = false
	DefaultNotificationTime     = "20:00"
)
