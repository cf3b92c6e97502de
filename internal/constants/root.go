package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "daylog"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/daylog/daylog.db"
	Version            = "v0.3.0"

	// Environment overrides
	EnvConfig       = "DAYLOG_CONFIG"
	EnvDBConnection = "DAYLOG_DB_CONNECTION"

	// Store keys. Each record is an independently keyed JSON blob.
	AnswersKey  = "@daily_journal_answers"
	SettingsKey = "@daily_journal_settings"
	UserKey     = "@daily_journal_user"

	// GuestIDPrefix prefixes synthetic ids handed out by continue-as-guest.
	GuestIDPrefix = "guest_"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "daylog-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "daylog-notifier.lock"
	NotificationDurationMs = 5000
	NotificationTimeout    = 5 * time.Second
	TrayAppIdentifier      = "com.julianstephens.daylog"
	TrayExecutablePrefix   = "daylog-tray"
	ReminderTitle          = "🌟 Today's question is ready!"
	ReminderBody           = "Time to record your daily thoughts."
	TestNotificationTitle  = "🧪 Test notification"
	TestNotificationBody   = "Notifications are working!"

	// Redis
	RedisKeyPrefix   = "daylog:"
	RedisCallTimeout = 5 * time.Second
)

// Session States
const (
	StateToday SessionState = iota
	StateHistory
	StateSettings
	StateAuth
	StateEditSettings
	StateConfirmDelete
)

// NumMainTabs is the number of tab states at the start of SessionState.
const NumMainTabs = 3
