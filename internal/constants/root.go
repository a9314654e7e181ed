package constants

import "time"

// SessionState represents the current view of the TUI application
type SessionState int

const (
	AppName            = "liftlog"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/liftlog"
	DefaultConfigPath  = "~/.config/liftlog/liftlog.db"
	DefaultConfigFile  = "~/.config/liftlog/config.yaml"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Storage keys. Each holds one independently persisted JSON blob.
	WorkoutsKey = "workoutStore_workouts"
	HistoryKey  = "workoutStore_history"
	SettingsKey = "settings"

	// Planned set defaults
	DefaultReps        = 10
	DefaultWeight      = 20.0
	DefaultRestSeconds = 60

	// Session timing
	TickInterval = time.Second

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "liftlog-"
	BackupFileSuffix = ".db"

	// Notify constants
	TrayExecutablePrefix   = "liftlog-tray"
	NotifierLockfileName   = "liftlog-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.liftlog"
	RestAlertID            = "rest-timer"
	StatusFileName         = "status.json"
)

// View states
const (
	StateWorkouts SessionState = iota
	StateSession
	StateHistory
	StateStats
	StateSettings
	StateEditing
	StateNotes
	StateConfirmation
)
