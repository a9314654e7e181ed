package constants

const (
	SettingNotificationsEnabled = "notifications_enabled"
	SettingRestAlerts           = "rest_alerts"
	SettingLiveStatus           = "live_status"
	SettingStatusFile           = "status_file"
	SettingDefaultRestSeconds   = "default_rest_seconds"

	// Default Settings Values
	DefaultNotificationsEnabled = true
	DefaultRestAlerts           = true
	DefaultLiveStatus           = true
)
