package models

// Settings represents application-wide settings
type Settings struct {
	NotificationsEnabled bool   `json:"notifications_enabled"` // master switch for every external surface
	RestAlerts           bool   `json:"rest_alerts"`           // deliver an alert when a rest period ends
	LiveStatus           bool   `json:"live_status"`           // keep the status file updated during a session
	StatusFile           string `json:"status_file,omitempty"` // overrides <configdir>/status.json
	DefaultRestSeconds   int    `json:"default_rest_seconds"`  // rest used for newly added sets
}
