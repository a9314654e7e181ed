package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/liftlog/internal/constants"
)

// DefaultSettings returns the settings used before the user changes anything.
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		RestAlerts:           constants.DefaultRestAlerts,
		LiveStatus:           constants.DefaultLiveStatus,
		DefaultRestSeconds:   constants.DefaultRestSeconds,
	}
}

// ApplyDefaultSettings replaces values that can never be valid. Zero rest is
// a real choice and is kept.
func ApplyDefaultSettings(settings *Settings) {
	if settings.DefaultRestSeconds < 0 {
		settings.DefaultRestSeconds = constants.DefaultRestSeconds
	}
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingNotificationsEnabled: fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingRestAlerts:           fmt.Sprintf("%v", settings.RestAlerts),
		constants.SettingLiveStatus:           fmt.Sprintf("%v", settings.LiveStatus),
		constants.SettingStatusFile:           settings.StatusFile,
		constants.SettingDefaultRestSeconds:   fmt.Sprintf("%d", settings.DefaultRestSeconds),
	}
}

// ApplySetting sets a single named setting from its string form.
func ApplySetting(settings *Settings, key, value string) error {
	switch key {
	case constants.SettingNotificationsEnabled, constants.SettingRestAlerts, constants.SettingLiveStatus:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		switch key {
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = b
		case constants.SettingRestAlerts:
			settings.RestAlerts = b
		default:
			settings.LiveStatus = b
		}
	case constants.SettingStatusFile:
		settings.StatusFile = value
	case constants.SettingDefaultRestSeconds:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", key, err)
		}
		if n < 0 {
			return fmt.Errorf("%s must not be negative", key)
		}
		settings.DefaultRestSeconds = n
	default:
		return fmt.Errorf("unknown setting: %s", key)
	}
	return nil
}
