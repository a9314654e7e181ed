package settings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/liftlog/internal/cli"
	"github.com/julianstephens/liftlog/internal/constants"
	"github.com/julianstephens/liftlog/internal/models"
	"github.com/julianstephens/liftlog/internal/storage"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	NotificationsEnabled *bool   `help:"Enable or disable all notifications."`
	RestAlerts           *bool   `help:"Alert when a rest period ends."`
	LiveStatus           *bool   `help:"Keep the live status file updated during a workout."`
	StatusFile           *string `help:"Path of the live status file (empty for the default)."`
	DefaultRestSeconds   *int    `help:"Rest in seconds for newly added sets."`

	Set []string `help:"Set a value by key, e.g. --set rest_alerts=false." placeholder:"KEY=VALUE"`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := storage.LoadSettings(ctx.Store)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		values := models.SettingsToMap(settings)
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		ctx.Println("Current Settings:")
		for _, k := range keys {
			v := values[k]
			if k == constants.SettingStatusFile && v == "" {
				v = "(default) " + ctx.StatusPath(settings)
			}
			ctx.Printf("  %-22s %s\n", k+":", v)
		}
		return nil
	}

	updated := false
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.RestAlerts != nil {
		settings.RestAlerts = *c.RestAlerts
		updated = true
	}
	if c.LiveStatus != nil {
		settings.LiveStatus = *c.LiveStatus
		updated = true
	}
	if c.StatusFile != nil {
		settings.StatusFile = *c.StatusFile
		updated = true
	}
	if c.DefaultRestSeconds != nil {
		if *c.DefaultRestSeconds < 0 {
			return fmt.Errorf("default rest must not be negative")
		}
		settings.DefaultRestSeconds = *c.DefaultRestSeconds
		updated = true
	}
	for _, kv := range c.Set {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return fmt.Errorf("invalid setting %q, expected KEY=VALUE", kv)
		}
		if err := models.ApplySetting(&settings, key, value); err != nil {
			return err
		}
		updated = true
	}

	if updated {
		if err := storage.SaveSettings(ctx.Store, settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
