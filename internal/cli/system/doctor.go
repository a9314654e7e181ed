package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/liftlog/internal/cli"
	"github.com/julianstephens/liftlog/internal/constants"
	"github.com/julianstephens/liftlog/internal/keyring"
	"github.com/julianstephens/liftlog/internal/migration"
	"github.com/julianstephens/liftlog/internal/notifier"
	"github.com/julianstephens/liftlog/internal/storage"
	"github.com/julianstephens/liftlog/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	// opens marks the check that loads storage for the ones after it.
	opens bool
	// needsStorage checks are skipped when storage cannot be loaded.
	needsStorage bool
	// warn marks checks whose failure does not fail the command.
	warn bool
	run  func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Storage reachable", opens: true, run: checkStorageReachable},
	{name: "Schema version", needsStorage: true, run: checkSchemaVersion},
	{name: "Stored data readable", needsStorage: true, run: checkStoredData},
	{name: "Plan validation", needsStorage: true, warn: true, run: checkPlans},
	{name: "Backups present", warn: true, run: checkBackupsPresent},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Tray notifier", warn: true, run: checkTray},
	{name: "OS keyring", warn: true, run: checkKeyring},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := false
	for _, c := range checks {
		if c.needsStorage && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
			reachable = reachable || c.opens
		case c.warn:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Store.Keys(); err != nil {
		return fmt.Errorf("failed to query storage: %w", err)
	}
	return nil
}

type migrator interface {
	Migrations() (*migration.Runner, error)
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}
	runner, err := m.Migrations()
	if err != nil {
		return err
	}

	current, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	switch {
	case current > latest:
		return fmt.Errorf("schema version (%d) is newer than supported version (%d)", current, latest)
	case current < latest:
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

// checkStoredData reports blobs that would be replaced by defaults on load.
func checkStoredData(ctx *cli.Context) error {
	var corrupt []string
	for _, key := range []string{constants.WorkoutsKey, constants.HistoryKey, constants.SettingsKey} {
		data, err := ctx.Store.Get(key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !json.Valid(data) {
			corrupt = append(corrupt, key)
		}
	}
	if len(corrupt) > 0 {
		return fmt.Errorf("unreadable entries will be reset to defaults: %v", corrupt)
	}
	return nil
}

func checkPlans(ctx *cli.Context) error {
	result := validation.New().ValidatePlans(ctx.History.Workouts())
	if result.HasConflicts() {
		return fmt.Errorf("%d plan warnings, run 'liftlog plan show' for details", len(result.Conflicts))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	if mgr == nil {
		return nil
	}
	list, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(list) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'liftlog backup create'")
	}
	return nil
}

func checkClockTimezone(*cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if now.Location() == nil {
		return fmt.Errorf("no local timezone configured")
	}
	return nil
}

func checkTray(ctx *cli.Context) error {
	settings := ctx.Settings()
	if !settings.NotificationsEnabled || !settings.RestAlerts {
		return nil
	}
	if err := notifier.TrayRunning(); err != nil {
		return fmt.Errorf("rest alerts are enabled but %v", err)
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}
