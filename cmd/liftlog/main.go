package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/liftlog/internal/cli"
	"github.com/julianstephens/liftlog/internal/cli/backups"
	"github.com/julianstephens/liftlog/internal/cli/logs"
	"github.com/julianstephens/liftlog/internal/cli/plans"
	"github.com/julianstephens/liftlog/internal/cli/settings"
	"github.com/julianstephens/liftlog/internal/cli/system"
	"github.com/julianstephens/liftlog/internal/config"
	"github.com/julianstephens/liftlog/internal/constants"
	"github.com/julianstephens/liftlog/internal/errors"
	"github.com/julianstephens/liftlog/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"${config_file}"`
	Storage string `help:"Storage path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use LIFTLOG_DB_CONNECTION, .pgpass, or the OS keyring instead." type:"string"`
	Debug   bool   `help:"Mirror logs to stderr at debug level."`

	Init   system.InitCmd   `cmd:"" help:"Initialize liftlog storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Status system.StatusCmd `cmd:"" help:"Show the running workout, if any."`
	Plan   struct {
		List     plans.PlanListCmd   `cmd:"" help:"List workout plans." default:"1"`
		Show     plans.PlanShowCmd   `cmd:"" help:"Show a plan with its last performance."`
		Add      plans.PlanAddCmd    `cmd:"" help:"Create a plan."`
		Clone    plans.PlanCloneCmd  `cmd:"" help:"Duplicate a plan."`
		Rename   plans.PlanRenameCmd `cmd:"" help:"Rename a plan."`
		Move     plans.PlanMoveCmd   `cmd:"" help:"Change a plan's position."`
		Delete   plans.PlanDeleteCmd `cmd:"" help:"Delete a plan."`
		Exercise struct {
			Add    plans.ExerciseAddCmd    `cmd:"" help:"Add an exercise to a plan."`
			Remove plans.ExerciseRemoveCmd `cmd:"" help:"Remove an exercise from a plan."`
		} `cmd:"" help:"Manage a plan's exercises."`
		Set struct {
			Add    plans.SetAddCmd    `cmd:"" help:"Append a set to an exercise."`
			Remove plans.SetRemoveCmd `cmd:"" help:"Remove a set from an exercise."`
			Edit   plans.SetEditCmd   `cmd:"" help:"Change reps, weight or rest of a set."`
		} `cmd:"" help:"Manage an exercise's sets."`
	} `cmd:"" help:"Manage workout plans."`
	History struct {
		List   logs.HistoryListCmd   `cmd:"" help:"List logged workouts by day." default:"1"`
		Show   logs.HistoryShowCmd   `cmd:"" help:"Show one logged workout."`
		Clear  logs.HistoryClearCmd  `cmd:"" help:"Delete every logged workout."`
		Export logs.HistoryExportCmd `cmd:"" help:"Export logged workouts."`
	} `cmd:"" help:"Review logged workouts."`
	Stats    logs.StatsCmd        `cmd:"" help:"Show progress statistics."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage storage backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Report where the connection string comes from."`
	} `cmd:"" help:"Manage the database connection secret."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Send a notification (used internally)."`
}

// Commands that manage storage themselves, or never touch it.
var skipLoad = []string{"init", "doctor", "keyring"}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Workout tracker: plans, live sessions with rest timers, and progress history"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	configDir, err := config.Dir()
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug || cfg.Debug,
		ConfigDir: configDir,
		Level:     cfg.LogLevel,
	}); err != nil {
		errors.Fatal(err)
	}

	location, trusted := cli.ResolveLocation(CLI.Storage, cfg)
	store, err := cli.OpenProvider(location, trusted)
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	command := ctx.Command()
	logger.Debug("running command", "command", command, "storage", store.GetConfigPath())

	load := true
	for _, name := range skipLoad {
		if command == name || strings.HasPrefix(command, name+" ") {
			load = false
		}
	}
	if load {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	appCtx := cli.NewContext(store, cfg)
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}
