package logs

import (
	"strings"

	"github.com/julianstephens/liftlog/internal/cli"
	"github.com/julianstephens/liftlog/internal/models"
	"github.com/julianstephens/liftlog/internal/stats"
)

type StatsCmd struct {
	Exercise string `arg:"" optional:"" help:"Exercise to chart. Omit for an overview."`
	Search   string `help:"Filter the exercise list (case-insensitive)." short:"s"`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	if strings.TrimSpace(c.Exercise) == "" {
		return c.overview(ctx)
	}
	return c.exercise(ctx, strings.TrimSpace(c.Exercise))
}

func (c *StatsCmd) overview(ctx *cli.Context) error {
	totals := stats.Summary(ctx.History.History())
	ctx.Printf("Workouts:  %d\n", totals.Workouts)
	ctx.Printf("Sets:      %d\n", totals.Sets)
	ctx.Printf("Volume:    %s kg\n", formatVolume(totals.Volume))
	ctx.Printf("Time:      %s\n", models.FormatDuration(totals.Duration))

	names := ctx.History.ExerciseNames(c.Search)
	if len(names) == 0 {
		if c.Search != "" {
			ctx.Printf("\nNo exercises match %q.\n", c.Search)
		}
		return nil
	}
	ctx.Printf("\nExercises (%d):\n", len(names))
	for _, name := range names {
		ctx.Printf("  %s\n", name)
	}
	return nil
}

func (c *StatsCmd) exercise(ctx *cli.Context, name string) error {
	// Match the stored spelling so lookups are case-insensitive.
	for _, known := range ctx.History.ExerciseNames("") {
		if strings.EqualFold(known, name) {
			name = known
			break
		}
	}

	s := stats.ForExercise(ctx.History.History(), name)
	if s.Sessions == 0 {
		ctx.Printf("No history for %s.\n", name)
		return nil
	}

	ctx.Printf("%s\n", s.Name)
	ctx.Printf("Sessions:        %d\n", s.Sessions)
	ctx.Printf("Total volume:    %s kg\n", formatVolume(s.TotalVolume))
	ctx.Printf("Best set volume: %s kg\n", formatVolume(s.MaxSetVolume))
	if s.RecordSet != nil {
		ctx.Printf("Heaviest set:    %d × %s kg\n", s.RecordSet.Reps, formatVolume(s.RecordSet.Weight))
	}

	if !s.ChartAvailable() {
		ctx.Println("\nLog at least two workouts with this exercise to see a trend.")
		return nil
	}
	ctx.Printf("\nTrend: %s\n", stats.Sparkline(s.Points))
	for _, p := range s.Points {
		ctx.Printf("  %2d. %s  %s kg\n", p.Index, p.Date.Local().Format("2006-01-02"), formatVolume(p.MaxSetVolume))
	}
	return nil
}
