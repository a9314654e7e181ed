package logs

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/liftlog/internal/cli"
	"github.com/julianstephens/liftlog/internal/constants"
	"github.com/julianstephens/liftlog/internal/models"
	"github.com/julianstephens/liftlog/internal/stats"
)

type HistoryListCmd struct {
	Exercise string `help:"Only show workouts that include this exercise." short:"e"`
	Limit    int    `help:"Maximum number of workouts to show (0 for all)." default:"0"`
}

func (c *HistoryListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	all := ctx.History.History()
	position := make(map[string]int, len(all))
	for i, log := range all {
		position[log.ID] = i + 1
	}

	logs := all
	if c.Exercise != "" {
		logs = ctx.History.HistoryFor(c.Exercise)
	}
	if c.Limit > 0 && len(logs) > c.Limit {
		logs = logs[:c.Limit]
	}
	if len(logs) == 0 {
		ctx.Println("No workouts logged yet.")
		return nil
	}

	for _, group := range stats.GroupByDay(logs) {
		ctx.Printf("%s\n", group.Day.Format("Mon, 02 Jan 2006"))
		for _, log := range group.Logs {
			ctx.Printf("  %2d. %-28s %8s  %s kg\n", position[log.ID], log.WorkoutName, log.FormattedDuration(), formatVolume(log.TotalVolume()))
		}
	}
	return nil
}

type HistoryShowCmd struct {
	Index int `arg:"" help:"Workout number as shown by 'history list' (1 is the most recent)."`
}

func (c *HistoryShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	logs := ctx.History.History()
	if c.Index < 1 || c.Index > len(logs) {
		return fmt.Errorf("workout %d out of range (1-%d)", c.Index, len(logs))
	}
	log := logs[c.Index-1]

	ctx.Printf("%s  %s\n", log.WorkoutName, log.Date.Local().Format("2006-01-02 15:04"))
	ctx.Printf("Duration: %s  Volume: %s kg\n", log.FormattedDuration(), formatVolume(log.TotalVolume()))
	for _, ex := range log.CompletedExercises {
		line := "\n" + ex.Name
		if ex.Feedback != models.FeedbackNone {
			line += fmt.Sprintf("  %s %s", ex.Feedback.Glyph(), ex.Feedback.Label())
		}
		ctx.Println(line)
		for i, set := range ex.Sets {
			ctx.Printf("  %d. %d × %s kg\n", i+1, set.Reps, formatVolume(set.Weight))
		}
	}
	if log.Notes != "" {
		ctx.Printf("\nNotes: %s\n", log.Notes)
	}
	return nil
}

type HistoryClearCmd struct {
	Yes bool `help:"Confirm deleting every logged workout." short:"y"`
}

func (c *HistoryClearCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	count := len(ctx.History.History())
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete all %d logged workouts? Plans are kept.", count))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Clear cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.History.ClearHistory(); err != nil {
		return err
	}
	ctx.Printf("✓ Cleared %d workouts\n", count)
	return nil
}

type HistoryExportCmd struct {
	Format string `help:"Output format." enum:"json,yaml,csv" default:"json"`
	Output string `help:"Write to this file instead of stdout." short:"o" type:"path"`
}

func (c *HistoryExportCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	var w io.Writer = ctx.Out
	if w == nil {
		w = os.Stdout
	}
	if c.Output != "" {
		f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := Export(w, ctx.History.History(), c.Format); err != nil {
		return err
	}
	if c.Output != "" {
		ctx.Printf("✓ Exported %d workouts to %s\n", len(ctx.History.History()), c.Output)
	}
	return nil
}

// Export writes logs as json, yaml or csv. The csv form has one row per set.
func Export(w io.Writer, logs []models.WorkoutLog, format string) error {
	switch strings.ToLower(format) {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(logs)
	case "yaml":
		// Round-trip through JSON so keys match the stored field names.
		data, err := json.Marshal(logs)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	case "csv":
		return exportCSV(w, logs)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
}

func exportCSV(w io.Writer, logs []models.WorkoutLog) error {
	cw := csv.NewWriter(w)
	header := []string{"date", "workout", "duration_seconds", "exercise", "set", "reps", "weight", "feedback"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, log := range logs {
		for _, ex := range log.CompletedExercises {
			for i, set := range ex.Sets {
				row := []string{
					log.Date.Format(constants.DateFormat),
					log.WorkoutName,
					strconv.FormatFloat(log.DurationSeconds, 'f', -1, 64),
					ex.Name,
					strconv.Itoa(i + 1),
					strconv.Itoa(set.Reps),
					strconv.FormatFloat(set.Weight, 'f', -1, 64),
					string(ex.Feedback),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatVolume(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
