// Package stats derives progress figures from workout history.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/liftlog/internal/models"
)

// VolumePoint is the heaviest single-set volume of one workout.
type VolumePoint struct {
	Index        int // 1-based, oldest workout first
	Date         time.Time
	MaxSetVolume float64
}

type ExerciseStats struct {
	Name         string
	Points       []VolumePoint
	MaxSetVolume float64
	RecordSet    *models.CompletedSet // heaviest set by weight
	Sessions     int
	TotalVolume  float64
}

// ChartAvailable reports whether there are enough points to draw a trend.
func (s ExerciseStats) ChartAvailable() bool {
	return len(s.Points) > 1
}

// ForExercise computes the stats for one exercise name. history may be in
// any order; points come out oldest first.
func ForExercise(history []models.WorkoutLog, name string) ExerciseStats {
	stats := ExerciseStats{Name: name}

	var logs []models.WorkoutLog
	for _, log := range history {
		if _, ok := log.Exercise(name); ok {
			logs = append(logs, log)
		}
	}
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].Date.Before(logs[j].Date) })

	for i, log := range logs {
		ex, _ := log.Exercise(name)
		point := VolumePoint{Index: i + 1, Date: log.Date, MaxSetVolume: ex.MaxSetVolume()}
		stats.Points = append(stats.Points, point)
		if point.MaxSetVolume > stats.MaxSetVolume {
			stats.MaxSetVolume = point.MaxSetVolume
		}
		stats.TotalVolume += ex.TotalVolume()
	}
	stats.Sessions = len(logs)

	// Ties keep the most recent set.
	for i := len(logs) - 1; i >= 0; i-- {
		ex, _ := logs[i].Exercise(name)
		for _, set := range ex.Sets {
			if stats.RecordSet == nil || set.Weight > stats.RecordSet.Weight {
				record := set
				stats.RecordSet = &record
			}
		}
	}

	return stats
}

// DayGroup holds the workouts logged on one calendar day.
type DayGroup struct {
	Day  time.Time // midnight, local time
	Logs []models.WorkoutLog
}

// GroupByDay buckets logs by local calendar day, most recent day first.
// Within a day the input order is kept.
func GroupByDay(history []models.WorkoutLog) []DayGroup {
	index := make(map[time.Time]int)
	var groups []DayGroup
	for _, log := range history {
		local := log.Date.Local()
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, DayGroup{Day: day})
		}
		groups[i].Logs = append(groups[i].Logs, log)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Day.After(groups[j].Day) })
	return groups
}

type Totals struct {
	Workouts  int
	Sets      int
	Volume    float64
	Duration  time.Duration
	Exercises int // distinct names
}

// Summary totals the whole history.
func Summary(history []models.WorkoutLog) Totals {
	var t Totals
	names := make(map[string]struct{})
	for _, log := range history {
		t.Workouts++
		t.Volume += log.TotalVolume()
		t.Duration += log.Duration()
		for _, ex := range log.CompletedExercises {
			t.Sets += len(ex.Sets)
			names[ex.Name] = struct{}{}
		}
	}
	t.Exercises = len(names)
	return t
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders the max-set volumes as a one-line bar chart.
func Sparkline(points []VolumePoint) string {
	if len(points) == 0 {
		return ""
	}
	lo, hi := points[0].MaxSetVolume, points[0].MaxSetVolume
	for _, p := range points {
		if p.MaxSetVolume < lo {
			lo = p.MaxSetVolume
		}
		if p.MaxSetVolume > hi {
			hi = p.MaxSetVolume
		}
	}

	var b strings.Builder
	for _, p := range points {
		level := len(sparkLevels) / 2
		if hi > lo {
			level = int((p.MaxSetVolume - lo) / (hi - lo) * float64(len(sparkLevels)-1))
		}
		b.WriteRune(sparkLevels[level])
	}
	return b.String()
}
