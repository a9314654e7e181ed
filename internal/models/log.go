package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CompletedSet struct {
	ID     string  `json:"id"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

func NewCompletedSet(reps int, weight float64) CompletedSet {
	return CompletedSet{
		ID:     uuid.New().String(),
		Reps:   reps,
		Weight: weight,
	}
}

// Volume is reps × weight.
func (s CompletedSet) Volume() float64 {
	return float64(s.Reps) * s.Weight
}

type CompletedExercise struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Sets     []CompletedSet `json:"sets"`
	Feedback FeedbackRating `json:"feedback,omitempty"`
}

func (e CompletedExercise) TotalVolume() float64 {
	total := 0.0
	for _, s := range e.Sets {
		total += s.Volume()
	}
	return total
}

// MaxSetVolume returns the largest single-set volume, or 0 without sets.
func (e CompletedExercise) MaxSetVolume() float64 {
	best := 0.0
	for i, s := range e.Sets {
		if v := s.Volume(); i == 0 || v > best {
			best = v
		}
	}
	return best
}

// WorkoutLog is the immutable record of one finished session.
type WorkoutLog struct {
	ID                 string              `json:"id"`
	Date               time.Time           `json:"date"`
	WorkoutName        string              `json:"workout_name"`
	DurationSeconds    float64             `json:"duration_seconds"`
	CompletedExercises []CompletedExercise `json:"completed_exercises"`
	Notes              string              `json:"notes,omitempty"`
}

func (l WorkoutLog) Duration() time.Duration {
	return time.Duration(l.DurationSeconds * float64(time.Second))
}

// FormattedDuration renders the duration as "1h 2m 3s", dropping zero units.
func (l WorkoutLog) FormattedDuration() string {
	return FormatDuration(l.Duration())
}

func (l WorkoutLog) TotalVolume() float64 {
	total := 0.0
	for _, ex := range l.CompletedExercises {
		total += ex.TotalVolume()
	}
	return total
}

// Exercise returns the first completed exercise with the given name.
func (l WorkoutLog) Exercise(name string) (CompletedExercise, bool) {
	for _, ex := range l.CompletedExercises {
		if ex.Name == name {
			return ex, true
		}
	}
	return CompletedExercise{}, false
}

func FormatDuration(d time.Duration) string {
	total := int(d.Round(time.Second) / time.Second)
	if total <= 0 {
		return "0s"
	}
	h, m, s := total/3600, (total%3600)/60, total%60

	var parts []string
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	if s > 0 {
		parts = append(parts, fmt.Sprintf("%ds", s))
	}
	return strings.Join(parts, " ")
}

// FormatClock renders a duration as zero-padded HH:MM:SS.
func FormatClock(d time.Duration) string {
	total := int(d / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
