package plans

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/liftlog/internal/cli"
	"github.com/julianstephens/liftlog/internal/models"
)

// resolvePlan accepts a 1-based position, a full id, an id prefix of at
// least four characters, or a case-insensitive name.
func resolvePlan(ctx *cli.Context, ref string) (models.WorkoutPlan, error) {
	plans := ctx.History.Workouts()
	ref = strings.TrimSpace(ref)

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(plans) {
			return models.WorkoutPlan{}, fmt.Errorf("plan %d out of range (1-%d)", n, len(plans))
		}
		return plans[n-1], nil
	}

	var matches []models.WorkoutPlan
	for _, p := range plans {
		if p.ID == ref || strings.EqualFold(p.Name, ref) {
			return p, nil
		}
		if len(ref) >= 4 && strings.HasPrefix(p.ID, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return models.WorkoutPlan{}, fmt.Errorf("plan not found: %s", ref)
	case 1:
		return matches[0], nil
	default:
		return models.WorkoutPlan{}, fmt.Errorf("plan reference %q is ambiguous", ref)
	}
}

// exerciseIndex accepts a 1-based position or a case-insensitive name.
func exerciseIndex(plan models.WorkoutPlan, ref string) (int, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(plan.Exercises) {
			return 0, fmt.Errorf("exercise %d out of range (1-%d)", n, len(plan.Exercises))
		}
		return n - 1, nil
	}
	for i, ex := range plan.Exercises {
		if strings.EqualFold(ex.Name, strings.TrimSpace(ref)) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("exercise not found in %s: %s", plan.Name, ref)
}

func setIndex(ex models.ExercisePlan, n int) (int, error) {
	if n < 1 || n > len(ex.Sets) {
		return 0, fmt.Errorf("set %d out of range (1-%d)", n, len(ex.Sets))
	}
	return n - 1, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// SetValues carries optional reps, weight and rest flags.
type SetValues struct {
	Reps   *int     `help:"Repetitions." short:"r"`
	Weight *float64 `help:"Weight in kg." short:"w"`
	Rest   *int     `help:"Rest after the set in seconds (0 disables the countdown)."`
}

func (v SetValues) validate() error {
	if v.Reps != nil && *v.Reps < 0 {
		return fmt.Errorf("reps must not be negative")
	}
	if v.Weight != nil && *v.Weight < 0 {
		return fmt.Errorf("weight must not be negative")
	}
	if v.Rest != nil && *v.Rest < 0 {
		return fmt.Errorf("rest must not be negative")
	}
	return nil
}

func (v SetValues) apply(set *models.PlannedSet) bool {
	changed := false
	if v.Reps != nil {
		set.Reps = *v.Reps
		changed = true
	}
	if v.Weight != nil {
		set.Weight = *v.Weight
		changed = true
	}
	if v.Rest != nil {
		set.RestSeconds = *v.Rest
		changed = true
	}
	return changed
}
