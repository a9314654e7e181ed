package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/liftlog/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictEmptyPlanName         ConflictType = "empty_plan_name"
	ConflictDuplicatePlanName     ConflictType = "duplicate_plan_name"
	ConflictEmptyExerciseName     ConflictType = "empty_exercise_name"
	ConflictDuplicateExerciseName ConflictType = "duplicate_exercise_name"
	ConflictExerciseWithoutSets   ConflictType = "exercise_without_sets"
	ConflictNegativeReps          ConflictType = "negative_reps"
	ConflictNegativeWeight        ConflictType = "negative_weight"
	ConflictNegativeRest          ConflictType = "negative_rest"
)

// Conflict represents a problem found in a plan. Conflicts are warnings;
// plans with conflicts can still be saved and run.
type Conflict struct {
	Type        ConflictType
	Description string
	Plan        string   // plan name
	PlanID      string   // plan id
	Items       []string // exercise names involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// ForPlan returns the conflicts raised for one plan.
func (vr *ValidationResult) ForPlan(planID string) []Conflict {
	var out []Conflict
	for _, c := range vr.Conflicts {
		if c.PlanID == planID {
			out = append(out, c)
		}
	}
	return out
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks workout plans for suspicious values
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidatePlans checks every plan and the plan list as a whole.
func (v *Validator) ValidatePlans(plans []models.WorkoutPlan) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	names := make(map[string][]string)
	for _, plan := range plans {
		if name := strings.TrimSpace(plan.Name); name != "" {
			names[name] = append(names[name], plan.ID)
		}
		result.Conflicts = append(result.Conflicts, v.ValidatePlan(plan).Conflicts...)
	}

	dupes := make([]string, 0)
	for name, ids := range names {
		if len(ids) > 1 {
			dupes = append(dupes, name)
		}
	}
	sort.Strings(dupes)
	for _, name := range dupes {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicatePlanName,
			Description: fmt.Sprintf("Duplicate plan name: \"%s\" (%d plans)", name, len(names[name])),
			Plan:        name,
		})
	}

	return result
}

// ValidatePlan checks a single plan.
func (v *Validator) ValidatePlan(plan models.WorkoutPlan) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	add := func(t ConflictType, desc string, items ...string) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        t,
			Description: desc,
			Plan:        plan.Name,
			PlanID:      plan.ID,
			Items:       items,
		})
	}

	label := plan.Name
	if strings.TrimSpace(plan.Name) == "" {
		label = "(unnamed)"
		add(ConflictEmptyPlanName, fmt.Sprintf("Plan %s has no name", plan.ID))
	}

	seen := make(map[string]bool)
	for i, ex := range plan.Exercises {
		name := strings.TrimSpace(ex.Name)
		if name == "" {
			add(ConflictEmptyExerciseName, fmt.Sprintf("Plan \"%s\": exercise %d has no name", label, i+1))
		} else {
			key := strings.ToLower(name)
			if seen[key] {
				add(ConflictDuplicateExerciseName, fmt.Sprintf("Plan \"%s\": exercise \"%s\" appears more than once", label, name), name)
			}
			seen[key] = true
		}

		if len(ex.Sets) == 0 {
			add(ConflictExerciseWithoutSets, fmt.Sprintf("Plan \"%s\": exercise \"%s\" has no sets", label, ex.Name), ex.Name)
		}

		for j, set := range ex.Sets {
			where := fmt.Sprintf("Plan \"%s\": %s set %d", label, ex.Name, j+1)
			if set.Reps < 0 {
				add(ConflictNegativeReps, fmt.Sprintf("%s has negative reps (%d)", where, set.Reps), ex.Name)
			}
			if set.Weight < 0 {
				add(ConflictNegativeWeight, fmt.Sprintf("%s has negative weight (%g)", where, set.Weight), ex.Name)
			}
			if set.RestSeconds < 0 {
				add(ConflictNegativeRest, fmt.Sprintf("%s has negative rest (%ds)", where, set.RestSeconds), ex.Name)
			}
		}
	}

	return result
}
