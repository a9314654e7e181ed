package models

import (
	"testing"

	"github.com/julianstephens/liftlog/internal/constants"
)

func TestNewPlannedSetDefaults(t *testing.T) {
	set := NewPlannedSet()
	if set.ID == "" {
		t.Error("NewPlannedSet() returned an empty id")
	}
	if set.Reps != constants.DefaultReps || set.Weight != constants.DefaultWeight || set.RestSeconds != constants.DefaultRestSeconds {
		t.Errorf("NewPlannedSet() = %+v, want defaults 10/20/60", set)
	}
}

func TestExercisePlan_AddSet(t *testing.T) {
	t.Run("empty exercise gets defaults", func(t *testing.T) {
		ex := ExercisePlan{Name: "Squat"}
		set := ex.AddSet()
		if len(ex.Sets) != 1 {
			t.Fatalf("len(Sets) = %d, want 1", len(ex.Sets))
		}
		if set.Reps != constants.DefaultReps {
			t.Errorf("Reps = %d, want %d", set.Reps, constants.DefaultReps)
		}
	})

	t.Run("copies last set with a new id", func(t *testing.T) {
		ex := ExercisePlan{Name: "Squat", Sets: []PlannedSet{{ID: "a", Reps: 5, Weight: 135, RestSeconds: 90}}}
		set := ex.AddSet()
		if set.ID == "a" || set.ID == "" {
			t.Errorf("AddSet() id = %q, want a fresh id", set.ID)
		}
		if set.Reps != 5 || set.Weight != 135 || set.RestSeconds != 90 {
			t.Errorf("AddSet() = %+v, want copy of 5/135/90", set)
		}
	})
}

func TestWorkoutPlan_EditHelpers(t *testing.T) {
	plan := NewWorkoutPlan("Leg Day")
	squat := plan.AddExercise("Squat")
	squatID := squat.ID
	plan.AddExercise("Lunge")

	if plan.SetCount() != 2 {
		t.Errorf("SetCount() = %d, want 2", plan.SetCount())
	}

	setID := plan.Exercises[0].Sets[0].ID
	ex, set, ok := plan.FindSet(setID)
	if !ok || ex.Name != "Squat" || set.ID != setID {
		t.Errorf("FindSet(%q) = %v, %v, %v", setID, ex.Name, set.ID, ok)
	}
	if _, _, ok := plan.FindSet("missing"); ok {
		t.Error("FindSet(missing) reported found")
	}

	if !plan.Exercise(squatID).RemoveSet(setID) {
		t.Error("RemoveSet() = false, want true")
	}
	if plan.Exercise(squatID).RemoveSet(setID) {
		t.Error("second RemoveSet() = true, want false")
	}
	if !plan.RemoveExercise(squatID) {
		t.Error("RemoveExercise() = false, want true")
	}
	if len(plan.Exercises) != 1 || plan.Exercises[0].Name != "Lunge" {
		t.Errorf("Exercises = %+v, want only Lunge", plan.Exercises)
	}
	if plan.Exercise(squatID) != nil {
		t.Error("Exercise() found a removed exercise")
	}
}

func TestWorkoutPlan_Clone(t *testing.T) {
	plan := NewWorkoutPlan("Push Day")
	plan.AddExercise("Overhead Press")

	clone := plan.Clone()
	if clone.ID == plan.ID {
		t.Error("Clone() kept the plan id")
	}
	if clone.Name != "Push Day (Copy)" {
		t.Errorf("Clone().Name = %q", clone.Name)
	}
	if clone.Exercises[0].Sets[0].ID == plan.Exercises[0].Sets[0].ID {
		t.Error("Clone() kept a set id")
	}

	clone.Exercises[0].Sets[0].Reps = 1
	if plan.Exercises[0].Sets[0].Reps == 1 {
		t.Error("editing the clone changed the source plan")
	}
}
