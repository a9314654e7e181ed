package models

import (
	"github.com/google/uuid"

	"github.com/julianstephens/liftlog/internal/constants"
)

// WorkoutPlan is a reusable workout template.
type WorkoutPlan struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Exercises []ExercisePlan `json:"exercises"`
}

type ExercisePlan struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Sets []PlannedSet `json:"sets"`
}

type PlannedSet struct {
	ID          string  `json:"id"`
	Reps        int     `json:"reps"`
	Weight      float64 `json:"weight"`       // kg
	RestSeconds int     `json:"rest_seconds"` // 0 disables the rest countdown
}

// NewPlannedSet returns a set with the default reps, weight and rest.
func NewPlannedSet() PlannedSet {
	return PlannedSet{
		ID:          uuid.New().String(),
		Reps:        constants.DefaultReps,
		Weight:      constants.DefaultWeight,
		RestSeconds: constants.DefaultRestSeconds,
	}
}

func NewWorkoutPlan(name string) WorkoutPlan {
	return WorkoutPlan{
		ID:        uuid.New().String(),
		Name:      name,
		Exercises: []ExercisePlan{},
	}
}

// AddExercise appends a new exercise holding a single default set.
func (w *WorkoutPlan) AddExercise(name string) *ExercisePlan {
	w.Exercises = append(w.Exercises, ExercisePlan{
		ID:   uuid.New().String(),
		Name: name,
		Sets: []PlannedSet{NewPlannedSet()},
	})
	return &w.Exercises[len(w.Exercises)-1]
}

// RemoveExercise deletes the exercise with the given id. It reports whether
// anything was removed.
func (w *WorkoutPlan) RemoveExercise(id string) bool {
	for i := range w.Exercises {
		if w.Exercises[i].ID == id {
			w.Exercises = append(w.Exercises[:i], w.Exercises[i+1:]...)
			return true
		}
	}
	return false
}

// Exercise returns a pointer into the plan so callers can edit in place.
func (w *WorkoutPlan) Exercise(id string) *ExercisePlan {
	for i := range w.Exercises {
		if w.Exercises[i].ID == id {
			return &w.Exercises[i]
		}
	}
	return nil
}

// FindSet locates a planned set and the exercise that contains it.
func (w WorkoutPlan) FindSet(setID string) (ExercisePlan, PlannedSet, bool) {
	for _, ex := range w.Exercises {
		for _, set := range ex.Sets {
			if set.ID == setID {
				return ex, set, true
			}
		}
	}
	return ExercisePlan{}, PlannedSet{}, false
}

// SetCount returns the number of planned sets across all exercises.
func (w WorkoutPlan) SetCount() int {
	n := 0
	for _, ex := range w.Exercises {
		n += len(ex.Sets)
	}
	return n
}

// Clone deep-copies the plan under a fresh id. Exercise and set ids are
// regenerated too so the copy never shares completion keys with the source.
func (w WorkoutPlan) Clone() WorkoutPlan {
	clone := WorkoutPlan{
		ID:        uuid.New().String(),
		Name:      w.Name + " (Copy)",
		Exercises: make([]ExercisePlan, 0, len(w.Exercises)),
	}
	for _, ex := range w.Exercises {
		copied := ExercisePlan{
			ID:   uuid.New().String(),
			Name: ex.Name,
			Sets: make([]PlannedSet, 0, len(ex.Sets)),
		}
		for _, set := range ex.Sets {
			set.ID = uuid.New().String()
			copied.Sets = append(copied.Sets, set)
		}
		clone.Exercises = append(clone.Exercises, copied)
	}
	return clone
}

// AddSet appends a set copying the values of the last one, or the defaults
// when the exercise has no sets yet.
func (e *ExercisePlan) AddSet() PlannedSet {
	set := NewPlannedSet()
	if n := len(e.Sets); n > 0 {
		last := e.Sets[n-1]
		set.Reps = last.Reps
		set.Weight = last.Weight
		set.RestSeconds = last.RestSeconds
	}
	e.Sets = append(e.Sets, set)
	return set
}

func (e *ExercisePlan) RemoveSet(id string) bool {
	for i := range e.Sets {
		if e.Sets[i].ID == id {
			e.Sets = append(e.Sets[:i], e.Sets[i+1:]...)
			return true
		}
	}
	return false
}

// Set returns a pointer to the planned set with the given id.
func (e *ExercisePlan) Set(id string) *PlannedSet {
	for i := range e.Sets {
		if e.Sets[i].ID == id {
			return &e.Sets[i]
		}
	}
	return nil
}
