package history

import (
	"github.com/google/uuid"

	"github.com/julianstephens/liftlog/internal/models"
)

func seedSet(reps int, weight float64, rest int) models.PlannedSet {
	return models.PlannedSet{
		ID:          uuid.New().String(),
		Reps:        reps,
		Weight:      weight,
		RestSeconds: rest,
	}
}

func seedExercise(name string, sets ...models.PlannedSet) models.ExercisePlan {
	return models.ExercisePlan{
		ID:   uuid.New().String(),
		Name: name,
		Sets: sets,
	}
}

// SeedWorkouts returns the starter plans used when nothing has been saved yet.
func SeedWorkouts() []models.WorkoutPlan {
	fullBody := models.NewWorkoutPlan("Full Body Strength A")
	fullBody.Exercises = []models.ExercisePlan{
		seedExercise("Squat", seedSet(5, 135, 90), seedSet(5, 135, 90), seedSet(5, 135, 90)),
		seedExercise("Bench Press", seedSet(8, 100, 60), seedSet(8, 100, 60)),
		seedExercise("Barbell Row", seedSet(8, 95, 60), seedSet(8, 95, 60)),
	}

	push := models.NewWorkoutPlan("Push Day")
	push.Exercises = []models.ExercisePlan{
		seedExercise("Overhead Press", models.NewPlannedSet()),
		seedExercise("Incline Dumbbell Press", models.NewPlannedSet()),
	}

	return []models.WorkoutPlan{fullBody, push}
}
