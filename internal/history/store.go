// Package history persists workout plans and completed workout logs.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/liftlog/internal/constants"
	"github.com/julianstephens/liftlog/internal/logger"
	"github.com/julianstephens/liftlog/internal/models"
	"github.com/julianstephens/liftlog/internal/storage"
)

// ErrWorkoutNotFound is returned when a plan id does not match any plan.
var ErrWorkoutNotFound = errors.New("workout not found")

// Store holds plans and logs in memory and writes each list back to the
// provider as a whole on every change. Logs are kept most recent first.
type Store struct {
	provider storage.Provider
	workouts []models.WorkoutPlan
	history  []models.WorkoutLog
}

func New(provider storage.Provider) *Store {
	return &Store{provider: provider}
}

// Load reads both lists from the provider.
func (s *Store) Load() {
	s.LoadWorkouts()
	s.LoadHistory()
}

// LoadWorkouts reads the saved plans. When none are stored, or the stored
// blob cannot be decoded into a list, the seed plans are used instead.
func (s *Store) LoadWorkouts() []models.WorkoutPlan {
	var plans []models.WorkoutPlan
	if !s.decode(constants.WorkoutsKey, &plans) || plans == nil {
		plans = SeedWorkouts()
	}
	s.workouts = plans
	return s.Workouts()
}

// LoadHistory reads the saved logs, or an empty list.
func (s *Store) LoadHistory() []models.WorkoutLog {
	var logs []models.WorkoutLog
	if !s.decode(constants.HistoryKey, &logs) || logs == nil {
		logs = []models.WorkoutLog{}
	}
	s.history = logs
	return s.History()
}

// decode reports whether key held a value that decoded into v.
func (s *Store) decode(key string, v any) bool {
	data, err := s.provider.Get(key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to read stored data", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		logger.Warn("Failed to decode stored data, using defaults", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	if err := s.provider.Put(key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (s *Store) saveWorkouts() error {
	return s.save(constants.WorkoutsKey, s.workouts)
}

func (s *Store) saveHistory() error {
	return s.save(constants.HistoryKey, s.history)
}

// Workouts returns a copy of the plan list.
func (s *Store) Workouts() []models.WorkoutPlan {
	out := make([]models.WorkoutPlan, len(s.workouts))
	for i, p := range s.workouts {
		out[i] = copyPlan(p)
	}
	return out
}

// History returns a copy of the log list, most recent first.
func (s *Store) History() []models.WorkoutLog {
	out := make([]models.WorkoutLog, len(s.history))
	copy(out, s.history)
	return out
}

// AddLog inserts log at the front of the history and saves it. On a failed
// save the in-memory history is left as it was.
func (s *Store) AddLog(log models.WorkoutLog) error {
	prev := s.history
	s.history = append([]models.WorkoutLog{log}, s.history...)
	if err := s.saveHistory(); err != nil {
		s.history = prev
		return err
	}
	logger.Info("Workout logged", "workout", log.WorkoutName, "exercises", len(log.CompletedExercises))
	return nil
}

// ClearHistory removes every log. Plans are left untouched.
func (s *Store) ClearHistory() error {
	prev := s.history
	s.history = []models.WorkoutLog{}
	if err := s.saveHistory(); err != nil {
		s.history = prev
		return err
	}
	return nil
}

// ReplaceWorkouts overwrites the whole plan list. On a failed save the
// in-memory list is left as it was, so every plan flow built on it is
// all-or-nothing.
func (s *Store) ReplaceWorkouts(plans []models.WorkoutPlan) error {
	if plans == nil {
		plans = []models.WorkoutPlan{}
	}
	prev := s.workouts
	s.workouts = make([]models.WorkoutPlan, len(plans))
	for i, p := range plans {
		s.workouts[i] = copyPlan(p)
	}
	if err := s.saveWorkouts(); err != nil {
		s.workouts = prev
		return err
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	for i, p := range s.workouts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Workout returns the plan with the given id.
func (s *Store) Workout(id string) (models.WorkoutPlan, error) {
	i := s.indexOf(id)
	if i < 0 {
		return models.WorkoutPlan{}, fmt.Errorf("%w: %s", ErrWorkoutNotFound, id)
	}
	return copyPlan(s.workouts[i]), nil
}

// AddWorkout appends an empty plan with the given name.
func (s *Store) AddWorkout(name string) (models.WorkoutPlan, error) {
	plan := models.NewWorkoutPlan(name)
	plans := append(s.Workouts(), plan)
	if err := s.ReplaceWorkouts(plans); err != nil {
		return models.WorkoutPlan{}, err
	}
	return plan, nil
}

// UpdateWorkout replaces the stored plan sharing plan.ID.
func (s *Store) UpdateWorkout(plan models.WorkoutPlan) error {
	i := s.indexOf(plan.ID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrWorkoutNotFound, plan.ID)
	}
	plans := s.Workouts()
	plans[i] = plan
	return s.ReplaceWorkouts(plans)
}

// DeleteWorkout removes a plan. Logs produced from it are kept.
func (s *Store) DeleteWorkout(id string) error {
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrWorkoutNotFound, id)
	}
	plans := s.Workouts()
	plans = append(plans[:i], plans[i+1:]...)
	return s.ReplaceWorkouts(plans)
}

// CloneWorkout appends a deep copy of the plan and returns it.
func (s *Store) CloneWorkout(id string) (models.WorkoutPlan, error) {
	src, err := s.Workout(id)
	if err != nil {
		return models.WorkoutPlan{}, err
	}
	clone := src.Clone()
	if err := s.ReplaceWorkouts(append(s.Workouts(), clone)); err != nil {
		return models.WorkoutPlan{}, err
	}
	return clone, nil
}

// MoveWorkout moves the plan at index from to index to.
func (s *Store) MoveWorkout(from, to int) error {
	n := len(s.workouts)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("move out of range: %d -> %d (have %d workouts)", from, to, n)
	}
	if from == to {
		return nil
	}
	plans := s.Workouts()
	plan := plans[from]
	plans = append(plans[:from], plans[from+1:]...)
	plans = append(plans[:to], append([]models.WorkoutPlan{plan}, plans[to:]...)...)
	return s.ReplaceWorkouts(plans)
}

// FindLastCompletedSet returns the last set of the exercise in the most
// recent log that recorded any set for it. This is the most recent set, not
// the heaviest one.
func (s *Store) FindLastCompletedSet(exerciseName string) (models.CompletedSet, bool) {
	for _, log := range s.history {
		ex, ok := log.Exercise(exerciseName)
		if !ok || len(ex.Sets) == 0 {
			continue
		}
		return ex.Sets[len(ex.Sets)-1], true
	}
	return models.CompletedSet{}, false
}

// FindLastFeedback returns the rating stored with the exercise in the most
// recent log containing it.
func (s *Store) FindLastFeedback(exerciseName string) (models.FeedbackRating, bool) {
	for _, log := range s.history {
		ex, ok := log.Exercise(exerciseName)
		if !ok {
			continue
		}
		return ex.Feedback, ex.Feedback != models.FeedbackNone
	}
	return models.FeedbackNone, false
}

// HistoryFor returns the logs containing the exercise, most recent first.
func (s *Store) HistoryFor(exerciseName string) []models.WorkoutLog {
	var out []models.WorkoutLog
	for _, log := range s.history {
		if _, ok := log.Exercise(exerciseName); ok {
			out = append(out, log)
		}
	}
	return out
}

// ExerciseNames lists every exercise name found in the history, sorted and
// de-duplicated. A non-empty filter keeps names containing it, ignoring case.
func (s *Store) ExerciseNames(filter string) []string {
	filter = strings.ToLower(strings.TrimSpace(filter))
	seen := make(map[string]struct{})
	var names []string
	for _, log := range s.history {
		for _, ex := range log.CompletedExercises {
			if _, ok := seen[ex.Name]; ok {
				continue
			}
			seen[ex.Name] = struct{}{}
			if filter != "" && !strings.Contains(strings.ToLower(ex.Name), filter) {
				continue
			}
			names = append(names, ex.Name)
		}
	}
	sort.Strings(names)
	return names
}

func copyPlan(p models.WorkoutPlan) models.WorkoutPlan {
	out := p
	out.Exercises = make([]models.ExercisePlan, len(p.Exercises))
	for i, ex := range p.Exercises {
		ex.Sets = append([]models.PlannedSet(nil), ex.Sets...)
		out.Exercises[i] = ex
	}
	return out
}
