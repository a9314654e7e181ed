package history

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/liftlog/internal/constants"
	"github.com/julianstephens/liftlog/internal/models"
	"github.com/julianstephens/liftlog/internal/storage"
)

func setupStore(t *testing.T) (*Store, storage.Provider) {
	t.Helper()
	provider := storage.NewJSONStore(filepath.Join(t.TempDir(), "liftlog.json"))
	if err := provider.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return New(provider), provider
}

// failingProvider accepts reads but rejects every write.
type failingProvider struct{}

func (failingProvider) Init() error                { return nil }
func (failingProvider) Load() error                { return nil }
func (failingProvider) Close() error               { return nil }
func (failingProvider) Get(string) ([]byte, error) { return nil, storage.ErrNotFound }
func (failingProvider) Put(string, []byte) error   { return errors.New("disk full") }
func (failingProvider) Delete(string) error        { return nil }
func (failingProvider) Keys() ([]string, error)    { return nil, nil }
func (failingProvider) GetConfigPath() string      { return "failing" }

func makeLog(name string, exercises ...models.CompletedExercise) models.WorkoutLog {
	return models.WorkoutLog{
		ID:                 name,
		Date:               time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC),
		WorkoutName:        name,
		DurationSeconds:    60,
		CompletedExercises: exercises,
	}
}

func exercise(name string, feedback models.FeedbackRating, sets ...models.CompletedSet) models.CompletedExercise {
	return models.CompletedExercise{ID: name, Name: name, Sets: sets, Feedback: feedback}
}

func TestLoadWorkouts_SeedsWhenMissing(t *testing.T) {
	store, _ := setupStore(t)

	plans := store.LoadWorkouts()
	if len(plans) != 2 {
		t.Fatalf("expected 2 seed plans, got %d", len(plans))
	}
	if plans[0].Name != "Full Body Strength A" || plans[1].Name != "Push Day" {
		t.Errorf("unexpected seed names: %q, %q", plans[0].Name, plans[1].Name)
	}

	squat := plans[0].Exercises[0]
	if squat.Name != "Squat" || len(squat.Sets) != 3 {
		t.Fatalf("unexpected first exercise: %+v", squat)
	}
	if s := squat.Sets[0]; s.Reps != 5 || s.Weight != 135 || s.RestSeconds != 90 {
		t.Errorf("unexpected squat set: %+v", s)
	}
	if s := plans[1].Exercises[0].Sets[0]; s.Reps != constants.DefaultReps || s.RestSeconds != constants.DefaultRestSeconds {
		t.Errorf("push day should use default sets, got %+v", s)
	}
}

func TestLoadWorkouts_CorruptBlobSeeds(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not json", "not json at all"},
		{"null", "null"},
		{"wrong shape", `{"id":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, provider := setupStore(t)
			if err := provider.Put(constants.WorkoutsKey, []byte(tt.blob)); err != nil {
				t.Fatal(err)
			}

			plans := store.LoadWorkouts()
			if len(plans) != 2 || plans[0].Name != "Full Body Strength A" {
				t.Errorf("expected seed plans, got %+v", plans)
			}
		})
	}
}

func TestLoadWorkouts_EmptyListIsKept(t *testing.T) {
	store, provider := setupStore(t)
	if err := provider.Put(constants.WorkoutsKey, []byte("[]")); err != nil {
		t.Fatal(err)
	}
	if plans := store.LoadWorkouts(); len(plans) != 0 {
		t.Errorf("a saved empty list must not be reseeded, got %d plans", len(plans))
	}
}

func TestLoadHistory_MissingAndCorrupt(t *testing.T) {
	store, provider := setupStore(t)

	if got := store.LoadHistory(); len(got) != 0 || got == nil {
		t.Errorf("expected empty non-nil history, got %#v", got)
	}

	if err := provider.Put(constants.HistoryKey, []byte("{")); err != nil {
		t.Fatal(err)
	}
	if got := store.LoadHistory(); len(got) != 0 {
		t.Errorf("expected empty history on corrupt data, got %d", len(got))
	}
}

func TestAddLog_MostRecentFirstAndPersisted(t *testing.T) {
	store, provider := setupStore(t)
	store.Load()

	for _, name := range []string{"L1", "L2", "L3"} {
		if err := store.AddLog(makeLog(name)); err != nil {
			t.Fatalf("AddLog(%s) failed: %v", name, err)
		}
	}

	reloaded := New(provider)
	got := reloaded.LoadHistory()
	var names []string
	for _, l := range got {
		names = append(names, l.WorkoutName)
	}
	if strings.Join(names, ",") != "L3,L2,L1" {
		t.Errorf("history order = %v, want [L3 L2 L1]", names)
	}
}

func TestClearHistory_LeavesWorkouts(t *testing.T) {
	store, provider := setupStore(t)
	store.Load()
	if err := store.ReplaceWorkouts(store.Workouts()); err != nil {
		t.Fatal(err)
	}
	if err := store.AddLog(makeLog("L1")); err != nil {
		t.Fatal(err)
	}

	if err := store.ClearHistory(); err != nil {
		t.Fatalf("ClearHistory failed: %v", err)
	}

	reloaded := New(provider)
	reloaded.Load()
	if n := len(reloaded.History()); n != 0 {
		t.Errorf("expected empty history, got %d", n)
	}
	if n := len(reloaded.Workouts()); n != 2 {
		t.Errorf("expected workouts untouched, got %d", n)
	}
}

func TestReplaceWorkouts_RoundTrip(t *testing.T) {
	store, provider := setupStore(t)

	plan := models.NewWorkoutPlan("Legs")
	plan.AddExercise("Deadlift")
	if err := store.ReplaceWorkouts([]models.WorkoutPlan{plan}); err != nil {
		t.Fatalf("ReplaceWorkouts failed: %v", err)
	}

	got := New(provider).LoadWorkouts()
	if len(got) != 1 || got[0].ID != plan.ID || got[0].Exercises[0].Name != "Deadlift" {
		t.Errorf("unexpected plans after reload: %+v", got)
	}

	if err := store.ReplaceWorkouts(nil); err != nil {
		t.Fatal(err)
	}
	// An explicitly empty list is respected and not reseeded.
	if got := New(provider).LoadWorkouts(); len(got) != 0 {
		t.Errorf("expected no plans, got %d", len(got))
	}
}

func TestWorkoutListOperations(t *testing.T) {
	store, _ := setupStore(t)
	store.Load()

	added, err := store.AddWorkout("Pull Day")
	if err != nil {
		t.Fatalf("AddWorkout failed: %v", err)
	}
	if plans := store.Workouts(); len(plans) != 3 || plans[2].ID != added.ID {
		t.Fatalf("expected new plan appended, got %d plans", len(plans))
	}

	added.AddExercise("Pull-up")
	if err := store.UpdateWorkout(added); err != nil {
		t.Fatalf("UpdateWorkout failed: %v", err)
	}
	got, err := store.Workout(added.ID)
	if err != nil || len(got.Exercises) != 1 {
		t.Fatalf("Workout() = %+v, %v", got, err)
	}

	clone, err := store.CloneWorkout(added.ID)
	if err != nil {
		t.Fatalf("CloneWorkout failed: %v", err)
	}
	if clone.Name != "Pull Day (Copy)" || clone.ID == added.ID {
		t.Errorf("unexpected clone: %+v", clone)
	}

	if err := store.MoveWorkout(3, 0); err != nil {
		t.Fatalf("MoveWorkout failed: %v", err)
	}
	if first := store.Workouts()[0]; first.ID != clone.ID {
		t.Errorf("expected clone first after move, got %q", first.Name)
	}
	if err := store.MoveWorkout(0, 9); err == nil {
		t.Error("expected out of range error")
	}

	if err := store.DeleteWorkout(added.ID); err != nil {
		t.Fatalf("DeleteWorkout failed: %v", err)
	}
	if _, err := store.Workout(added.ID); !errors.Is(err, ErrWorkoutNotFound) {
		t.Errorf("expected ErrWorkoutNotFound, got %v", err)
	}
	if err := store.DeleteWorkout("missing"); !errors.Is(err, ErrWorkoutNotFound) {
		t.Errorf("expected ErrWorkoutNotFound, got %v", err)
	}
	if err := store.UpdateWorkout(models.NewWorkoutPlan("ghost")); !errors.Is(err, ErrWorkoutNotFound) {
		t.Errorf("expected ErrWorkoutNotFound, got %v", err)
	}
}

func TestWorkouts_ReturnsCopies(t *testing.T) {
	store, _ := setupStore(t)
	store.Load()

	plans := store.Workouts()
	plans[0].Exercises[0].Sets[0].Reps = 99

	if got := store.Workouts()[0].Exercises[0].Sets[0].Reps; got == 99 {
		t.Error("mutating the returned plans must not change the store")
	}
}

func TestFindLastCompletedSet(t *testing.T) {
	store, _ := setupStore(t)
	store.Load()

	if _, ok := store.FindLastCompletedSet("Squat"); ok {
		t.Fatal("expected no result on empty history")
	}

	older := makeLog("older", exercise("Squat", models.FeedbackNone,
		models.NewCompletedSet(5, 200)))
	newer := makeLog("newer",
		exercise("Bench", models.FeedbackNone, models.NewCompletedSet(8, 80)),
		exercise("Squat", models.FeedbackNone,
			models.NewCompletedSet(5, 140),
			models.NewCompletedSet(3, 120)))
	for _, l := range []models.WorkoutLog{older, newer} {
		if err := store.AddLog(l); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name       string
		exercise   string
		wantOK     bool
		wantReps   int
		wantWeight float64
	}{
		// Last set of the most recent log, even though it is lighter.
		{"most recent last set", "Squat", true, 3, 120},
		{"other exercise", "Bench", true, 8, 80},
		{"case sensitive", "squat", false, 0, 0},
		{"unknown", "Deadlift", false, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, ok := store.FindLastCompletedSet(tt.exercise)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (set.Reps != tt.wantReps || set.Weight != tt.wantWeight) {
				t.Errorf("set = %+v, want %d x %v", set, tt.wantReps, tt.wantWeight)
			}
		})
	}
}

func TestFindLastFeedback(t *testing.T) {
	store, _ := setupStore(t)
	store.Load()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(store.AddLog(makeLog("a", exercise("Squat", models.FeedbackHard, models.NewCompletedSet(5, 100)))))
	must(store.AddLog(makeLog("b", exercise("Row", models.FeedbackEasy, models.NewCompletedSet(8, 60)))))
	must(store.AddLog(makeLog("c", exercise("Row", models.FeedbackNone, models.NewCompletedSet(8, 60)))))

	if got, ok := store.FindLastFeedback("Squat"); !ok || got != models.FeedbackHard {
		t.Errorf("FindLastFeedback(Squat) = %q, %v", got, ok)
	}
	// The most recent Row entry has no rating; older ratings are not consulted.
	if got, ok := store.FindLastFeedback("Row"); ok {
		t.Errorf("FindLastFeedback(Row) = %q, want none", got)
	}
}

func TestHistoryForAndExerciseNames(t *testing.T) {
	store, _ := setupStore(t)
	store.Load()

	logs := []models.WorkoutLog{
		makeLog("a", exercise("Squat", "", models.NewCompletedSet(5, 100)), exercise("Bench Press", "", models.NewCompletedSet(5, 60))),
		makeLog("b", exercise("Incline Bench", "", models.NewCompletedSet(8, 40))),
		makeLog("c", exercise("Squat", "", models.NewCompletedSet(5, 105))),
	}
	for _, l := range logs {
		if err := store.AddLog(l); err != nil {
			t.Fatal(err)
		}
	}

	squat := store.HistoryFor("Squat")
	if len(squat) != 2 || squat[0].WorkoutName != "c" || squat[1].WorkoutName != "a" {
		t.Errorf("HistoryFor(Squat) returned %d logs in wrong order", len(squat))
	}

	tests := []struct {
		filter string
		want   string
	}{
		{"", "Bench Press,Incline Bench,Squat"},
		{"BENCH", "Bench Press,Incline Bench"},
		{"  squat ", "Squat"},
		{"curl", ""},
	}
	for _, tt := range tests {
		if got := strings.Join(store.ExerciseNames(tt.filter), ","); got != tt.want {
			t.Errorf("ExerciseNames(%q) = %q, want %q", tt.filter, got, tt.want)
		}
	}
}

func TestWriteFailuresAreReturned(t *testing.T) {
	store := New(failingProvider{})
	store.Load()

	if err := store.AddLog(makeLog("x")); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("AddLog error = %v, want wrapped write failure", err)
	}
	if err := store.ClearHistory(); err == nil {
		t.Error("expected ClearHistory to fail")
	}
	if _, err := store.AddWorkout("x"); err == nil {
		t.Error("expected AddWorkout to fail")
	}
}

func TestWriteFailuresLeaveMemoryUnchanged(t *testing.T) {
	store := New(failingProvider{})
	store.Load()
	seeded := len(store.Workouts())
	store.history = []models.WorkoutLog{makeLog("kept")}

	if err := store.AddLog(makeLog("lost")); err == nil {
		t.Fatal("expected AddLog to fail")
	}
	if h := store.History(); len(h) != 1 || h[0].ID != "kept" {
		t.Errorf("history after failed AddLog = %+v", h)
	}

	if err := store.ClearHistory(); err == nil {
		t.Fatal("expected ClearHistory to fail")
	}
	if len(store.History()) != 1 {
		t.Error("failed ClearHistory must keep the logs")
	}

	if _, err := store.AddWorkout("lost"); err == nil {
		t.Fatal("expected AddWorkout to fail")
	}
	if err := store.ReplaceWorkouts(nil); err == nil {
		t.Fatal("expected ReplaceWorkouts to fail")
	}
	if got := len(store.Workouts()); got != seeded {
		t.Errorf("plans after failed saves = %d, want %d", got, seeded)
	}
}
