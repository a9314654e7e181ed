// Package session runs a single workout: set completion, the rest countdown
// and the elapsed timer, and assembly of the final log.
//
// A Session is not safe for concurrent use. Every method, including the
// ticker callbacks it registers with its clock, must run on the same
// goroutine; the TUI achieves this by delivering ticks as messages.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/liftlog/internal/clock"
	"github.com/julianstephens/liftlog/internal/constants"
	"github.com/julianstephens/liftlog/internal/logger"
	"github.com/julianstephens/liftlog/internal/models"
	"github.com/julianstephens/liftlog/internal/notifier"
)

// State is the lifecycle of a session.
type State int

const (
	Active State = iota
	Finished
	Abandoned
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Finished:
		return "finished"
	case Abandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Rest describes the rest countdown. The zero value is Idle.
type Rest struct {
	CountingDown bool
	EndsAt       time.Time
	TotalSeconds int
	Remaining    int
}

type Session struct {
	plan      models.WorkoutPlan
	port      notifier.Port
	clk       clock.Clock
	startedAt time.Time

	completed map[string]models.CompletedSet
	feedback  map[string]models.FeedbackRating
	rest      Rest
	state     State
	elapsed   time.Duration
	status    notifier.LiveStatus

	elapsedTicker clock.Ticker
	restTicker    clock.Ticker
	tornDown      bool
}

// Start begins a session for a snapshot of plan. A nil port or clock falls
// back to notifier.Nop and the real clock.
func Start(plan models.WorkoutPlan, port notifier.Port, clk clock.Clock) *Session {
	if port == nil {
		port = notifier.Nop{}
	}
	if clk == nil {
		clk = clock.Real{}
	}

	s := &Session{
		plan:      snapshot(plan),
		port:      port,
		clk:       clk,
		startedAt: clk.Now(),
		completed: make(map[string]models.CompletedSet),
		feedback:  make(map[string]models.FeedbackRating),
		state:     Active,
	}
	s.status = notifier.LiveStatus{
		Label:   plan.Name,
		Elapsed: models.FormatClock(0),
	}

	s.elapsedTicker = clk.Every(constants.TickInterval, s.TickElapsed)
	s.port.BeginLiveStatus(plan.Name)
	logger.Info("Workout started", "workout", plan.Name, "sets", plan.SetCount())
	return s
}

// CompleteSet records the planned set as done and starts its rest period.
// It reports false, changing nothing, when the session is over, the set is
// already completed or the set is not part of the plan.
func (s *Session) CompleteSet(setID string) bool {
	if s.state != Active {
		return false
	}
	if _, done := s.completed[setID]; done {
		return false
	}
	_, set, ok := s.plan.FindSet(setID)
	if !ok {
		return false
	}

	s.completed[setID] = models.NewCompletedSet(set.Reps, set.Weight)

	if set.RestSeconds > 0 {
		s.startRest(set.RestSeconds)
	} else if s.rest.CountingDown {
		s.stopRest()
		s.port.CancelDelayedAlert()
		s.pushStatus()
	}
	return true
}

func (s *Session) startRest(seconds int) {
	if s.restTicker != nil {
		s.restTicker.Stop()
		s.restTicker = nil
	}
	// Only one alert may be outstanding.
	s.port.CancelDelayedAlert()

	total := time.Duration(seconds) * time.Second
	s.rest = Rest{
		CountingDown: true,
		EndsAt:       s.clk.Now().Add(total),
		TotalSeconds: seconds,
		Remaining:    seconds,
	}
	s.restTicker = s.clk.Every(constants.TickInterval, s.TickRestCountdown)
	s.port.ScheduleDelayedAlert(total)

	endsAt := s.rest.EndsAt
	s.status.Resting = true
	s.status.EndsAt = &endsAt
	s.pushStatus()
}

func (s *Session) stopRest() {
	if s.restTicker != nil {
		s.restTicker.Stop()
		s.restTicker = nil
	}
	s.rest = Rest{}
	s.status.Resting = false
	s.status.EndsAt = nil
}

// TickRestCountdown advances the countdown by one second. When it reaches
// zero the rest ends. The delayed alert is left alone; it fires on its own.
func (s *Session) TickRestCountdown() {
	if s.state != Active || !s.rest.CountingDown {
		return
	}
	s.rest.Remaining--
	if s.rest.Remaining > 0 {
		return
	}
	s.stopRest()
	s.pushStatus()
}

// TickElapsed refreshes the elapsed time and the live status.
func (s *Session) TickElapsed() {
	if s.state != Active {
		return
	}
	s.elapsed = s.clk.Now().Sub(s.startedAt)
	s.status.Elapsed = models.FormatClock(s.elapsed)
	s.pushStatus()
}

func (s *Session) pushStatus() {
	s.port.UpdateLiveStatus(s.status)
}

// SetFeedback stores the rating for an exercise. Selecting the current
// rating again, or FeedbackNone, clears it.
func (s *Session) SetFeedback(exerciseName string, rating models.FeedbackRating) {
	if s.state != Active {
		return
	}
	if rating == models.FeedbackNone || s.feedback[exerciseName] == rating {
		delete(s.feedback, exerciseName)
		return
	}
	s.feedback[exerciseName] = rating
}

// Finish ends the session and assembles its log. It succeeds only once; the
// log is not persisted here.
func (s *Session) Finish() (models.WorkoutLog, bool) {
	if s.state != Active {
		return models.WorkoutLog{}, false
	}

	now := s.clk.Now()
	log := models.WorkoutLog{
		ID:                 uuid.New().String(),
		Date:               now,
		WorkoutName:        s.plan.Name,
		DurationSeconds:    now.Sub(s.startedAt).Seconds(),
		CompletedExercises: []models.CompletedExercise{},
	}

	for _, ex := range s.plan.Exercises {
		var sets []models.CompletedSet
		for _, set := range ex.Sets {
			if done, ok := s.completed[set.ID]; ok {
				sets = append(sets, done)
			}
		}
		if len(sets) == 0 {
			continue
		}
		log.CompletedExercises = append(log.CompletedExercises, models.CompletedExercise{
			ID:       uuid.New().String(),
			Name:     ex.Name,
			Sets:     sets,
			Feedback: s.feedback[ex.Name],
		})
	}

	s.state = Finished
	s.elapsed = now.Sub(s.startedAt)
	s.teardown()
	logger.Info("Workout finished", "workout", log.WorkoutName, "duration", log.FormattedDuration(), "volume", log.TotalVolume())
	return log, true
}

// Abandon ends the session without producing a log.
func (s *Session) Abandon() bool {
	if s.state != Active {
		return false
	}
	s.state = Abandoned
	s.teardown()
	logger.Info("Workout abandoned", "workout", s.plan.Name, "completed_sets", len(s.completed))
	return true
}

// Close releases the session when its host goes away. An active session is
// abandoned; otherwise Close does nothing.
func (s *Session) Close() {
	s.Abandon()
}

func (s *Session) teardown() {
	if s.tornDown {
		return
	}
	s.tornDown = true

	if s.elapsedTicker != nil {
		s.elapsedTicker.Stop()
		s.elapsedTicker = nil
	}
	s.stopRest()
	s.port.CancelDelayedAlert()
	s.port.EndLiveStatus()
}

func (s *Session) State() State { return s.state }

func (s *Session) Rest() Rest { return s.rest }

func (s *Session) Plan() models.WorkoutPlan { return snapshot(s.plan) }

func (s *Session) StartedAt() time.Time { return s.startedAt }

// Elapsed is the time since start as of the last tick, or the final
// duration once the session has finished.
func (s *Session) Elapsed() time.Duration { return s.elapsed }

func (s *Session) Status() notifier.LiveStatus { return s.status }

func (s *Session) IsCompleted(setID string) bool {
	_, ok := s.completed[setID]
	return ok
}

func (s *Session) CompletedCount() int { return len(s.completed) }

func (s *Session) Feedback(exerciseName string) models.FeedbackRating {
	return s.feedback[exerciseName]
}

func snapshot(plan models.WorkoutPlan) models.WorkoutPlan {
	out := plan
	out.Exercises = make([]models.ExercisePlan, len(plan.Exercises))
	for i, ex := range plan.Exercises {
		ex.Sets = append([]models.PlannedSet(nil), ex.Sets...)
		out.Exercises[i] = ex
	}
	return out
}
