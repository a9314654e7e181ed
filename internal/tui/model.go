package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/liftlog/internal/clock"
	"github.com/julianstephens/liftlog/internal/constants"
	"github.com/julianstephens/liftlog/internal/history"
	"github.com/julianstephens/liftlog/internal/models"
	"github.com/julianstephens/liftlog/internal/notifier"
	"github.com/julianstephens/liftlog/internal/session"
	"github.com/julianstephens/liftlog/internal/storage"
	"github.com/julianstephens/liftlog/internal/tui/components/logbook"
	"github.com/julianstephens/liftlog/internal/tui/components/workouts"
	"github.com/julianstephens/liftlog/internal/validation"
)

// Options wires the TUI to its collaborators. Port and Clock fall back to
// notifier.Nop and the real clock when nil.
type Options struct {
	History  *history.Store
	Store    storage.Provider
	Port     notifier.Port
	Clock    clock.Clock
	Settings models.Settings
}

type formKind int

const (
	formNone formKind = iota
	formAddWorkout
	formRenameWorkout
	formAddExercise
	formSettings
)

type confirmAction int

const (
	confirmDeleteWorkout confirmAction = iota
	confirmAbandon
	confirmAbandonQuit
	confirmClearHistory
)

type confirmation struct {
	prompt   string
	action   confirmAction
	targetID string
	returnTo constants.SessionState
}

type WorkoutFormModel struct {
	Name string
}

type ExerciseFormModel struct {
	Name   string
	Sets   string
	Reps   string
	Weight string
	Rest   string
}

type NotesFormModel struct {
	Notes string
}

type SettingsFormModel struct {
	NotificationsEnabled bool
	RestAlerts           bool
	LiveStatus           bool
	DefaultRestSeconds   string
}

type Model struct {
	history  *history.Store
	store    storage.Provider
	port     notifier.Port
	clock    clock.Clock
	settings models.Settings

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	workouts      workouts.Model
	logbook       logbook.Model
	restBar       progress.Model

	session  *session.Session
	cursor   int // index into sessionRows()
	finished *models.WorkoutLog

	form         *huh.Form
	formKind     formKind
	editingPlan  *models.WorkoutPlan
	workoutForm  *WorkoutFormModel
	exerciseForm *ExerciseFormModel
	notesForm    *NotesFormModel
	settingsForm *SettingsFormModel
	confirm      *confirmation

	statsCursor int

	validationWarning string
	message           string
	errMessage        string
	quitting          bool
	width             int
	height            int
}

func NewModel(opts Options) Model {
	port := opts.Port
	if port == nil {
		port = notifier.Nop{}
	}
	clk := opts.Clock
	if clk == nil {
		// Ticks are dropped until a program is attached.
		clk = NewDispatchClock()
	}
	settings := opts.Settings
	models.ApplyDefaultSettings(&settings)

	m := Model{
		history:  opts.History,
		store:    opts.Store,
		port:     port,
		clock:    clk,
		settings: settings,
		state:    constants.StateWorkouts,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		restBar:  progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(30)),
	}
	m.workouts = workouts.New(nil, nil, 0, 0)
	m.logbook = logbook.New(m.history.History(), 0, 0)
	m.refreshWorkouts()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Close abandons a session that is still running. The program calls it on
// the final model after the event loop exits.
func (m Model) Close() {
	if m.session != nil {
		m.session.Close()
	}
}

// Session returns the running session, or nil.
func (m Model) Session() *session.Session {
	return m.session
}

func (m Model) State() constants.SessionState {
	return m.state
}

// refreshWorkouts reloads the plan list and recomputes validation warnings.
func (m *Model) refreshWorkouts() {
	plans := m.history.Workouts()
	result := validation.New().ValidatePlans(plans)

	warnings := make(map[string]int)
	for _, c := range result.Conflicts {
		if c.PlanID != "" {
			warnings[c.PlanID]++
		}
	}
	m.workouts.SetPlans(plans, warnings)

	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}

func (m *Model) refreshHistory() {
	m.logbook.SetLogs(m.history.History())
	if n := len(m.history.ExerciseNames("")); m.statsCursor >= n {
		m.statsCursor = max(n-1, 0)
	}
}

// mainState is the first tab: the running session if there is one.
func (m Model) mainState() constants.SessionState {
	if m.session != nil && m.session.State() == session.Active {
		return constants.StateSession
	}
	return constants.StateWorkouts
}

func (m Model) tabs() []constants.SessionState {
	return []constants.SessionState{m.mainState(), constants.StateHistory, constants.StateStats, constants.StateSettings}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateWorkouts:
		keys = append(keys, m.workouts.Keys().Start, m.workouts.Keys().Add)
	case constants.StateSession:
		keys = append(keys, m.keys.Complete, m.keys.Rate, m.keys.Finish)
	case constants.StateHistory:
		keys = append(keys, m.keys.Clear)
	case constants.StateSettings:
		keys = append(keys, m.keys.Settings)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case constants.StateWorkouts:
		actions = m.workouts.Keys().Bindings()
	case constants.StateSession:
		actions = []key.Binding{m.keys.Complete, m.keys.Rate, m.keys.Finish, m.keys.Abandon}
	case constants.StateHistory:
		actions = []key.Binding{m.keys.Clear}
	case constants.StateSettings:
		actions = []key.Binding{m.keys.Settings}
	}

	return [][]key.Binding{global, navigation, actions}
}
