package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/liftlog/internal/constants"
	"github.com/julianstephens/liftlog/internal/logger"
	"github.com/julianstephens/liftlog/internal/storage"
	"github.com/julianstephens/liftlog/internal/tui/components/workouts"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchMsg:
		msg.ticker.fire()
		return m, nil
	case alertMsg:
		m.flash(msg.text)
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil
	}

	switch m.state {
	case constants.StateEditing:
		return m.updateForm(msg)
	case constants.StateNotes:
		return m.updateNotes(msg)
	case constants.StateConfirmation:
		return m.updateConfirmation(msg)
	}

	switch msg := msg.(type) {
	case workouts.StartWorkoutMsg:
		m.startWorkout(msg.ID)
		return m, nil
	case workouts.AddWorkoutMsg:
		m.workoutForm = &WorkoutFormModel{}
		return m.openForm(formAddWorkout, NewWorkoutForm(m.workoutForm, "Workout name"))
	case workouts.RenameWorkoutMsg:
		plan := msg.Plan
		m.editingPlan = &plan
		m.workoutForm = &WorkoutFormModel{Name: plan.Name}
		return m.openForm(formRenameWorkout, NewWorkoutForm(m.workoutForm, "Rename workout"))
	case workouts.AddExerciseMsg:
		plan := msg.Plan
		m.editingPlan = &plan
		m.exerciseForm = &ExerciseFormModel{
			Sets:   "3",
			Reps:   strconv.Itoa(constants.DefaultReps),
			Weight: strconv.FormatFloat(constants.DefaultWeight, 'f', -1, 64),
			Rest:   strconv.Itoa(m.settings.DefaultRestSeconds),
		}
		return m.openForm(formAddExercise, NewExerciseForm(m.exerciseForm))
	case workouts.CloneWorkoutMsg:
		if clone, err := m.history.CloneWorkout(msg.ID); err != nil {
			m.fail("Failed to clone workout", err)
		} else {
			m.flash(fmt.Sprintf("Created %q", clone.Name))
			m.refreshWorkouts()
		}
		return m, nil
	case workouts.DeleteWorkoutMsg:
		plan, err := m.history.Workout(msg.ID)
		if err != nil {
			m.fail("Failed to delete workout", err)
			return m, nil
		}
		m.ask(confirmation{
			prompt:   fmt.Sprintf("Delete workout %q? Logged workouts are kept.", plan.Name),
			action:   confirmDeleteWorkout,
			targetID: plan.ID,
		})
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Let the list filter swallow every key while it is open.
	if m.state == constants.StateWorkouts && m.workouts.Filtering() {
		var cmd tea.Cmd
		m.workouts, cmd = m.workouts.Update(msg)
		return m, cmd
	}

	switch {
	case msg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Quit):
		if m.mainState() == constants.StateSession {
			m.ask(confirmation{prompt: "Abandon the running workout and quit?", action: confirmAbandonQuit})
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.cycleTab(1)
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.cycleTab(-1)
		return m, nil
	}

	switch m.state {
	case constants.StateWorkouts:
		var cmd tea.Cmd
		m.workouts, cmd = m.workouts.Update(msg)
		return m, cmd
	case constants.StateSession:
		return m.handleSessionKey(msg)
	case constants.StateHistory:
		if key.Matches(msg, m.keys.Clear) && len(m.history.History()) > 0 {
			m.ask(confirmation{prompt: "Delete every logged workout? This cannot be undone.", action: confirmClearHistory})
			return m, nil
		}
		var cmd tea.Cmd
		m.logbook, cmd = m.logbook.Update(msg)
		return m, cmd
	case constants.StateStats:
		n := len(m.history.ExerciseNames(""))
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.statsCursor > 0 {
				m.statsCursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.statsCursor < n-1 {
				m.statsCursor++
			}
		}
		return m, nil
	case constants.StateSettings:
		if key.Matches(msg, m.keys.Settings) {
			m.settingsForm = &SettingsFormModel{
				NotificationsEnabled: m.settings.NotificationsEnabled,
				RestAlerts:           m.settings.RestAlerts,
				LiveStatus:           m.settings.LiveStatus,
				DefaultRestSeconds:   strconv.Itoa(m.settings.DefaultRestSeconds),
			}
			return m.openForm(formSettings, NewSettingsForm(m.settingsForm))
		}
	}
	return m, nil
}

func (m *Model) cycleTab(step int) {
	tabs := m.tabs()
	current := 0
	for i, s := range tabs {
		if s == m.state {
			current = i
			break
		}
	}
	next := (current + step + len(tabs)) % len(tabs)
	m.state = tabs[next]
	m.message = ""
	m.errMessage = ""
}

func (m Model) openForm(kind formKind, form *huh.Form) (tea.Model, tea.Cmd) {
	m.previousState = m.state
	m.state = constants.StateEditing
	m.formKind = kind
	m.form = form
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.applyForm()
		m.closeForm()
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.state = m.previousState
	m.form = nil
	m.formKind = formNone
	m.editingPlan = nil
}

func (m *Model) applyForm() {
	switch m.formKind {
	case formAddWorkout:
		name := strings.TrimSpace(m.workoutForm.Name)
		if _, err := m.history.AddWorkout(name); err != nil {
			m.fail("Failed to add workout", err)
			return
		}
		m.flash(fmt.Sprintf("Added %q", name))
		m.refreshWorkouts()

	case formRenameWorkout:
		plan := *m.editingPlan
		plan.Name = strings.TrimSpace(m.workoutForm.Name)
		if err := m.history.UpdateWorkout(plan); err != nil {
			m.fail("Failed to rename workout", err)
			return
		}
		m.flash(fmt.Sprintf("Renamed to %q", plan.Name))
		m.refreshWorkouts()

	case formAddExercise:
		plan := *m.editingPlan
		fm := m.exerciseForm
		sets, err := parseCount(fm.Sets, "sets")
		if err != nil {
			m.fail("Failed to add exercise", err)
			return
		}
		reps, err := parseCount(fm.Reps, "reps")
		if err != nil {
			m.fail("Failed to add exercise", err)
			return
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(fm.Weight), 64)
		if err != nil {
			m.fail("Failed to add exercise", fmt.Errorf("weight: %w", err))
			return
		}
		rest, err := parseCount(fm.Rest, "rest")
		if err != nil {
			m.fail("Failed to add exercise", err)
			return
		}

		ex := plan.AddExercise(strings.TrimSpace(fm.Name))
		ex.Sets[0].Reps = reps
		ex.Sets[0].Weight = weight
		ex.Sets[0].RestSeconds = rest
		for i := 1; i < sets; i++ {
			ex.AddSet()
		}
		if err := m.history.UpdateWorkout(plan); err != nil {
			m.fail("Failed to add exercise", err)
			return
		}
		m.flash(fmt.Sprintf("Added %s to %q", ex.Name, plan.Name))
		m.refreshWorkouts()

	case formSettings:
		fm := m.settingsForm
		rest, err := parseCount(fm.DefaultRestSeconds, "default rest")
		if err != nil {
			m.fail("Failed to save settings", err)
			return
		}
		current, err := storage.LoadSettings(m.store)
		if err != nil {
			logger.Warn("Failed to load settings, using defaults", "error", err)
		}
		current.NotificationsEnabled = fm.NotificationsEnabled
		current.RestAlerts = fm.RestAlerts
		current.LiveStatus = fm.LiveStatus
		current.DefaultRestSeconds = rest
		if err := storage.SaveSettings(m.store, current); err != nil {
			m.fail("Failed to save settings", err)
			return
		}
		// Keep a status path that came from the config file.
		if current.StatusFile == "" {
			current.StatusFile = m.settings.StatusFile
		}
		m.settings = current
		m.flash("Settings saved. Alert changes apply the next time liftlog starts.")
	}
}

// parseCount reads a non-negative integer form value.
func parseCount(value, field string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must not be negative", field)
	}
	return n, nil
}

func (m *Model) ask(c confirmation) {
	c.returnTo = m.state
	m.confirm = &c
	m.state = constants.StateConfirmation
}

func (m Model) updateConfirmation(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	c := *m.confirm
	switch keyMsg.String() {
	case "y", "Y":
		m.confirm = nil
		m.state = c.returnTo
		return m.confirmed(c)
	case "n", "N", "esc", "q":
		m.confirm = nil
		m.state = c.returnTo
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) confirmed(c confirmation) (tea.Model, tea.Cmd) {
	switch c.action {
	case confirmDeleteWorkout:
		if err := m.history.DeleteWorkout(c.targetID); err != nil {
			m.fail("Failed to delete workout", err)
			break
		}
		m.flash("Workout deleted")
		m.refreshWorkouts()

	case confirmAbandon:
		m.abandonWorkout()

	case confirmAbandonQuit:
		m.abandonWorkout()
		m.quitting = true
		return m, tea.Quit

	case confirmClearHistory:
		if err := m.history.ClearHistory(); err != nil {
			m.fail("Failed to clear history", err)
			break
		}
		m.flash("History cleared")
		m.refreshHistory()
	}
	return m, nil
}

func (m *Model) resize() {
	// tabs, status line and help
	h := max(m.height-6, 0)
	w := max(m.width-4, 0)
	m.workouts.SetSize(w, h)
	m.logbook.SetSize(w, h)
}

func (m *Model) flash(text string) {
	m.message = text
	m.errMessage = ""
}

func (m *Model) fail(what string, err error) {
	logger.Error(what, "error", err)
	m.message = ""
	m.errMessage = fmt.Sprintf("%s: %v", what, err)
}
