package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/liftlog/internal/constants"
	"github.com/julianstephens/liftlog/internal/models"
	"github.com/julianstephens/liftlog/internal/session"
)

// setRow is one selectable line of the session screen.
type setRow struct {
	exercise string
	number   int // 1-based within the exercise
	set      models.PlannedSet
}

func (m Model) sessionRows() []setRow {
	if m.session == nil {
		return nil
	}
	var rows []setRow
	for _, ex := range m.session.Plan().Exercises {
		for i, set := range ex.Sets {
			rows = append(rows, setRow{exercise: ex.Name, number: i + 1, set: set})
		}
	}
	return rows
}

func (m *Model) startWorkout(id string) {
	if m.session != nil && m.session.State() == session.Active {
		m.fail("Cannot start workout", fmt.Errorf("%q is still running", m.session.Plan().Name))
		return
	}
	plan, err := m.history.Workout(id)
	if err != nil {
		m.fail("Cannot start workout", err)
		return
	}
	if plan.SetCount() == 0 {
		m.fail("Cannot start workout", fmt.Errorf("%q has no sets", plan.Name))
		return
	}

	m.session = session.Start(plan, m.port, m.clock)
	m.finished = nil
	m.cursor = 0
	m.state = constants.StateSession
	m.message = ""
	m.errMessage = ""
}

func (m Model) handleSessionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.sessionRows()
	if len(rows) == 0 {
		return m, nil
	}
	row := rows[m.cursor]

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Complete):
		if m.session.CompleteSet(row.set.ID) {
			m.cursor = m.nextOpenRow(rows)
		}
	case key.Matches(msg, m.keys.Rate):
		rating := models.FeedbackNone
		if s := msg.String(); s != "0" {
			parsed, err := models.ParseFeedbackRating(s)
			if err != nil {
				return m, nil
			}
			rating = parsed
		}
		m.session.SetFeedback(row.exercise, rating)
	case key.Matches(msg, m.keys.Finish):
		return m.finishWorkout()
	case key.Matches(msg, m.keys.Abandon):
		m.ask(confirmation{prompt: fmt.Sprintf("Abandon %q? Nothing will be logged.", m.session.Plan().Name), action: confirmAbandon})
	}
	return m, nil
}

// nextOpenRow returns the first incomplete row after the cursor, wrapping
// around, or the cursor itself when every set is done.
func (m Model) nextOpenRow(rows []setRow) int {
	for i := 1; i <= len(rows); i++ {
		j := (m.cursor + i) % len(rows)
		if !m.session.IsCompleted(rows[j].set.ID) {
			return j
		}
	}
	return m.cursor
}

func (m Model) finishWorkout() (tea.Model, tea.Cmd) {
	log, ok := m.session.Finish()
	if !ok {
		return m, nil
	}
	m.finished = &log
	m.notesForm = &NotesFormModel{}
	m.form = NewNotesForm(m.notesForm)
	m.state = constants.StateNotes
	return m, m.form.Init()
}

func (m Model) updateNotes(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.saveFinished("")
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.saveFinished(m.notesForm.Notes)
	case huh.StateAborted:
		m.saveFinished("")
	}
	return m, cmd
}

// saveFinished persists the finished log with the given notes.
func (m *Model) saveFinished(notes string) {
	log := *m.finished
	log.Notes = notes

	m.form = nil
	m.notesForm = nil
	m.session = nil
	m.state = constants.StateWorkouts

	if err := m.history.AddLog(log); err != nil {
		m.fail("Failed to save workout", err)
		return
	}
	m.finished = &log
	m.flash(fmt.Sprintf("Saved %s: %s, %.0f kg", log.WorkoutName, log.FormattedDuration(), log.TotalVolume()))
	m.refreshHistory()
}

func (m *Model) abandonWorkout() {
	if m.session == nil {
		return
	}
	name := m.session.Plan().Name
	m.session.Abandon()
	m.session = nil
	m.state = constants.StateWorkouts
	m.flash(fmt.Sprintf("Abandoned %s", name))
}
