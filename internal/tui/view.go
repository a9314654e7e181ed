package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/liftlog/internal/constants"
	"github.com/julianstephens/liftlog/internal/models"
	"github.com/julianstephens/liftlog/internal/stats"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateWorkouts:
		content = docStyle.Render(m.workouts.View())
	case constants.StateSession:
		content = docStyle.Render(m.viewSession())
	case constants.StateHistory:
		content = docStyle.Render(m.logbook.View())
	case constants.StateStats:
		content = docStyle.Render(m.viewStats())
	case constants.StateSettings:
		content = docStyle.Render(m.viewSettings())
	case constants.StateEditing, constants.StateNotes:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmation:
		content = m.viewConfirmation()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatusLine(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	titles := map[constants.SessionState]string{
		constants.StateWorkouts: "Workouts",
		constants.StateSession:  "Workout",
		constants.StateHistory:  "History",
		constants.StateStats:    "Stats",
		constants.StateSettings: "Settings",
	}

	current := m.state
	if m.confirm != nil {
		current = m.confirm.returnTo
	} else if m.state == constants.StateEditing {
		current = m.previousState
	} else if m.state == constants.StateNotes {
		current = constants.StateSession
	}

	var tabs []string
	for _, s := range m.tabs() {
		if s == current {
			tabs = append(tabs, activeTabStyle.Render(titles[s]))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(titles[s]))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatusLine() string {
	switch {
	case m.errMessage != "":
		return dangerStyle.Render(m.errMessage)
	case m.message != "":
		return messageStyle.Render(m.message)
	case m.validationWarning != "" && m.state == constants.StateWorkouts:
		return warningStyle.Render(m.validationWarning + " (run 'liftlog doctor' for details)")
	}
	return ""
}

func (m Model) viewSession() string {
	if m.session == nil {
		return ""
	}
	plan := m.session.Plan()

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n",
		titleStyle.Render(plan.Name),
		mutedStyle.Render(fmt.Sprintf("%s | %d/%d sets", models.FormatClock(m.session.Elapsed()), m.session.CompletedCount(), plan.SetCount())),
	)
	b.WriteString(m.viewRest())
	b.WriteString("\n")

	rows := m.sessionRows()
	last := ""
	for i, row := range rows {
		if row.exercise != last {
			if last != "" {
				b.WriteString("\n")
			}
			last = row.exercise
			b.WriteString(m.viewExerciseHeader(row.exercise))
			b.WriteString("\n")
		}

		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		line := fmt.Sprintf("Set %d  %d × %g kg", row.number, row.set.Reps, row.set.Weight)
		if row.set.RestSeconds > 0 {
			line += mutedStyle.Render(fmt.Sprintf("  rest %ds", row.set.RestSeconds))
		}
		if m.session.IsCompleted(row.set.ID) {
			line = doneStyle.Render(fmt.Sprintf("Set %d  %d × %g kg", row.number, row.set.Reps, row.set.Weight)) + " ✓"
		}
		b.WriteString(pointer + line + "\n")
	}
	return b.String()
}

func (m Model) viewExerciseHeader(name string) string {
	header := exerciseStyle.Render(name)
	if rating := m.session.Feedback(name); rating != models.FeedbackNone {
		header += " " + rating.Glyph()
	}
	var hints []string
	if set, ok := m.history.FindLastCompletedSet(name); ok {
		hints = append(hints, fmt.Sprintf("last %d × %g kg", set.Reps, set.Weight))
	}
	if rating, ok := m.history.FindLastFeedback(name); ok {
		hints = append(hints, "felt "+strings.ToLower(rating.Label()))
	}
	if len(hints) > 0 {
		header += "  " + mutedStyle.Render(strings.Join(hints, ", "))
	}
	return header
}

func (m Model) viewRest() string {
	rest := m.session.Rest()
	if !rest.CountingDown || rest.TotalSeconds == 0 {
		return mutedStyle.Render("Ready for the next set") + "\n"
	}
	remaining := time.Duration(rest.Remaining) * time.Second
	done := 1 - float64(rest.Remaining)/float64(rest.TotalSeconds)
	return fmt.Sprintf("%s %s\n",
		restStyle.Render("Rest "+models.FormatClock(remaining)),
		m.restBar.ViewAs(done),
	)
}

func (m Model) viewStats() string {
	logs := m.history.History()
	if len(logs) == 0 {
		return "\n  No workouts logged yet."
	}

	totals := stats.Summary(logs)
	var b strings.Builder
	b.WriteString(titleStyle.Render("Overview"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d workouts | %d sets | %.0f kg | %s\n\n",
		totals.Workouts, totals.Sets, totals.Volume, models.FormatDuration(totals.Duration))

	names := m.history.ExerciseNames("")
	left := make([]string, len(names))
	for i, name := range names {
		if i == m.statsCursor {
			left[i] = cursorStyle.Render("> " + name)
		} else {
			left[i] = "  " + name
		}
	}

	var right string
	if m.statsCursor < len(names) {
		right = renderExerciseStats(stats.ForExercise(logs, names[m.statsCursor]))
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().MarginRight(4).Render(strings.Join(left, "\n")),
		right,
	))
	return b.String()
}

func renderExerciseStats(s stats.ExerciseStats) string {
	var b strings.Builder
	b.WriteString(exerciseStyle.Render(s.Name))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Sessions:       %d\n", s.Sessions)
	fmt.Fprintf(&b, "Best set:       %.0f kg\n", s.MaxSetVolume)
	fmt.Fprintf(&b, "Total volume:   %.0f kg\n", s.TotalVolume)
	if s.RecordSet != nil {
		fmt.Fprintf(&b, "Heaviest set:   %d × %g kg\n", s.RecordSet.Reps, s.RecordSet.Weight)
	}
	if s.ChartAvailable() {
		b.WriteString("\n")
		b.WriteString(restStyle.Render(stats.Sparkline(s.Points)))
		b.WriteString("\n")
		first, last := s.Points[0], s.Points[len(s.Points)-1]
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%s → %s", first.Date.Local().Format(constants.DateFormat), last.Date.Local().Format(constants.DateFormat))))
	} else {
		b.WriteString(mutedStyle.Render("\nLog this exercise again to see a trend."))
	}
	return b.String()
}

func (m Model) viewSettings() string {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	status := m.settings.StatusFile
	if status == "" {
		status = "default"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Notifications:   %s\n", onOff(m.settings.NotificationsEnabled))
	fmt.Fprintf(&b, "Rest alerts:     %s\n", onOff(m.settings.RestAlerts))
	fmt.Fprintf(&b, "Live status:     %s\n", onOff(m.settings.LiveStatus))
	fmt.Fprintf(&b, "Status file:     %s\n", status)
	fmt.Fprintf(&b, "Default rest:    %ds\n", m.settings.DefaultRestSeconds)
	fmt.Fprintf(&b, "Storage:         %s\n", m.store.GetConfigPath())
	return b.String()
}

func (m Model) viewConfirmation() string {
	return lipgloss.Place(m.width, max(m.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(m.confirm.prompt),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
