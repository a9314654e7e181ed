// Package logbook renders completed workouts grouped by day.
package logbook

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/liftlog/internal/models"
	"github.com/julianstephens/liftlog/internal/stats"
)

var (
	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	workoutStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	notesStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	logs     []models.WorkoutLog
	width    int
	height   int
}

func New(logs []models.WorkoutLog, width, height int) Model {
	m := Model{viewport: viewport.New(width, height)}
	m.SetLogs(logs)
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.logs) == 0 {
		return "\n  No workouts logged yet.\n  Finish a workout to see it here."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetLogs(logs []models.WorkoutLog) {
	m.logs = logs
	m.Render()
	m.viewport.GotoTop()
}

func (m *Model) Render() {
	m.viewport.SetContent(Render(m.logs))
}

// Render formats logs as day sections, most recent day first.
func Render(logs []models.WorkoutLog) string {
	var b strings.Builder
	for i, group := range stats.GroupByDay(logs) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(dayStyle.Render(group.Day.Format("Monday, Jan 2 2006")))
		b.WriteString("\n")
		for _, log := range group.Logs {
			b.WriteString(renderLog(log))
		}
	}
	return b.String()
}

func renderLog(log models.WorkoutLog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s\n",
		workoutStyle.Render(log.WorkoutName),
		detailStyle.Render(fmt.Sprintf("%s | %s | %.0f kg", log.Date.Local().Format("15:04"), log.FormattedDuration(), log.TotalVolume())),
	)
	for _, ex := range log.CompletedExercises {
		sets := make([]string, len(ex.Sets))
		for i, set := range ex.Sets {
			sets[i] = fmt.Sprintf("%d×%g", set.Reps, set.Weight)
		}
		line := fmt.Sprintf("    %s: %s", ex.Name, strings.Join(sets, ", "))
		if ex.Feedback != models.FeedbackNone {
			line += " " + ex.Feedback.Glyph()
		}
		b.WriteString(detailStyle.Render(line))
		b.WriteString("\n")
	}
	if log.Notes != "" {
		b.WriteString(notesStyle.Render("    " + log.Notes))
		b.WriteString("\n")
	}
	return b.String()
}
