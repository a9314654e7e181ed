package workouts

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/liftlog/internal/models"
)

type StartWorkoutMsg struct {
	ID string
}

type AddWorkoutMsg struct{}

type AddExerciseMsg struct {
	Plan models.WorkoutPlan
}

type CloneWorkoutMsg struct {
	ID string
}

type RenameWorkoutMsg struct {
	Plan models.WorkoutPlan
}

type DeleteWorkoutMsg struct {
	ID string
}

type Item struct {
	Plan     models.WorkoutPlan
	Warnings int
}

func (i Item) Title() string {
	if i.Warnings > 0 {
		return i.Plan.Name + " ⚠"
	}
	return i.Plan.Name
}

func (i Item) Description() string {
	n := len(i.Plan.Exercises)
	noun := "exercises"
	if n == 1 {
		noun = "exercise"
	}
	return fmt.Sprintf("%d %s | %d sets", n, noun, i.Plan.SetCount())
}

func (i Item) FilterValue() string { return i.Plan.Name }

type KeyMap struct {
	Start  key.Binding
	Add    key.Binding
	Edit   key.Binding
	Clone  key.Binding
	Rename key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start: key.NewBinding(
			key.WithKeys("enter", "s"),
			key.WithHelp("enter", "start"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "add exercise"),
		),
		Clone: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clone"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

// Bindings lists the actions for the global help bar.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Start, k.Add, k.Edit, k.Clone, k.Rename, k.Delete}
}

type Model struct {
	list list.Model
	keys KeyMap
}

// New builds the list. warnings maps plan id to its validation warning count.
func New(plans []models.WorkoutPlan, warnings map[string]int, width, height int) Model {
	l := list.New(items(plans, warnings), list.NewDefaultDelegate(), width, height)
	l.Title = "Workouts"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	return Model{list: l, keys: DefaultKeyMap()}
}

func items(plans []models.WorkoutPlan, warnings map[string]int) []list.Item {
	out := make([]list.Item, len(plans))
	for i, p := range plans {
		out[i] = Item{Plan: p, Warnings: warnings[p.ID]}
	}
	return out
}

func (m *Model) SetPlans(plans []models.WorkoutPlan, warnings map[string]int) {
	m.list.SetItems(items(plans, warnings))
}

func (m Model) Keys() KeyMap { return m.keys }

// Selected returns the highlighted plan.
func (m Model) Selected() (models.WorkoutPlan, bool) {
	if i, ok := m.list.SelectedItem().(Item); ok {
		return i.Plan, true
	}
	return models.WorkoutPlan{}, false
}

// Filtering reports whether the list is capturing keys for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		if key.Matches(msg, m.keys.Add) {
			return m, func() tea.Msg { return AddWorkoutMsg{} }
		}
		plan, ok := m.Selected()
		if !ok {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Start):
			return m, func() tea.Msg { return StartWorkoutMsg{ID: plan.ID} }
		case key.Matches(msg, m.keys.Edit):
			return m, func() tea.Msg { return AddExerciseMsg{Plan: plan} }
		case key.Matches(msg, m.keys.Clone):
			return m, func() tea.Msg { return CloneWorkoutMsg{ID: plan.ID} }
		case key.Matches(msg, m.keys.Rename):
			return m, func() tea.Msg { return RenameWorkoutMsg{Plan: plan} }
		case key.Matches(msg, m.keys.Delete):
			return m, func() tea.Msg { return DeleteWorkoutMsg{ID: plan.ID} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No workouts yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
