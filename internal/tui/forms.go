package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

// NewWorkoutForm asks for a plan name. It serves both create and rename.
func NewWorkoutForm(fm *WorkoutFormModel, title string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("workout name cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewExerciseForm(fm *ExerciseFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Exercise").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("exercise name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Sets").
				Value(&fm.Sets).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return err
					}
					if n < 1 {
						return fmt.Errorf("an exercise needs at least one set")
					}
					return nil
				}),
			huh.NewInput().
				Title("Reps").
				Value(&fm.Reps).
				Validate(validateNonNegativeInt("reps")),
			huh.NewInput().
				Title("Weight (kg)").
				Value(&fm.Weight).
				Validate(func(s string) error {
					w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil {
						return err
					}
					if w < 0 {
						return fmt.Errorf("weight must not be negative")
					}
					return nil
				}),
			huh.NewInput().
				Title("Rest (seconds)").
				Description("0 disables the rest timer").
				Value(&fm.Rest).
				Validate(validateNonNegativeInt("rest")),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewNotesForm(fm *NotesFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Workout notes").
				Description("Optional. Esc saves without notes.").
				CharLimit(1000).
				Value(&fm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewSettingsForm(fm *SettingsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Notifications").
				Description("Master switch for alerts and the live status file").
				Value(&fm.NotificationsEnabled),
			huh.NewConfirm().
				Title("Rest alerts").
				Value(&fm.RestAlerts),
			huh.NewConfirm().
				Title("Live status").
				Value(&fm.LiveStatus),
			huh.NewInput().
				Title("Default rest (seconds)").
				Value(&fm.DefaultRestSeconds).
				Validate(validateNonNegativeInt("rest")),
		),
	).WithTheme(huh.ThemeDracula())
}

func validateNonNegativeInt(field string) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("%s must not be negative", field)
		}
		return nil
	}
}
