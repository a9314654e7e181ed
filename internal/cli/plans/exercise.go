package plans

import (
	"fmt"
	"strings"

	"github.com/julianstephens/liftlog/internal/cli"
)

type ExerciseAddCmd struct {
	Plan string `arg:"" help:"Plan position, id or name."`
	Name string `arg:"" help:"Exercise name."`
	Sets int    `help:"Number of sets." default:"1"`

	SetValues `embed:""`
}

func (c *ExerciseAddCmd) Run(ctx *cli.Context) error {
	if err := c.validate(); err != nil {
		return err
	}
	if c.Sets < 1 {
		return fmt.Errorf("an exercise needs at least one set")
	}
	if err := ctx.Load(); err != nil {
		return err
	}

	plan, err := resolvePlan(ctx, c.Plan)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("exercise name cannot be empty")
	}

	ex := plan.AddExercise(name)
	ex.Sets[0].RestSeconds = ctx.Settings().DefaultRestSeconds
	c.apply(&ex.Sets[0])
	for len(ex.Sets) < c.Sets {
		ex.AddSet()
	}
	if err := ctx.History.UpdateWorkout(plan); err != nil {
		return err
	}

	ctx.Printf("✓ Added %s to %s (%d × %s)\n", name, plan.Name, len(ex.Sets), describeSet(ex.Sets[0]))
	return nil
}

type ExerciseRemoveCmd struct {
	Plan     string `arg:"" help:"Plan position, id or name."`
	Exercise string `arg:"" help:"Exercise position or name."`
}

func (c *ExerciseRemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	plan, err := resolvePlan(ctx, c.Plan)
	if err != nil {
		return err
	}
	i, err := exerciseIndex(plan, c.Exercise)
	if err != nil {
		return err
	}

	ex := plan.Exercises[i]
	plan.RemoveExercise(ex.ID)
	if err := ctx.History.UpdateWorkout(plan); err != nil {
		return err
	}

	ctx.Printf("✓ Removed %s from %s\n", ex.Name, plan.Name)
	return nil
}

type SetAddCmd struct {
	Plan     string `arg:"" help:"Plan position, id or name."`
	Exercise string `arg:"" help:"Exercise position or name."`

	SetValues `embed:""`
}

// Run appends a set copying the previous one, then applies any flags.
func (c *SetAddCmd) Run(ctx *cli.Context) error {
	if err := c.validate(); err != nil {
		return err
	}
	if err := ctx.Load(); err != nil {
		return err
	}

	plan, err := resolvePlan(ctx, c.Plan)
	if err != nil {
		return err
	}
	i, err := exerciseIndex(plan, c.Exercise)
	if err != nil {
		return err
	}

	ex := &plan.Exercises[i]
	ex.AddSet()
	set := &ex.Sets[len(ex.Sets)-1]
	c.apply(set)
	if err := ctx.History.UpdateWorkout(plan); err != nil {
		return err
	}

	ctx.Printf("✓ Added set %d to %s: %s\n", len(ex.Sets), ex.Name, describeSet(*set))
	return nil
}

type SetRemoveCmd struct {
	Plan     string `arg:"" help:"Plan position, id or name."`
	Exercise string `arg:"" help:"Exercise position or name."`
	Set      int    `arg:"" help:"1-based set number."`
}

func (c *SetRemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	plan, err := resolvePlan(ctx, c.Plan)
	if err != nil {
		return err
	}
	i, err := exerciseIndex(plan, c.Exercise)
	if err != nil {
		return err
	}
	ex := &plan.Exercises[i]
	j, err := setIndex(*ex, c.Set)
	if err != nil {
		return err
	}

	ex.RemoveSet(ex.Sets[j].ID)
	if err := ctx.History.UpdateWorkout(plan); err != nil {
		return err
	}

	ctx.Printf("✓ Removed set %d from %s\n", c.Set, ex.Name)
	if len(ex.Sets) == 0 {
		ctx.Printf("⚠ %s has no sets left\n", ex.Name)
	}
	return nil
}

type SetEditCmd struct {
	Plan     string `arg:"" help:"Plan position, id or name."`
	Exercise string `arg:"" help:"Exercise position or name."`
	Set      int    `arg:"" help:"1-based set number."`

	SetValues `embed:""`
}

func (c *SetEditCmd) Run(ctx *cli.Context) error {
	if err := c.validate(); err != nil {
		return err
	}
	if err := ctx.Load(); err != nil {
		return err
	}

	plan, err := resolvePlan(ctx, c.Plan)
	if err != nil {
		return err
	}
	i, err := exerciseIndex(plan, c.Exercise)
	if err != nil {
		return err
	}
	ex := &plan.Exercises[i]
	j, err := setIndex(*ex, c.Set)
	if err != nil {
		return err
	}

	if !c.apply(&ex.Sets[j]) {
		ctx.Println("No changes specified. Use --reps, --weight or --rest.")
		return nil
	}
	if err := ctx.History.UpdateWorkout(plan); err != nil {
		return err
	}

	ctx.Printf("✓ Updated %s set %d: %s\n", ex.Name, c.Set, describeSet(ex.Sets[j]))
	return nil
}
