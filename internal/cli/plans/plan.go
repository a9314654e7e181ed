package plans

import (
	"fmt"
	"strings"

	"github.com/julianstephens/liftlog/internal/cli"
	"github.com/julianstephens/liftlog/internal/models"
	"github.com/julianstephens/liftlog/internal/validation"
)

type PlanListCmd struct{}

func (c *PlanListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	plans := ctx.History.Workouts()
	if len(plans) == 0 {
		ctx.Println("No workout plans. Add one with: liftlog plan add <name>")
		return nil
	}

	for i, p := range plans {
		ctx.Printf("%2d. %-28s %2d exercises  %2d sets  [%s]\n", i+1, p.Name, len(p.Exercises), p.SetCount(), shortID(p.ID))
	}
	return nil
}

type PlanShowCmd struct {
	Plan string `arg:"" help:"Plan position, id or name."`
}

func (c *PlanShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	plan, err := resolvePlan(ctx, c.Plan)
	if err != nil {
		return err
	}

	ctx.Printf("%s  [%s]\n", plan.Name, plan.ID)
	if len(plan.Exercises) == 0 {
		ctx.Println("  (no exercises)")
	}
	for i, ex := range plan.Exercises {
		ctx.Printf("\n%d. %s\n", i+1, ex.Name)
		for j, set := range ex.Sets {
			rest := "no rest"
			if set.RestSeconds > 0 {
				rest = fmt.Sprintf("rest %ds", set.RestSeconds)
			}
			ctx.Printf("   set %d: %d × %s kg, %s\n", j+1, set.Reps, formatWeight(set.Weight), rest)
		}
		if last, ok := ctx.History.FindLastCompletedSet(ex.Name); ok {
			line := fmt.Sprintf("   last: %d × %s kg", last.Reps, formatWeight(last.Weight))
			if fb, ok := ctx.History.FindLastFeedback(ex.Name); ok {
				line += fmt.Sprintf(" %s %s", fb.Glyph(), fb.Label())
			}
			ctx.Println(line)
		}
	}

	result := validation.New().ValidatePlan(plan)
	if result.HasConflicts() {
		ctx.Println()
		ctx.Printf("%s", result.FormatReport())
	}
	return nil
}

type PlanAddCmd struct {
	Name      string   `arg:"" help:"Name of the new plan."`
	Exercises []string `help:"Exercises to add, each with one default set." sep:","`
}

func (c *PlanAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("plan name cannot be empty")
	}

	plan, err := ctx.History.AddWorkout(name)
	if err != nil {
		return err
	}
	if len(c.Exercises) > 0 {
		rest := ctx.Settings().DefaultRestSeconds
		for _, exName := range c.Exercises {
			if exName = strings.TrimSpace(exName); exName == "" {
				continue
			}
			ex := plan.AddExercise(exName)
			ex.Sets[0].RestSeconds = rest
		}
		if err := ctx.History.UpdateWorkout(plan); err != nil {
			return err
		}
	}

	ctx.Printf("✓ Added plan %s [%s]\n", plan.Name, shortID(plan.ID))
	return nil
}

type PlanCloneCmd struct {
	Plan string `arg:"" help:"Plan position, id or name."`
}

func (c *PlanCloneCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	plan, err := resolvePlan(ctx, c.Plan)
	if err != nil {
		return err
	}
	clone, err := ctx.History.CloneWorkout(plan.ID)
	if err != nil {
		return err
	}

	ctx.Printf("✓ Cloned %s as %s [%s]\n", plan.Name, clone.Name, shortID(clone.ID))
	return nil
}

type PlanRenameCmd struct {
	Plan string `arg:"" help:"Plan position, id or name."`
	Name string `arg:"" help:"New name."`
}

func (c *PlanRenameCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	plan, err := resolvePlan(ctx, c.Plan)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("plan name cannot be empty")
	}

	old := plan.Name
	plan.Name = name
	if err := ctx.History.UpdateWorkout(plan); err != nil {
		return err
	}

	ctx.Printf("✓ Renamed %s to %s\n", old, plan.Name)
	return nil
}

type PlanMoveCmd struct {
	Plan     string `arg:"" help:"Plan position, id or name."`
	Position int    `arg:"" help:"New 1-based position."`
}

func (c *PlanMoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	plan, err := resolvePlan(ctx, c.Plan)
	if err != nil {
		return err
	}
	from := -1
	for i, p := range ctx.History.Workouts() {
		if p.ID == plan.ID {
			from = i
			break
		}
	}
	if err := ctx.History.MoveWorkout(from, c.Position-1); err != nil {
		return err
	}

	ctx.Printf("✓ Moved %s to position %d\n", plan.Name, c.Position)
	return nil
}

type PlanDeleteCmd struct {
	Plan string `arg:"" help:"Plan position, id or name."`
	Yes  bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *PlanDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	plan, err := resolvePlan(ctx, c.Plan)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete plan %q? Logged workouts are kept.", plan.Name))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Delete cancelled.")
			return nil
		}
	}

	if err := ctx.History.DeleteWorkout(plan.ID); err != nil {
		return err
	}
	ctx.Printf("✓ Deleted plan %s\n", plan.Name)
	return nil
}

// describeSet renders a planned set for command output.
func describeSet(set models.PlannedSet) string {
	return fmt.Sprintf("%d × %s kg, rest %ds", set.Reps, formatWeight(set.Weight), set.RestSeconds)
}
