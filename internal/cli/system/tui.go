package system

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/liftlog/internal/cli"
	"github.com/julianstephens/liftlog/internal/notifier"
	"github.com/julianstephens/liftlog/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Load(); err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	clk := tui.NewDispatchClock()
	port := ctx.NewPort(tui.NewProgramSender(clk, os.Stderr), notifier.Bell{W: os.Stderr})
	defer port.Close()

	model := tui.NewModel(tui.Options{
		History:  ctx.History,
		Store:    ctx.Store,
		Port:     port,
		Clock:    clk,
		Settings: ctx.Settings(),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	clk.Attach(p)

	final, err := p.Run()
	if m, ok := final.(tui.Model); ok {
		m.Close()
	}
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
