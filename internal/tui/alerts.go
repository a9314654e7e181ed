package tui

import (
	"context"
	"errors"
	"io"
)

// alertMsg shows a delivered alert in the status line.
type alertMsg struct {
	text string
}

// ProgramSender delivers alerts into the running TUI: the text is shown in
// the status line and the terminal bell rings.
type ProgramSender struct {
	clock *DispatchClock
	bell  io.Writer
}

// NewProgramSender posts through the program attached to clk. bell may be
// nil to stay silent.
func NewProgramSender(clk *DispatchClock, bell io.Writer) *ProgramSender {
	return &ProgramSender{clock: clk, bell: bell}
}

func (s *ProgramSender) Notify(_ context.Context, text string) error {
	if !s.clock.post(alertMsg{text: text}) {
		return errors.New("TUI is not running")
	}
	if s.bell != nil {
		_, _ = io.WriteString(s.bell, "\a")
	}
	return nil
}
