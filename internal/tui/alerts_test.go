package tui

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestProgramSender(t *testing.T) {
	c := NewDispatchClock()
	var bell bytes.Buffer
	sender := NewProgramSender(c, &bell)

	if err := sender.Notify(context.Background(), "Rest over"); err == nil {
		t.Error("expected an error before a program is attached")
	}
	if bell.Len() != 0 {
		t.Error("bell must stay silent when nothing was shown")
	}

	var posted []tea.Msg
	c.send = func(msg tea.Msg) { posted = append(posted, msg) }
	if err := sender.Notify(context.Background(), "Rest over"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if bell.String() != "\a" {
		t.Errorf("bell wrote %q", bell.String())
	}
	if len(posted) != 1 {
		t.Fatalf("posted %d messages, want 1", len(posted))
	}

	m, _ := newHarness(t)
	m, _ = send(m, posted[0])
	if m.message != "Rest over" {
		t.Errorf("status line = %q, want the alert text", m.message)
	}
}
