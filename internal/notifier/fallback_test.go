package notifier

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/liftlog/internal/models"
)

func TestFallback_FirstSuccessWins(t *testing.T) {
	first := newFakeSender()
	second := newFakeSender()

	if err := NewFallback(first, nil, second).Notify(context.Background(), "go"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if first.count() != 1 || second.count() != 0 {
		t.Errorf("sent first=%d second=%d, want 1 and 0", first.count(), second.count())
	}
}

func TestFallback_FallsThroughOnError(t *testing.T) {
	first := newFakeSender()
	first.err = errors.New("tray down")
	second := newFakeSender()

	if err := NewFallback(first, second).Notify(context.Background(), "go"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}
	if second.count() != 1 {
		t.Errorf("fallback sent %d alerts, want 1", second.count())
	}
}

func TestFallback_AllFail(t *testing.T) {
	first := newFakeSender()
	first.err = errors.New("tray down")
	second := newFakeSender()
	second.err = errors.New("no terminal")

	err := NewFallback(first, second).Notify(context.Background(), "go")
	if err == nil || !strings.Contains(err.Error(), "tray down") || !strings.Contains(err.Error(), "no terminal") {
		t.Errorf("expected both errors, got %v", err)
	}
	if err := NewFallback().Notify(context.Background(), "go"); err == nil {
		t.Error("expected an error with no senders")
	}
}

func TestBell(t *testing.T) {
	var buf bytes.Buffer
	if err := (Bell{W: &buf}).Notify(context.Background(), "Rest over"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\aRest over\n" {
		t.Errorf("bell wrote %q", buf.String())
	}
	if err := (Bell{}).Notify(context.Background(), "x"); err == nil {
		t.Error("expected an error without output")
	}
}

func TestLocal_AlertReachesFallbackWithoutTray(t *testing.T) {
	stubConfigDir(t)
	fallback := newFakeSender()

	l := NewLocal(models.DefaultSettings(), "", NewFallback(New(), fallback))
	defer l.Close()

	l.ScheduleDelayedAlert(10 * time.Millisecond)
	if got := waitSent(t, fallback); got != RestAlertText {
		t.Errorf("fallback got %q, want %q", got, RestAlertText)
	}
}
