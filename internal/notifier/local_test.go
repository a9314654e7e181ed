package notifier

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/liftlog/internal/constants"
	"github.com/julianstephens/liftlog/internal/models"
)

func TestLiveStatusSummary(t *testing.T) {
	now := time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC)
	ends := now.Add(75 * time.Second)
	past := now.Add(-time.Second)

	tests := []struct {
		name   string
		status LiveStatus
		want   string
	}{
		{"label only", LiveStatus{Label: "Push Day"}, "Push Day"},
		{"elapsed", LiveStatus{Label: "Push Day", Elapsed: "00:01:02"}, "Push Day 00:01:02"},
		{"resting", LiveStatus{Label: "Legs", Elapsed: "00:10:00", Resting: true, EndsAt: &ends}, "Legs 00:10:00 | rest 1:15"},
		{"rest overdue", LiveStatus{Label: "Legs", Resting: true, EndsAt: &past}, "Legs | rest 0:00"},
		{"not resting ignores end", LiveStatus{Label: "Legs", EndsAt: &ends}, "Legs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Summary(now); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusFile(t *testing.T) {
	f := NewStatusFile(filepath.Join(t.TempDir(), "sub", constants.StatusFileName))
	now := time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC)
	ends := now.Add(time.Minute)

	if err := f.Write(LiveStatus{Label: "Push Day", Resting: true, EndsAt: &ends, Elapsed: "00:00:05"}, now); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	raw, err := os.ReadFile(f.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"summary": "Push Day 00:00:05 | rest 1:00"`) {
		t.Errorf("status file missing summary: %s", raw)
	}

	got, err := f.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.Label != "Push Day" || !got.Resting || got.EndsAt == nil || !got.EndsAt.Equal(ends) {
		t.Errorf("Read() = %+v", got)
	}

	if err := f.Remove(); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := f.Remove(); err != nil {
		t.Errorf("second Remove should succeed, got %v", err)
	}
}

func TestLocal_Toggles(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*models.Settings)
		wantAlerts bool
		wantStatus bool
	}{
		{"defaults", func(*models.Settings) {}, true, true},
		{"master off", func(s *models.Settings) { s.NotificationsEnabled = false }, false, false},
		{"alerts off", func(s *models.Settings) { s.RestAlerts = false }, false, true},
		{"status off", func(s *models.Settings) { s.LiveStatus = false }, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := models.DefaultSettings()
			settings.NotificationsEnabled = true
			settings.RestAlerts = true
			settings.LiveStatus = true
			tt.mutate(&settings)

			path := filepath.Join(t.TempDir(), constants.StatusFileName)
			l := NewLocal(settings, path, newFakeSender())
			defer l.Close()

			l.BeginLiveStatus("Push Day")
			l.ScheduleDelayedAlert(time.Hour)

			if got := len(l.PendingAlerts()) == 1; got != tt.wantAlerts {
				t.Errorf("alert pending = %v, want %v", got, tt.wantAlerts)
			}
			_, err := os.Stat(path)
			if got := err == nil; got != tt.wantStatus {
				t.Errorf("status file present = %v, want %v", got, tt.wantStatus)
			}
		})
	}
}

func TestLocal_Lifecycle(t *testing.T) {
	settings := models.Settings{NotificationsEnabled: true, RestAlerts: true, LiveStatus: true}
	path := filepath.Join(t.TempDir(), constants.StatusFileName)
	l := NewLocal(settings, path, newFakeSender())

	// Updates before Begin are ignored.
	l.UpdateLiveStatus(LiveStatus{Label: "early"})
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("status written before BeginLiveStatus")
	}

	l.BeginLiveStatus("Legs")
	l.UpdateLiveStatus(LiveStatus{Label: "Legs", Elapsed: "00:00:01"})
	got, err := NewStatusFile(path).Read()
	if err != nil || got.Elapsed != "00:00:01" {
		t.Fatalf("status = %+v, %v", got, err)
	}

	l.ScheduleDelayedAlert(time.Hour)
	l.ScheduleDelayedAlert(time.Hour)
	if ids := l.PendingAlerts(); len(ids) != 1 || ids[0] != constants.RestAlertID {
		t.Errorf("PendingAlerts() = %v", ids)
	}
	l.CancelDelayedAlert()
	if ids := l.PendingAlerts(); len(ids) != 0 {
		t.Errorf("expected no alerts after cancel, got %v", ids)
	}

	l.EndLiveStatus()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("status file should be removed on EndLiveStatus")
	}
	l.UpdateLiveStatus(LiveStatus{Label: "late"})
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("status written after EndLiveStatus")
	}
}

func TestLocal_WriteFailureIsSwallowed(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0600); err != nil {
		t.Fatal(err)
	}
	settings := models.Settings{NotificationsEnabled: true, LiveStatus: true}
	// The parent is a regular file, so every write fails.
	l := NewLocal(settings, filepath.Join(blocker, "status.json"), nil)

	l.BeginLiveStatus("x")
	l.UpdateLiveStatus(LiveStatus{Label: "x"})
	l.EndLiveStatus()
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	var _ Port = r
	var _ Port = Nop{}
	var _ Port = &Local{}

	r.BeginLiveStatus("Push Day")
	r.ScheduleDelayedAlert(90 * time.Second)
	r.ScheduleDelayedAlert(30 * time.Second)
	if r.PendingAlerts() != 1 || r.PendingAfter() != 30*time.Second {
		t.Errorf("pending = %d after %v", r.PendingAlerts(), r.PendingAfter())
	}
	r.UpdateLiveStatus(LiveStatus{Label: "Push Day", Resting: true})
	r.CancelDelayedAlert()
	r.EndLiveStatus()

	if r.PendingAlerts() != 0 || r.Live() {
		t.Error("expected nothing pending and status ended")
	}
	if last, ok := r.Last(); !ok || !last.Resting {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
	want := "begin:Push Day,schedule:1m30s,schedule:30s,update,cancel,end"
	if got := strings.Join(r.Calls(), ","); got != want {
		t.Errorf("Calls() = %s, want %s", got, want)
	}
	if r.Count("cancel") != 1 {
		t.Errorf("Count(cancel) = %d", r.Count("cancel"))
	}
}
