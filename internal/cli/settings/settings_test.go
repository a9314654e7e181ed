package settings

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/liftlog/internal/cli"
	"github.com/julianstephens/liftlog/internal/models"
	"github.com/julianstephens/liftlog/internal/storage"
	"github.com/julianstephens/liftlog/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	out := &bytes.Buffer{}
	ctx := cli.NewContext(store, nil)
	ctx.Out = out
	return ctx, out
}

func boolPtr(b bool) *bool { return &b }

func TestSettingsCmd_List(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Fatalf("settings list failed: %v", err)
	}
	for _, want := range []string{"rest_alerts:", "default_rest_seconds:  60", "status_file:", "(default)"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, _ := setupTestDB(t)

	rest := 90
	cmd := &SettingsCmd{
		RestAlerts:         boolPtr(false),
		DefaultRestSeconds: &rest,
		Set:                []string{"live_status=false", "status_file=/tmp/liftlog-status.json"},
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	got, err := storage.LoadSettings(ctx.Store)
	if err != nil {
		t.Fatal(err)
	}
	want := models.DefaultSettings()
	want.RestAlerts = false
	want.LiveStatus = false
	want.DefaultRestSeconds = 90
	want.StatusFile = "/tmp/liftlog-status.json"
	if got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
}

func TestSettingsCmd_Invalid(t *testing.T) {
	negative := -5
	tests := []struct {
		name string
		cmd  *SettingsCmd
	}{
		{"negative rest", &SettingsCmd{DefaultRestSeconds: &negative}},
		{"missing equals", &SettingsCmd{Set: []string{"rest_alerts"}}},
		{"empty key", &SettingsCmd{Set: []string{"=true"}}},
		{"unknown key", &SettingsCmd{Set: []string{"volume=11"}}},
		{"bad bool", &SettingsCmd{Set: []string{"rest_alerts=maybe"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupTestDB(t)
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error")
			}
			got, _ := storage.LoadSettings(ctx.Store)
			if got != models.DefaultSettings() {
				t.Errorf("settings changed after invalid input: %+v", got)
			}
		})
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, out := setupTestDB(t)
	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No changes specified") {
		t.Errorf("unexpected output: %q", out.String())
	}
}
