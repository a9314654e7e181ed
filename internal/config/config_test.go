package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func stubHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	old := userHomeDirFunc
	t.Cleanup(func() { userHomeDirFunc = old })
	userHomeDirFunc = func() (string, error) { return home, nil }
	return home
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LIFTLOG_STORAGE", "LIFTLOG_DEBUG", "LIFTLOG_LOG_LEVEL", "LIFTLOG_STATUS_FILE"} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "storage: /data/lifts.json\ndebug: true\nlog_level: warn\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage != "/data/lifts.json" || !cfg.Debug || cfg.LogLevel != "warn" {
		t.Errorf("Load() = %+v", cfg)
	}

	t.Setenv("LIFTLOG_STORAGE", "postgres://me@db/liftlog")
	t.Setenv("LIFTLOG_DEBUG", "false")
	t.Setenv("LIFTLOG_STATUS_FILE", "/tmp/status.json")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage != "postgres://me@db/liftlog" || cfg.Debug || cfg.StatusFile != "/tmp/status.json" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "storage: [unclosed", "parsing config file"},
		{"empty storage", "storage: \"  \"", "storage is required"},
		{"bad level", "log_level: loud", "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	home := stubHome(t)

	cfg := Default()
	cfg.StatusFile = "/run/liftlog.json"
	if err := cfg.Save("~/.config/liftlog/config.yaml"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".config", "liftlog", "config.yaml")); err != nil {
		t.Fatalf("config not written under home: %v", err)
	}

	got, err := Load("~/.config/liftlog/config.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestExpandPath(t *testing.T) {
	home := stubHome(t)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/x/liftlog.db", filepath.Join(home, "x", "liftlog.db")},
		{"/abs/liftlog.db", "/abs/liftlog.db"},
		{"rel.json", "rel.json"},
		{"~other/x", "~other/x"},
		{"postgres://me@host/db", "postgres://me@host/db"},
	}
	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		if err != nil {
			t.Fatalf("ExpandPath(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsPostgres(t *testing.T) {
	for in, want := range map[string]bool{
		"postgres://h/db":   true,
		"postgresql://h/db": true,
		"~/liftlog.db":      false,
		"host=localhost":    false,
	} {
		if got := IsPostgres(in); got != want {
			t.Errorf("IsPostgres(%q) = %v", in, got)
		}
	}
}
