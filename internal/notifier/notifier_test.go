package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/liftlog/internal/constants"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func stubConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := userConfigDirFunc
	t.Cleanup(func() { userConfigDirFunc = old })
	userConfigDirFunc = func() (string, error) { return dir, nil }
	return dir
}

func stubProcess(t *testing.T, executable string) {
	t.Helper()
	old := findProcessFunc
	t.Cleanup(func() { findProcessFunc = old })
	findProcessFunc = func(pid int) (ps.Process, error) {
		if executable == "" {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: executable}, nil
	}
}

func TestGetTrayAppConfigDir(t *testing.T) {
	tempDir := stubConfigDir(t)

	expectedDefault := filepath.Join(tempDir, constants.TrayAppIdentifier)
	dir, err := GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != expectedDefault {
		t.Errorf("expected %s, got %s", expectedDefault, dir)
	}

	if err := os.MkdirAll(expectedDefault, 0755); err != nil {
		t.Fatal(err)
	}
	customDir := "/custom/liftlog/dir"
	settingsJSON := fmt.Sprintf(`{"settings": {"lockfile_dir": "%s"}}`, customDir)
	if err := os.WriteFile(filepath.Join(expectedDefault, "settings.json"), []byte(settingsJSON), 0644); err != nil {
		t.Fatal(err)
	}

	dir, err = GetTrayAppConfigDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != customDir {
		t.Errorf("expected %s, got %s", customDir, dir)
	}
}

func TestFindAndValidateTrayProcess(t *testing.T) {
	lockfilePath := filepath.Join(t.TempDir(), constants.NotifierLockfileName)

	if _, _, err := findAndValidateTrayProcess(lockfilePath); err == nil {
		t.Error("expected error for missing lockfile")
	}

	tests := []struct {
		name       string
		content    string
		executable string
		wantErr    string
	}{
		{"two parts", "8080|12345", "liftlog-tray", "malformed"},
		{"garbage", "invalid", "liftlog-tray", "malformed"},
		{"empty secret", "8080|12345|", "liftlog-tray", "secret"},
		{"empty port", "|12345|s3cret", "liftlog-tray", "port"},
		{"port out of range", "99999|12345|s3cret", "liftlog-tray", "outside valid range"},
		{"bad pid", "8080|abc|s3cret", "liftlog-tray", "process ID"},
		{"process missing", "8080|12345|s3cret", "", "not running"},
		{"wrong executable", "8080|12345|s3cret", "other-app", "is not liftlog-tray"},
		{"success", "8080|12345|s3cret\n", "liftlog-tray-x86_64", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubProcess(t, tt.executable)
			if err := os.WriteFile(lockfilePath, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			port, secret, err := findAndValidateTrayProcess(lockfilePath)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if port != "8080" || secret != "s3cret" {
				t.Errorf("got port=%q secret=%q", port, secret)
			}
		})
	}
}

func newTrayServer(t *testing.T, got chan<- WebhookPayload) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("X-Liftlog-Secret") != "test-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Unauthorized"))
			return
		}
		var payload WebhookPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if payload.Text == "fail" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if got != nil {
			got <- payload
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	parts := strings.Split(server.URL, ":")
	return parts[len(parts)-1]
}

func TestSend(t *testing.T) {
	port := newTrayServer(t, nil)
	n := New()
	ctx := context.Background()

	tests := []struct {
		name    string
		secret  string
		text    string
		wantErr bool
	}{
		{"success", "test-secret", "hello", false},
		{"missing secret", "", "hello", true},
		{"wrong secret", "wrong-secret", "hello", true},
		{"server error", "test-secret", "fail", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := n.send(ctx, port, tt.secret, WebhookPayload{Text: tt.text})
			if (err != nil) != tt.wantErr {
				t.Errorf("send() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNotify_EndToEnd(t *testing.T) {
	got := make(chan WebhookPayload, 1)
	port := newTrayServer(t, got)

	configDir := stubConfigDir(t)
	stubProcess(t, "liftlog-tray")

	trayDir := filepath.Join(configDir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(trayDir, 0755); err != nil {
		t.Fatal(err)
	}
	lock := fmt.Sprintf("%s|4242|test-secret", port)
	if err := os.WriteFile(filepath.Join(trayDir, constants.NotifierLockfileName), []byte(lock), 0600); err != nil {
		t.Fatal(err)
	}

	if err := New().Notify(context.Background(), "Rest over"); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	payload := <-got
	if payload.Text != "Rest over" || payload.DurationMs != constants.NotificationDurationMs {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestNotify_TrayNotRunning(t *testing.T) {
	stubConfigDir(t)
	err := New().Notify(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "not running") {
		t.Errorf("expected not running error, got %v", err)
	}
}

func TestTrayRunning(t *testing.T) {
	dir := stubConfigDir(t)
	if err := TrayRunning(); err == nil {
		t.Fatal("expected error without a lockfile")
	}

	lockDir := filepath.Join(dir, constants.TrayAppIdentifier)
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(lockDir, constants.NotifierLockfileName), []byte("8080|4242|s3cret"), 0600); err != nil {
		t.Fatal(err)
	}

	stubProcess(t, "other-app")
	if err := TrayRunning(); err == nil {
		t.Error("expected error for a foreign process")
	}

	stubProcess(t, constants.TrayExecutablePrefix)
	if err := TrayRunning(); err != nil {
		t.Errorf("TrayRunning() = %v", err)
	}
}
