package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildCLI compiles the liftlog binary into dir, or uses LIFTLOG_BIN when set.
func buildCLI(t *testing.T, dir string) string {
	t.Helper()
	if bin := os.Getenv("LIFTLOG_BIN"); bin != "" {
		return bin
	}
	bin := filepath.Join(dir, "liftlog")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build CLI: %v\nOutput: %s", err, out)
	}
	return bin
}

func isolatedEnv(home, storage string) []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "LIFTLOG_") {
			continue
		}
		env = append(env, e)
	}
	return append(env,
		fmt.Sprintf("HOME=%s", home),
		fmt.Sprintf("LIFTLOG_STORAGE=%s", storage),
		"LIFTLOG_DB_CONNECTION=",
	)
}

func TestEndToEndWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end workflow in short mode")
	}

	tempDir := t.TempDir()
	cliPath := buildCLI(t, tempDir)
	env := isolatedEnv(tempDir, filepath.Join(tempDir, "liftlog.db"))

	t.Log("Initializing storage...")
	out := runCmd(t, cliPath, env, "init")
	if !strings.Contains(out, "Initialized liftlog storage") {
		t.Errorf("unexpected init output: %s", out)
	}

	runCmd(t, cliPath, env, "settings", "--rest-alerts=false", "--default-rest-seconds=90")
	out = runCmd(t, cliPath, env, "settings", "--list")
	if !strings.Contains(out, "90") {
		t.Errorf("default rest not saved: %s", out)
	}

	t.Log("Building a plan...")
	runCmd(t, cliPath, env, "plan", "add", "Push Day", "--exercises", "Bench Press,Overhead Press")
	runCmd(t, cliPath, env, "plan", "exercise", "add", "1", "Dips", "--sets", "3")
	runCmd(t, cliPath, env, "plan", "clone", "Push Day")

	out = runCmd(t, cliPath, env, "plan", "list")
	for _, want := range []string{"1. Push Day", "2. Push Day (Copy)"} {
		if !strings.Contains(out, want) {
			t.Errorf("plan list missing %q:\n%s", want, out)
		}
	}

	out = runCmd(t, cliPath, env, "plan", "show", "1")
	for _, want := range []string{"Bench Press", "Overhead Press", "3. Dips", "set 3:", "rest 90s"} {
		if !strings.Contains(out, want) {
			t.Errorf("plan show missing %q:\n%s", want, out)
		}
	}

	out = runCmd(t, cliPath, env, "history")
	if !strings.Contains(out, "No workouts logged yet.") {
		t.Errorf("unexpected history output: %s", out)
	}

	exportPath := filepath.Join(tempDir, "history.json")
	runCmd(t, cliPath, env, "history", "export", "-o", exportPath)
	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	var logs []json.RawMessage
	if err := json.Unmarshal(data, &logs); err != nil || len(logs) != 0 {
		t.Errorf("expected an empty JSON array, got %s (err=%v)", data, err)
	}

	out = runCmd(t, cliPath, env, "doctor")
	if !strings.Contains(out, "Storage reachable: OK") {
		t.Errorf("unexpected doctor output: %s", out)
	}
}

func TestEndToEndWorkflow_JSONStorage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end workflow in short mode")
	}

	tempDir := t.TempDir()
	cliPath := buildCLI(t, tempDir)
	storagePath := filepath.Join(tempDir, "liftlog.json")
	env := isolatedEnv(tempDir, storagePath)

	runCmd(t, cliPath, env, "init")
	runCmd(t, cliPath, env, "plan", "add", "Legs", "--exercises", "Squat")

	data, err := os.ReadFile(storagePath)
	if err != nil {
		t.Fatalf("JSON storage not written: %v", err)
	}
	if !strings.Contains(string(data), "Squat") {
		t.Errorf("plan not persisted to JSON storage: %s", data)
	}
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}
