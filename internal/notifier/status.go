package notifier

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type statusDocument struct {
	LiveStatus
	Summary   string    `json:"summary"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatusFile mirrors the live status into a JSON file that status bars and
// shell prompts can poll.
type StatusFile struct {
	path string
}

func NewStatusFile(path string) *StatusFile {
	return &StatusFile{path: path}
}

func (f *StatusFile) Path() string {
	return f.path
}

// Write replaces the file contents atomically.
func (f *StatusFile) Write(status LiveStatus, now time.Time) error {
	data, err := json.MarshalIndent(statusDocument{
		LiveStatus: status,
		Summary:    status.Summary(now),
		UpdatedAt:  now.UTC(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize status: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create status directory: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write status: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write status: %w", err)
	}
	return nil
}

// Read returns the last status written.
func (f *StatusFile) Read() (LiveStatus, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return LiveStatus{}, err
	}
	var doc statusDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return LiveStatus{}, fmt.Errorf("failed to parse status: %w", err)
	}
	return doc.LiveStatus, nil
}

// Remove deletes the file. A missing file is not an error.
func (f *StatusFile) Remove() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove status: %w", err)
	}
	return nil
}
