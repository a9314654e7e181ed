package models

import (
	"testing"

	"github.com/julianstephens/liftlog/internal/constants"
)

func TestApplyDefaultSettings(t *testing.T) {
	tests := []struct {
		name string
		rest int
		want int
	}{
		{"zero rest is kept", 0, 0},
		{"positive rest is kept", 45, 45},
		{"negative rest is reset", -5, constants.DefaultRestSeconds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.DefaultRestSeconds = tt.rest
			ApplyDefaultSettings(&s)
			if s.DefaultRestSeconds != tt.want {
				t.Errorf("DefaultRestSeconds = %d, want %d", s.DefaultRestSeconds, tt.want)
			}
		})
	}
}

func TestApplySetting_ZeroRest(t *testing.T) {
	s := DefaultSettings()
	if err := ApplySetting(&s, constants.SettingDefaultRestSeconds, "0"); err != nil {
		t.Fatalf("ApplySetting failed: %v", err)
	}
	if s.DefaultRestSeconds != 0 {
		t.Errorf("DefaultRestSeconds = %d, want 0", s.DefaultRestSeconds)
	}
	if err := ApplySetting(&s, constants.SettingDefaultRestSeconds, "-1"); err == nil {
		t.Error("expected negative rest to be refused")
	}
}
