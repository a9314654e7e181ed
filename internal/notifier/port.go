package notifier

import (
	"fmt"
	"time"
)

// Port is everything a running workout tells the outside world: a delayed
// alert for the end of a rest period and a live status surface that mirrors
// the session while it runs.
type Port interface {
	// ScheduleDelayedAlert replaces any pending alert with one that fires
	// after the given delay.
	ScheduleDelayedAlert(after time.Duration)
	CancelDelayedAlert()
	BeginLiveStatus(label string)
	UpdateLiveStatus(status LiveStatus)
	EndLiveStatus()
}

// LiveStatus is a snapshot of the running session.
type LiveStatus struct {
	Label   string     `json:"label"`
	Resting bool       `json:"resting"`
	EndsAt  *time.Time `json:"ends_at,omitempty"`
	Elapsed string     `json:"elapsed"`
}

// Summary renders the status as a single line for bars and prompts.
func (s LiveStatus) Summary(now time.Time) string {
	line := s.Label
	if s.Elapsed != "" {
		line += " " + s.Elapsed
	}
	if s.Resting && s.EndsAt != nil {
		left := s.EndsAt.Sub(now).Round(time.Second)
		if left < 0 {
			left = 0
		}
		secs := int(left / time.Second)
		line += fmt.Sprintf(" | rest %d:%02d", secs/60, secs%60)
	}
	return line
}

// Nop discards everything.
type Nop struct{}

func (Nop) ScheduleDelayedAlert(time.Duration) {}
func (Nop) CancelDelayedAlert()                {}
func (Nop) BeginLiveStatus(string)             {}
func (Nop) UpdateLiveStatus(LiveStatus)        {}
func (Nop) EndLiveStatus()                     {}
