package notifier

import (
	"fmt"
	"sync"
	"time"
)

// Recorder is an in-memory Port that remembers every call.
type Recorder struct {
	mu       sync.Mutex
	calls    []string
	pending  bool
	after    time.Duration
	live     bool
	label    string
	statuses []LiveStatus
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) ScheduleDelayedAlert(after time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf("schedule:%s", after))
	r.pending = true
	r.after = after
}

func (r *Recorder) CancelDelayedAlert() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "cancel")
	r.pending = false
}

func (r *Recorder) BeginLiveStatus(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "begin:"+label)
	r.live = true
	r.label = label
}

func (r *Recorder) UpdateLiveStatus(status LiveStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "update")
	r.statuses = append(r.statuses, status)
}

func (r *Recorder) EndLiveStatus() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "end")
	r.live = false
}

// PendingAlerts is 1 while an alert is scheduled and not cancelled.
func (r *Recorder) PendingAlerts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending {
		return 1
	}
	return 0
}

// PendingAfter is the delay of the pending alert.
func (r *Recorder) PendingAfter() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.after
}

func (r *Recorder) Live() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live
}

func (r *Recorder) Label() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.label
}

// Statuses returns every status pushed through UpdateLiveStatus.
func (r *Recorder) Statuses() []LiveStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LiveStatus(nil), r.statuses...)
}

// Last returns the most recent status update.
func (r *Recorder) Last() (LiveStatus, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.statuses) == 0 {
		return LiveStatus{}, false
	}
	return r.statuses[len(r.statuses)-1], true
}

// Calls returns the call log, e.g. "begin:Push Day", "schedule:1m30s".
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Count returns how many logged calls equal name.
func (r *Recorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c == name {
			n++
		}
	}
	return n
}
