package notifier

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/liftlog/internal/logger"
)

const sendTimeout = 5 * time.Second

type pendingAlert struct {
	timer *time.Timer
	text  string
	due   time.Time
}

// AlertScheduler holds at most one pending alert per identifier. Scheduling
// an identifier again replaces the earlier alert.
type AlertScheduler struct {
	mu      sync.Mutex
	sender  Sender
	pending map[string]*pendingAlert
}

func NewAlertScheduler(sender Sender) *AlertScheduler {
	return &AlertScheduler{
		sender:  sender,
		pending: make(map[string]*pendingAlert),
	}
}

// Schedule delivers text through the sender once after has elapsed.
func (s *AlertScheduler) Schedule(id string, after time.Duration, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.pending[id]; ok {
		old.timer.Stop()
	}

	alert := &pendingAlert{text: text, due: time.Now().Add(after)}
	alert.timer = time.AfterFunc(after, func() { s.fire(id, alert) })
	s.pending[id] = alert
	logger.Debug("Alert scheduled", "id", id, "after", after)
}

func (s *AlertScheduler) fire(id string, alert *pendingAlert) {
	s.mu.Lock()
	if s.pending[id] != alert {
		// Replaced or cancelled after the timer had already fired.
		s.mu.Unlock()
		return
	}
	delete(s.pending, id)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if err := s.sender.Notify(ctx, alert.text); err != nil {
		logger.Warn("Failed to deliver alert", "id", id, "error", err)
		return
	}
	logger.Debug("Alert delivered", "id", id)
}

// Cancel drops the pending alert for id. It reports whether one existed.
func (s *AlertScheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	alert, ok := s.pending[id]
	if !ok {
		return false
	}
	alert.timer.Stop()
	delete(s.pending, id)
	logger.Debug("Alert cancelled", "id", id)
	return true
}

// CancelAll drops every pending alert.
func (s *AlertScheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, alert := range s.pending {
		alert.timer.Stop()
		delete(s.pending, id)
	}
}

// Pending returns the identifiers with an alert still waiting, sorted.
func (s *AlertScheduler) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.pending))
	for id := range s.pending {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Due returns when the alert for id is expected to fire.
func (s *AlertScheduler) Due(id string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	alert, ok := s.pending[id]
	if !ok {
		return time.Time{}, false
	}
	return alert.due, true
}
