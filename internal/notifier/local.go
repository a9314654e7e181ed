package notifier

import (
	"sync"
	"time"

	"github.com/julianstephens/liftlog/internal/constants"
	"github.com/julianstephens/liftlog/internal/logger"
	"github.com/julianstephens/liftlog/internal/models"
)

// RestAlertText is the body of the alert sent when a rest period ends.
const RestAlertText = "Rest is over. Time for your next set!"

// Local is the Port used by the terminal app. Alerts go through the tray
// notifier and the live status is written to a status file. Failures are
// logged and never reach the caller.
type Local struct {
	alerts *AlertScheduler
	status *StatusFile
	now    func() time.Time

	mu   sync.Mutex
	live bool
}

// NewLocal builds the Port from user settings. Surfaces disabled in settings
// are skipped entirely.
func NewLocal(settings models.Settings, statusPath string, sender Sender) *Local {
	l := &Local{now: time.Now}
	if !settings.NotificationsEnabled {
		return l
	}
	if settings.RestAlerts && sender != nil {
		l.alerts = NewAlertScheduler(sender)
	}
	if settings.LiveStatus && statusPath != "" {
		l.status = NewStatusFile(statusPath)
	}
	return l
}

func (l *Local) ScheduleDelayedAlert(after time.Duration) {
	if l.alerts == nil {
		return
	}
	l.alerts.Schedule(constants.RestAlertID, after, RestAlertText)
}

func (l *Local) CancelDelayedAlert() {
	if l.alerts == nil {
		return
	}
	l.alerts.Cancel(constants.RestAlertID)
}

func (l *Local) BeginLiveStatus(label string) {
	l.mu.Lock()
	l.live = true
	l.mu.Unlock()
	l.write(LiveStatus{Label: label})
}

func (l *Local) UpdateLiveStatus(status LiveStatus) {
	l.mu.Lock()
	live := l.live
	l.mu.Unlock()
	if !live {
		return
	}
	l.write(status)
}

func (l *Local) EndLiveStatus() {
	l.mu.Lock()
	l.live = false
	l.mu.Unlock()
	if l.status == nil {
		return
	}
	if err := l.status.Remove(); err != nil {
		logger.Warn("Failed to end live status", "error", err)
	}
}

func (l *Local) write(status LiveStatus) {
	if l.status == nil {
		return
	}
	if err := l.status.Write(status, l.now()); err != nil {
		logger.Warn("Failed to update live status", "path", l.status.Path(), "error", err)
	}
}

// PendingAlerts lists the alert identifiers still waiting to fire.
func (l *Local) PendingAlerts() []string {
	if l.alerts == nil {
		return nil
	}
	return l.alerts.Pending()
}

// Close cancels any pending alert and removes the status file.
func (l *Local) Close() {
	if l.alerts != nil {
		l.alerts.CancelAll()
	}
	l.EndLiveStatus()
}
