// Package clock supplies wall time and repeating tickers to code that must
// stay deterministic under test.
package clock

import (
	"sync"
	"time"
)

// Ticker is a handle to a repeating callback.
type Ticker interface {
	Stop()
}

// Clock reports the current time and schedules repeating callbacks.
type Clock interface {
	Now() time.Time
	Every(d time.Duration, fn func()) Ticker
}

// Real runs callbacks on a background goroutine per ticker. Callers that
// need callbacks on a specific goroutine should use a Clock that marshals
// them there instead.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

func (Real) Every(d time.Duration, fn func()) Ticker {
	t := &realTicker{
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go t.run(fn)
	return t
}

type realTicker struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func (t *realTicker) run(fn func()) {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			fn()
		}
	}
}

func (t *realTicker) Stop() {
	t.once.Do(func() {
		t.ticker.Stop()
		close(t.done)
	})
}
