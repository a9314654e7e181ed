package clock

import (
	"sync"
	"time"
)

// Fake is a manually driven Clock. Time only moves through Advance, and
// ticker callbacks run synchronously on the caller's goroutine.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*FakeTicker
}

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) Every(d time.Duration, fn func()) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &FakeTicker{
		interval: d,
		fn:       fn,
		next:     f.now.Add(d),
	}
	f.tickers = append(f.tickers, t)
	return t
}

// Advance moves time forward by d, firing every due tick in order.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	f.mu.Unlock()

	for {
		f.mu.Lock()
		var due *FakeTicker
		for _, t := range f.tickers {
			if t.stopped || t.next.After(target) {
				continue
			}
			if due == nil || t.next.Before(due.next) {
				due = t
			}
		}
		if due == nil {
			f.now = target
			f.mu.Unlock()
			return
		}
		f.now = due.next
		due.next = due.next.Add(due.interval)
		fn := due.fn
		f.mu.Unlock()

		fn()
	}
}

// Set moves the clock without firing tickers.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}

// Active returns the number of tickers that have not been stopped.
func (f *Fake) Active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.tickers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// FakeTicker is the Ticker returned by Fake.Every.
type FakeTicker struct {
	interval time.Duration
	fn       func()
	next     time.Time
	stopped  bool
}

func (t *FakeTicker) Stop() {
	t.stopped = true
}

// Fire runs the callback once unless the ticker is stopped.
func (t *FakeTicker) Fire() {
	if !t.stopped {
		t.fn()
	}
}

func (t *FakeTicker) Stopped() bool {
	return t.stopped
}
