package tui

import (
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/liftlog/internal/clock"
)

// DispatchClock runs ticker callbacks on the bubbletea loop. Each ticker's
// goroutine only posts a message to the program; the callback itself runs
// inside Update, so a session driven by this clock never sees concurrent
// calls.
type DispatchClock struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

// dispatchMsg carries one tick back to Update.
type dispatchMsg struct {
	ticker *dispatchTicker
}

func NewDispatchClock() *DispatchClock {
	return &DispatchClock{}
}

// Attach routes ticks to p. Ticks posted before Attach are dropped.
func (c *DispatchClock) Attach(p *tea.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.send = p.Send
}

func (c *DispatchClock) Now() time.Time { return time.Now() }

func (c *DispatchClock) Every(d time.Duration, fn func()) clock.Ticker {
	t := &dispatchTicker{
		fn:     fn,
		ticker: time.NewTicker(d),
		done:   make(chan struct{}),
	}
	go t.run(c)
	return t
}

// post reports whether a program was attached to receive msg.
func (c *DispatchClock) post(msg tea.Msg) bool {
	c.mu.Lock()
	send := c.send
	c.mu.Unlock()
	if send == nil {
		return false
	}
	send(msg)
	return true
}

type dispatchTicker struct {
	fn      func()
	ticker  *time.Ticker
	done    chan struct{}
	once    sync.Once
	stopped atomic.Bool
}

func (t *dispatchTicker) run(c *DispatchClock) {
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			c.post(dispatchMsg{ticker: t})
		}
	}
}

// fire runs the callback unless the ticker was stopped after the tick was
// queued.
func (t *dispatchTicker) fire() {
	if t.stopped.Load() {
		return
	}
	t.fn()
}

func (t *dispatchTicker) Stop() {
	t.once.Do(func() {
		t.stopped.Store(true)
		t.ticker.Stop()
		close(t.done)
	})
}
