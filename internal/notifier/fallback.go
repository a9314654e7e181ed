package notifier

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/multierr"

	"github.com/julianstephens/liftlog/internal/logger"
)

// Fallback tries each sender in order and stops at the first that delivers.
// The tray companion is optional, so it is normally first in the chain with
// an in-terminal sender behind it.
type Fallback struct {
	senders []Sender
}

func NewFallback(senders ...Sender) *Fallback {
	f := &Fallback{}
	for _, s := range senders {
		if s != nil {
			f.senders = append(f.senders, s)
		}
	}
	return f
}

func (f *Fallback) Notify(ctx context.Context, text string) error {
	if len(f.senders) == 0 {
		return errors.New("no notification senders configured")
	}
	var err error
	for i, s := range f.senders {
		serr := s.Notify(ctx, text)
		if serr == nil {
			if i > 0 {
				logger.Debug("Alert delivered by fallback sender", "position", i)
			}
			return nil
		}
		err = multierr.Combine(err, serr)
	}
	return err
}

// Bell rings the terminal bell and writes the text on its own line.
type Bell struct {
	W io.Writer
}

func (b Bell) Notify(_ context.Context, text string) error {
	if b.W == nil {
		return errors.New("bell has no output")
	}
	if _, err := fmt.Fprintf(b.W, "\a%s\n", text); err != nil {
		return fmt.Errorf("failed to ring bell: %w", err)
	}
	return nil
}
