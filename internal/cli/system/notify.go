package system

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/liftlog/internal/cli"
	"github.com/julianstephens/liftlog/internal/notifier"
)

type NotifyCmd struct {
	Text   string `arg:"" help:"Notification text."`
	DryRun bool   `help:"Print the notification instead of sending it."`

	sender notifier.Sender
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings := ctx.Settings()
	if !settings.NotificationsEnabled {
		if c.DryRun {
			ctx.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	if c.DryRun {
		ctx.Println("[DryRun] " + c.Text)
		return nil
	}

	sender := c.sender
	if sender == nil {
		var out io.Writer = os.Stdout
		if ctx.Out != nil {
			out = ctx.Out
		}
		sender = notifier.NewFallback(notifier.New(), notifier.Bell{W: out})
	}
	sendCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sender.Notify(sendCtx, c.Text); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

// StatusCmd prints the live status written by a running workout.
type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	path := ctx.StatusPath(ctx.Settings())
	status, err := notifier.NewStatusFile(path).Read()
	if err != nil {
		ctx.Println("No workout in progress.")
		return nil
	}
	ctx.Println(status.Summary(time.Now()))
	return nil
}
