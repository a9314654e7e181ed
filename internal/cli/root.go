package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/liftlog/internal/backup"
	"github.com/julianstephens/liftlog/internal/config"
	"github.com/julianstephens/liftlog/internal/constants"
	"github.com/julianstephens/liftlog/internal/history"
	"github.com/julianstephens/liftlog/internal/logger"
	"github.com/julianstephens/liftlog/internal/models"
	"github.com/julianstephens/liftlog/internal/notifier"
	"github.com/julianstephens/liftlog/internal/storage"
)

type Context struct {
	Store   storage.Provider
	History *history.Store
	Config  *config.Config

	// Out and In default to the process streams.
	Out io.Writer
	In  io.Reader
}

// NewContext wires a history store over the given provider.
func NewContext(store storage.Provider, cfg *config.Config) *Context {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Context{
		Store:   store,
		History: history.New(store),
		Config:  cfg,
	}
}

// Load opens the storage backend and reads plans and history into memory.
func (c *Context) Load() error {
	if err := c.Store.Load(); err != nil {
		return err
	}
	c.History.Load()
	return nil
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// Confirm asks a yes/no question on In. Anything but y/yes is a no.
func (c *Context) Confirm(prompt string) (bool, error) {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	c.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// Settings loads persisted settings, applying the config-file status path
// when the user has not set one.
func (c *Context) Settings() models.Settings {
	settings, err := storage.LoadSettings(c.Store)
	if err != nil {
		logger.Warn("failed to load settings, using defaults", "error", err)
	}
	if settings.StatusFile == "" && c.Config != nil {
		settings.StatusFile = c.Config.StatusFile
	}
	return settings
}

// StatusPath resolves where the live status file is written.
func (c *Context) StatusPath(settings models.Settings) string {
	if settings.StatusFile != "" {
		if p, err := config.ExpandPath(settings.StatusFile); err == nil {
			return p
		}
		return settings.StatusFile
	}
	dir, err := config.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, constants.StatusFileName)
}

// NewPort builds the notification port used by workout sessions. Alerts go
// to the tray companion when it runs, otherwise to the fallbacks in order.
func (c *Context) NewPort(fallbacks ...notifier.Sender) *notifier.Local {
	settings := c.Settings()
	if err := notifier.TrayRunning(); err != nil {
		logger.Debug("Tray companion unavailable, alerts use the terminal", "reason", err)
	}
	senders := append([]notifier.Sender{notifier.New()}, fallbacks...)
	return notifier.NewLocal(settings, c.StatusPath(settings), notifier.NewFallback(senders...))
}

// BackupManager returns nil for backends that are not a local file.
func (c *Context) BackupManager() *backup.Manager {
	path := c.Store.GetConfigPath()
	if config.IsPostgres(path) || path == "postgresql" {
		return nil
	}
	return backup.NewManager(path)
}

// PerformAutomaticBackup takes the day's first backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := c.BackupManager()
	if mgr == nil || !mgr.Due() {
		return
	}
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
