package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/liftlog/internal/cli"
	"github.com/julianstephens/liftlog/internal/config"
	"github.com/julianstephens/liftlog/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing storage before initialization."`
	Source string `help:"Storage path or connection string to copy plans, history and settings from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()
	file := !config.IsPostgres(path) && path != "postgresql"

	if c.Force && file {
		if c.Source != "" {
			absDest, _ := filepath.Abs(path)
			absSource, _ := filepath.Abs(c.Source)
			if absDest == absSource {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
			}
		}
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			ctx.Printf("Deleted existing storage at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized liftlog storage at: %s\n", path)

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		n, err := c.copyFrom(ctx)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Printf("Copied %d entries.\n", n)
	}
	return nil
}

// copyFrom copies every stored blob from the source backend.
func (c *InitCmd) copyFrom(ctx *cli.Context) (int, error) {
	src, err := cli.OpenProvider(c.Source, false)
	if err != nil {
		return 0, err
	}
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source storage: %w", err)
	}
	defer src.Close()

	keys, err := src.Keys()
	if err != nil {
		return 0, fmt.Errorf("failed to list source keys: %w", err)
	}
	for _, key := range keys {
		value, err := src.Get(key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if err := ctx.Store.Put(key, value); err != nil {
			return 0, fmt.Errorf("failed to write %s: %w", key, err)
		}
		ctx.Printf("  %s (%d bytes)\n", key, len(value))
	}
	return len(keys), nil
}
