// Package config loads liftlog's YAML config file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/charmbracelet/log"

	"github.com/julianstephens/liftlog/internal/constants"
)

type Config struct {
	// Storage is a SQLite path, a JSON file path (*.json) or a PostgreSQL
	// connection string without a password.
	Storage    string `yaml:"storage"`
	Debug      bool   `yaml:"debug"`
	LogLevel   string `yaml:"log_level"`
	StatusFile string `yaml:"status_file"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Storage:  constants.DefaultConfigPath,
		LogLevel: "info",
	}
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error. Env vars:
//
//	LIFTLOG_STORAGE, LIFTLOG_DEBUG, LIFTLOG_LOG_LEVEL, LIFTLOG_STATUS_FILE
func Load(path string) (*Config, error) {
	cfg := Default()

	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(expanded)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFTLOG_STORAGE"); v != "" {
		cfg.Storage = v
	}
	if v := os.Getenv("LIFTLOG_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
	if v := os.Getenv("LIFTLOG_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LIFTLOG_STATUS_FILE"); v != "" {
		cfg.StatusFile = v
	}
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Storage) == "" {
		return fmt.Errorf("storage is required")
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
	}
	return nil
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(expanded, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// IsPostgres reports whether location is a PostgreSQL connection string.
func IsPostgres(location string) bool {
	return strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://")
}

// ExpandPath resolves a leading "~" to the user's home directory. Connection
// strings are returned unchanged.
func ExpandPath(path string) (string, error) {
	if IsPostgres(path) || (path != "~" && !strings.HasPrefix(path, "~/")) {
		return path, nil
	}
	home, err := userHomeDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

var userHomeDirFunc = os.UserHomeDir

// Dir returns the expanded liftlog config directory.
func Dir() (string, error) {
	return ExpandPath(constants.DefaultConfigDir)
}
