// Package keyring keeps the PostgreSQL connection string out of config files
// by storing it in the OS credential store.
package keyring

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/liftlog/internal/constants"
)

// EnvConnection is consulted before the keyring.
const EnvConnection = "LIFTLOG_DB_CONNECTION"

// Source describes where a connection string came from.
type Source string

const (
	SourceNone    Source = ""
	SourceEnv     Source = "environment"
	SourceKeyring Source = "keyring"
)

var (
	ErrNotFound           = errors.New("credentials not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetConnectionString returns ErrNotFound when nothing is stored.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return "", ErrNotFound
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func DeleteConnectionString() error {
	err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		return ErrNotFound
	case err != nil:
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable is a best-effort probe: a not-found answer still means the
// backend responded.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

// Lookup returns a connection string from LIFTLOG_DB_CONNECTION or, failing
// that, the keyring. An unavailable keyring is reported as SourceNone.
func Lookup() (string, Source) {
	if v := os.Getenv(EnvConnection); v != "" {
		return v, SourceEnv
	}
	if v, err := GetConnectionString(); err == nil && v != "" {
		return v, SourceKeyring
	}
	return "", SourceNone
}

// Mask replaces the password of a URL-style connection string with "****".
func Mask(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return connStr
	}
	if _, ok := u.User.Password(); !ok {
		return connStr
	}
	u.User = url.UserPassword(u.User.Username(), "****")
	// url.String escapes the mask characters.
	masked, err := url.PathUnescape(u.String())
	if err != nil {
		return u.String()
	}
	return masked
}
