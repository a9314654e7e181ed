// Package backup keeps rotating snapshots of file-backed liftlog storage.
package backup

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/liftlog/internal/constants"
	"github.com/julianstephens/liftlog/internal/logger"
)

const timestampLayout = "20060102-150405"

// Kind identifies the storage file format being backed up.
type Kind int

const (
	KindSQLite Kind = iota
	KindJSON
)

type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

func (i Info) Name() string {
	return filepath.Base(i.Path)
}

type Manager struct {
	source string
	dir    string
	kind   Kind
	suffix string
	keep   int
	now    func() time.Time
}

// NewManager returns a manager writing to <dir of source>/backups. Sources
// ending in .json are treated as JSON documents, everything else as SQLite.
func NewManager(source string) *Manager {
	m := &Manager{
		source: source,
		dir:    filepath.Join(filepath.Dir(source), constants.BackupDirName),
		kind:   KindSQLite,
		suffix: constants.BackupFileSuffix,
		keep:   constants.MaxBackups,
		now:    time.Now,
	}
	if strings.EqualFold(filepath.Ext(source), ".json") {
		m.kind = KindJSON
		m.suffix = ".json"
	}
	return m
}

func (m *Manager) Dir() string { return m.dir }
func (m *Manager) Kind() Kind  { return m.kind }
func (m *Manager) Keep() int   { return m.keep }

// Create snapshots the source and prunes snapshots beyond the retention limit.
func (m *Manager) Create() (string, error) {
	path, err := m.create()
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("failed to rotate old backups", "error", err)
	}
	return path, nil
}

func (m *Manager) create() (string, error) {
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.source); os.IsNotExist(err) {
		return "", fmt.Errorf("storage does not exist: %s", m.source)
	}

	dest, err := m.nextName()
	if err != nil {
		return "", err
	}

	switch m.kind {
	case KindJSON:
		if err := verifyJSON(m.source); err != nil {
			return "", fmt.Errorf("source storage is unreadable: %w", err)
		}
		err = copyFile(m.source, dest)
	default:
		err = m.vacuumInto(dest)
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up storage: %w", err)
	}

	logger.Info("backup created", "path", dest)
	return dest, nil
}

func (m *Manager) nextName() (string, error) {
	stamp := m.now().Format(timestampLayout)
	path := filepath.Join(m.dir, constants.BackupFilePrefix+stamp+m.suffix)
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if n > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, stamp, n, m.suffix))
	}
}

func (m *Manager) vacuumInto(dest string) error {
	db, err := sql.Open("sqlite", m.source+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	if err := verifySQLite(db); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dest); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		db.Close()
		return copyFile(m.source, dest)
	}
	return nil
}

// List returns backups newest first. Files that do not match the naming
// scheme are ignored.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := m.parseName(entry.Name())
		if !ok {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.dir, entry.Name()),
			Timestamp: ts,
			Size:      fi.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseName accepts liftlog-YYYYMMDD-HHMMSS[-N]<suffix>.
func (m *Manager) parseName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, m.suffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), m.suffix)
	if len(stamp) > len(timestampLayout) {
		if stamp[len(timestampLayout)] != '-' {
			return time.Time{}, false
		}
		stamp = stamp[:len(timestampLayout)]
	}
	ts, err := time.ParseInLocation(timestampLayout, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// Latest returns the newest backup, if any.
func (m *Manager) Latest() (Info, bool) {
	backups, err := m.List()
	if err != nil || len(backups) == 0 {
		return Info{}, false
	}
	return backups[0], true
}

// Due reports whether no backup has been taken on the current local day.
func (m *Manager) Due() bool {
	latest, ok := m.Latest()
	if !ok {
		return true
	}
	return latest.Timestamp.Format(constants.DateFormat) != m.now().Format(constants.DateFormat)
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := m.keep; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
		logger.Debug("removed old backup", "path", backups[i].Path)
	}
	return nil
}

// Resolve maps a bare backup filename to its path in the backup directory.
func (m *Manager) Resolve(nameOrPath string) string {
	if filepath.IsAbs(nameOrPath) {
		return nameOrPath
	}
	candidate := filepath.Join(m.dir, nameOrPath)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return nameOrPath
}

// Restore replaces the source with the given backup. The current source is
// snapshotted first and that snapshot is not subject to rotation.
func (m *Manager) Restore(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := m.verify(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var safety string
	if _, err := os.Stat(m.source); err == nil {
		safety, err = m.create()
		if err != nil {
			return "", fmt.Errorf("failed to back up current storage before restore: %w", err)
		}
	}

	tmp := m.source + ".restore.tmp"
	if err := copyFile(backupPath, tmp); err != nil {
		return "", fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.source); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("failed to remove temporary file", "path", tmp, "error", rmErr)
		}
		return "", fmt.Errorf("failed to restore storage: %w", err)
	}

	logger.Info("storage restored", "from", backupPath, "safety_backup", safety)
	return safety, nil
}

func (m *Manager) verify(path string) error {
	if m.kind == KindJSON {
		return verifyJSON(path)
	}
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()
	return verifySQLite(db)
}

// verifySQLite requires the kv table written by the liftlog migrations.
func verifySQLite(db *sql.DB) error {
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'kv'").Scan(&name)
	if err == sql.ErrNoRows {
		return fmt.Errorf("not a liftlog database")
	}
	return err
}

func verifyJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc struct {
		Values map[string]string `json:"values"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Values == nil {
		return fmt.Errorf("not a liftlog document")
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
