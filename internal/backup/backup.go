// Package backup snapshots a SQLite reservation database and restores it.
// Server backends (PostgreSQL, MongoDB) are backed up with their own tools.
package backup

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/benchbook/internal/logger"
)

const (
	DirName     = "backups"
	filePrefix  = "benchbook-"
	fileSuffix  = ".db"
	stampLayout = "20060102-150405"

	// DefaultKeep is how many snapshots survive rotation.
	DefaultKeep = 14
)

// Snapshot is one backup file.
type Snapshot struct {
	Path  string
	Taken time.Time
	Size  int64
}

func (s Snapshot) Name() string { return filepath.Base(s.Path) }

type Manager struct {
	dbPath string
	dir    string
	keep   int
	now    func() time.Time
}

// NewManager keeps snapshots of dbPath in a "backups" directory next to it.
func NewManager(dbPath string, keep int) *Manager {
	if keep <= 0 {
		keep = DefaultKeep
	}
	return &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), DirName),
		keep:   keep,
		now:    time.Now,
	}
}

func (m *Manager) Dir() string    { return m.dir }
func (m *Manager) Keep() int      { return m.keep }
func (m *Manager) DBPath() string { return m.dbPath }

// Create writes a snapshot of the database and rotates old ones.
func (m *Manager) Create() (Snapshot, error) {
	snap, err := m.snapshot()
	if err != nil {
		return Snapshot{}, err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("Backup rotation failed", "dir", m.dir, "error", err)
	}
	return snap, nil
}

func (m *Manager) snapshot() (Snapshot, error) {
	if _, err := os.Stat(m.dbPath); err != nil {
		return Snapshot{}, fmt.Errorf("database %s: %w", m.dbPath, err)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return Snapshot{}, fmt.Errorf("failed to create backup directory: %w", err)
	}

	taken := m.now()
	path, err := m.freePath(taken)
	if err != nil {
		return Snapshot{}, err
	}
	if err := vacuumInto(m.dbPath, path); err != nil {
		return Snapshot{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return Snapshot{}, err
	}
	logger.Info("Backup created", "path", path)
	return Snapshot{Path: path, Taken: taken, Size: info.Size()}, nil
}

// freePath returns benchbook-<stamp>.db, or benchbook-<stamp>-N.db when
// several snapshots land in the same second.
func (m *Manager) freePath(taken time.Time) (string, error) {
	stamp := taken.Format(stampLayout)
	for n := 0; n < 100; n++ {
		name := filePrefix + stamp + fileSuffix
		if n > 0 {
			name = fmt.Sprintf("%s%s-%d%s", filePrefix, stamp, n, fileSuffix)
		}
		path := filepath.Join(m.dir, name)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
	}
	return "", fmt.Errorf("no free backup name for %s", stamp)
}

// vacuumInto copies src into a compacted, consistent dst.
func vacuumInto(src, dst string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := checkSchema(db); err != nil {
		return err
	}
	if _, err := db.Exec("VACUUM INTO ?", dst); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

// checkSchema requires the tables a benchbook database always has.
func checkSchema(db *sql.DB) error {
	for _, table := range []string{"machines", "bookings", "settings"} {
		var n int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&n)
		if err != nil {
			return fmt.Errorf("database is unreadable: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("not a benchbook database: missing %s table", table)
		}
	}
	return nil
}

// List returns the snapshots, newest first. Files that do not follow the
// naming scheme are ignored.
func (m *Manager) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(m.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var snaps []Snapshot
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		taken, n, ok := parseName(e.Name())
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		// Same-second snapshots are ordered by their counter
		taken = taken.Add(time.Duration(n) * time.Millisecond)
		snaps = append(snaps, Snapshot{Path: filepath.Join(m.dir, e.Name()), Taken: taken, Size: info.Size()})
	}

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Taken.After(snaps[j].Taken) })
	return snaps, nil
}

func parseName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return time.Time{}, 0, false
	}
	rest := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)

	n := 0
	if len(rest) > len(stampLayout) {
		suffix, ok := strings.CutPrefix(rest[len(stampLayout):], "-")
		if !ok {
			return time.Time{}, 0, false
		}
		var err error
		if n, err = strconv.Atoi(suffix); err != nil {
			return time.Time{}, 0, false
		}
		rest = rest[:len(stampLayout)]
	}

	taken, err := time.ParseInLocation(stampLayout, rest, time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	return taken, n, true
}

func (m *Manager) rotate() error {
	snaps, err := m.List()
	if err != nil {
		return err
	}
	for _, s := range snaps[min(m.keep, len(snaps)):] {
		if err := os.Remove(s.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", s.Name(), err)
		}
	}
	return nil
}

// Resolve finds a backup given as a path, or as a file name inside the backup
// directory.
func (m *Manager) Resolve(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return filepath.Abs(name)
	}
	if !filepath.IsAbs(name) {
		path := filepath.Join(m.dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("backup %s not found (also looked in %s)", name, m.dir)
}

// Restore replaces the database with the snapshot at path. The current
// database is snapshotted first and the returned Snapshot describes that
// safety copy (zero when there was no database). The store must be closed.
func (m *Manager) Restore(path string) (Snapshot, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to open backup: %w", err)
	}
	err = checkSchema(db)
	db.Close()
	if err != nil {
		return Snapshot{}, fmt.Errorf("backup %s is invalid: %w", filepath.Base(path), err)
	}

	var safety Snapshot
	if _, err := os.Stat(m.dbPath); err == nil {
		if safety, err = m.snapshot(); err != nil {
			return Snapshot{}, fmt.Errorf("failed to back up current database: %w", err)
		}
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return safety, fmt.Errorf("failed to copy backup: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("Could not remove temporary restore file", "path", tmp, "error", rmErr)
		}
		return safety, fmt.Errorf("failed to restore database: %w", err)
	}
	logger.Info("Database restored", "from", path, "db", m.dbPath)
	return safety, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
