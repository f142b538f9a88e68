// Package catalog provides the SQLite-backed capture history store.
package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/snapvault/snapvault/internal/logging"
	_ "modernc.org/sqlite"
)

var (
	// ErrInvalidRecordID indicates a non-positive record ID.
	ErrInvalidRecordID = errors.New("invalid record ID")
	// ErrRecordNotFound indicates that a capture record cannot be found.
	ErrRecordNotFound = errors.New("record not found")
)

// Capture modes recorded in the catalog.
const (
	ModeFullscreen = "fullscreen"
	ModeWindow     = "window"
	ModeRegion     = "region"
)

var validModes = map[string]bool{
	ModeFullscreen: true,
	ModeWindow:     true,
	ModeRegion:     true,
}

// Record is one catalogued capture. The catalog assigns ID and Timestamp at
// insert; Filepath is unique across the catalog.
type Record struct {
	ID          int64
	Filename    string
	Filepath    string
	WindowName  string
	CaptureMode string
	Timestamp   time.Time
	Width       int
	Height      int
	FileSize    int64
	Tags        string
	Notes       string
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS captures (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	filename     TEXT NOT NULL,
	filepath     TEXT NOT NULL UNIQUE,
	window_name  TEXT,
	capture_mode TEXT NOT NULL,
	timestamp    TEXT NOT NULL,
	width        INTEGER,
	height       INTEGER,
	file_size    INTEGER,
	tags         TEXT,
	notes        TEXT
);

CREATE INDEX IF NOT EXISTS idx_captures_timestamp
ON captures(timestamp DESC);

CREATE INDEX IF NOT EXISTS idx_captures_window_name
ON captures(window_name);
`

// Catalog is a SQLite-backed store of capture records. Single-process use;
// the embedded engine's own locking covers multi-statement access.
type Catalog struct {
	db     *sql.DB
	logger logging.Logger
}

// Open opens (creating if needed) a catalog at the provided path.
func Open(dbPath string, logger logging.Logger) (*Catalog, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("catalog: db path cannot be empty")
	}
	if logger == nil {
		logger = logging.Noop()
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("catalog: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("catalog: open db: %w", err)
	}

	c := &Catalog{db: db, logger: logger}
	if err := c.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

// Close closes the underlying SQLite connection.
func (c *Catalog) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *Catalog) init() error {
	if _, err := c.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("catalog: create schema: %w", err)
	}
	return nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// utcNow returns the current time truncated to seconds in UTC, the
// resolution the catalog stores.
func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// formatTime renders a timestamp in the catalog's storage format.
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// parseTime parses a stored timestamp.
func parseTime(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05Z", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
