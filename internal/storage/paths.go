// Package storage maps screenshot filenames to unique on-disk paths and writes
// the encoded image files.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Organization modes for the save directory layout.
const (
	OrganizeDate        = "date"
	OrganizeApplication = "application"
	OrganizeNone        = "none"
)

// unknownApp is the directory used when no application token can be parsed
// out of a filename in application mode.
const unknownApp = "unknown"

// SavePath returns the full target path for filename under root, applying
// the configured organization mode and creating any needed directories.
// Directory creation is idempotent.
func SavePath(root, filename, organizeBy string, now time.Time) (string, error) {
	dir := root
	switch organizeBy {
	case OrganizeDate:
		dir = filepath.Join(root, now.Format("2006"), now.Format("01"), now.Format("02"))
	case OrganizeApplication:
		dir = filepath.Join(root, appToken(filename))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("storage: create directory %s: %w", dir, err)
	}
	return filepath.Join(dir, filename), nil
}

// appToken parses the application name out of a filename's trailing
// underscore-separated segment. Best-effort: filenames without a discernible
// token map to "unknown".
func appToken(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	parts := strings.Split(stem, "_")
	if len(parts) < 2 {
		return unknownApp
	}
	token := parts[len(parts)-1]
	if token == "" {
		return unknownApp
	}
	return token
}

// ResolveCollision returns a path that does not exist at call time. If the
// candidate is taken, numeric suffixes _1, _2, ... are appended before the
// extension until a free path is found. Not atomic against concurrent
// writers; the process owns its save directory.
func ResolveCollision(path string) string {
	if !exists(path) {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, counter, ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
