package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"
)

// Insert persists a new capture record. The catalog assigns the ID and
// timestamp; both are written back into rec. A record whose filepath is
// already catalogued is silently rejected (logged, prior row untouched):
// duplicate paths mean the capture is already on record, not an error the
// caller must handle.
func (c *Catalog) Insert(rec *Record) error {
	if err := validateRecord(rec); err != nil {
		return err
	}

	now := utcNow()
	res, err := c.db.Exec(`
		INSERT INTO captures
			(filename, filepath, window_name, capture_mode, timestamp, width, height, file_size, tags, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Filename, rec.Filepath, rec.WindowName, rec.CaptureMode, formatTime(now),
		rec.Width, rec.Height, rec.FileSize, rec.Tags, rec.Notes,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			c.logger.Warn("capture already catalogued", "filepath", rec.Filepath)
			return nil
		}
		return fmt.Errorf("catalog: insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("catalog: read insert id: %w", err)
	}
	rec.ID = id
	rec.Timestamp = now
	c.logger.Debug("capture catalogued", "id", id, "filepath", rec.Filepath)
	return nil
}

func validateRecord(rec *Record) error {
	if rec == nil {
		return fmt.Errorf("catalog: record cannot be nil")
	}
	if strings.TrimSpace(rec.Filename) == "" {
		return fmt.Errorf("catalog: filename cannot be empty")
	}
	if strings.TrimSpace(rec.Filepath) == "" {
		return fmt.Errorf("catalog: filepath cannot be empty")
	}
	if !validModes[rec.CaptureMode] {
		return fmt.Errorf("catalog: invalid capture mode '%s', must be one of: fullscreen, window, region", rec.CaptureMode)
	}
	return nil
}

// List returns records ordered by timestamp descending (ties broken by id,
// newest first). When term is non-empty, only records where it occurs as a
// case-insensitive substring in filename, window name, tags, or notes are
// returned. An empty result is a nil slice, not an error.
func (c *Catalog) List(limit, offset int, term string) ([]Record, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, filename, filepath, window_name, capture_mode, timestamp,
			width, height, file_size, tags, notes
		FROM captures`
	args := []any{}
	if term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		query += `
		WHERE lower(filename) LIKE ?
			OR lower(IFNULL(window_name, '')) LIKE ?
			OR lower(IFNULL(tags, '')) LIKE ?
			OR lower(IFNULL(notes, '')) LIKE ?`
		args = append(args, pattern, pattern, pattern, pattern)
	}
	query += `
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: list records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("catalog: scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: list records: %w", err)
	}
	return records, nil
}

// Get retrieves a single record by ID.
func (c *Catalog) Get(id int64) (Record, error) {
	if id <= 0 {
		return Record{}, fmt.Errorf("catalog: %w", ErrInvalidRecordID)
	}
	row := c.db.QueryRow(`
		SELECT id, filename, filepath, window_name, capture_mode, timestamp,
			width, height, file_size, tags, notes
		FROM captures WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return Record{}, fmt.Errorf("catalog: get record: %w: id %d", ErrRecordNotFound, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("catalog: get record: %w", err)
	}
	return rec, nil
}

// Delete removes the record and unlinks its backing file if present.
// Returns false for an unknown id: a missing record is a negative result,
// not an error. Calling Delete twice yields true then false.
func (c *Catalog) Delete(id int64) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("catalog: %w", ErrInvalidRecordID)
	}

	var path string
	err := c.db.QueryRow(`SELECT filepath FROM captures WHERE id = ?`, id).Scan(&path)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("catalog: delete record: %w", err)
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		c.logger.Warn("failed to remove capture file", "filepath", path, "error", err)
	}

	if _, err := c.db.Exec(`DELETE FROM captures WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("catalog: delete record: %w", err)
	}
	c.logger.Info("capture deleted", "id", id, "filepath", path)
	return true, nil
}

// UpdateAnnotations sets the free-text tags and notes of an existing record.
func (c *Catalog) UpdateAnnotations(id int64, tags, notes string) error {
	if id <= 0 {
		return fmt.Errorf("catalog: %w", ErrInvalidRecordID)
	}
	res, err := c.db.Exec(`UPDATE captures SET tags = ?, notes = ? WHERE id = ?`, tags, notes, id)
	if err != nil {
		return fmt.Errorf("catalog: update annotations: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("catalog: read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("catalog: update annotations: %w: id %d", ErrRecordNotFound, id)
	}
	return nil
}

// Count returns the number of catalogued captures.
func (c *Catalog) Count() (int64, error) {
	var count int64
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM captures`).Scan(&count); err != nil {
		return 0, fmt.Errorf("catalog: count records: %w", err)
	}
	return count, nil
}

// SweepCandidates counts the records a Sweep with the same days value
// would remove, without removing anything.
func (c *Catalog) SweepCandidates(days int) (int, error) {
	if days < 0 {
		return 0, fmt.Errorf("catalog: days must be >= 0")
	}
	cutoff := formatTime(time.Now().UTC().AddDate(0, 0, -days))

	var count int
	err := c.db.QueryRow(`SELECT COUNT(*) FROM captures WHERE timestamp < ?`, cutoff).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("catalog: count sweep candidates: %w", err)
	}
	return count, nil
}

// Sweep removes all records strictly older than days from now, unlinking
// backing files best-effort (a missing file is not an error). The catalog
// changes commit once per sweep. Returns the number of records removed;
// only a catalog-access failure is fatal.
func (c *Catalog) Sweep(days int) (int, error) {
	if days < 0 {
		return 0, fmt.Errorf("catalog: days must be >= 0")
	}
	cutoff := formatTime(time.Now().UTC().AddDate(0, 0, -days))

	rows, err := c.db.Query(`SELECT id, filepath FROM captures WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("catalog: select records for sweep: %w", err)
	}
	type doomed struct {
		id   int64
		path string
	}
	var old []doomed
	for rows.Next() {
		var d doomed
		if err := rows.Scan(&d.id, &d.path); err != nil {
			rows.Close()
			return 0, fmt.Errorf("catalog: scan record for sweep: %w", err)
		}
		old = append(old, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("catalog: select records for sweep: %w", err)
	}
	if len(old) == 0 {
		return 0, nil
	}

	tx, err := c.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("catalog: begin sweep: %w", err)
	}
	for _, d := range old {
		if err := os.Remove(d.path); err != nil && !os.IsNotExist(err) {
			c.logger.Warn("failed to remove swept capture file", "filepath", d.path, "error", err)
		}
		if _, err := tx.Exec(`DELETE FROM captures WHERE id = ?`, d.id); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("catalog: sweep delete: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("catalog: commit sweep: %w", err)
	}

	c.logger.Info("retention sweep completed", "deleted", len(old), "cutoff", cutoff)
	return len(old), nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var rec Record
	var windowName, tags, notes sql.NullString
	var width, height, fileSize sql.NullInt64
	var timestamp string
	err := row.Scan(
		&rec.ID, &rec.Filename, &rec.Filepath, &windowName, &rec.CaptureMode,
		&timestamp, &width, &height, &fileSize, &tags, &notes,
	)
	if err != nil {
		return Record{}, err
	}
	rec.WindowName = windowName.String
	rec.Tags = tags.String
	rec.Notes = notes.String
	rec.Width = int(width.Int64)
	rec.Height = int(height.Int64)
	rec.FileSize = fileSize.Int64
	rec.Timestamp = parseTime(timestamp)
	return rec, nil
}
