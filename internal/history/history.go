// Package history keeps a SQLite-backed journal of committed renames.
// Journal errors are advisory: callers log them and move on, because the
// rename they describe has already been applied and verified.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"namefix/internal/config"
	"namefix/internal/logging"
)

const schemaVersion = 1

// DefaultRecentLimit bounds Recent when the caller passes no limit.
const DefaultRecentLimit = 20

const createRenamesTable = `
CREATE TABLE IF NOT EXISTS renames (
	id TEXT PRIMARY KEY,
	file_path TEXT NOT NULL,
	old_name TEXT NOT NULL,
	new_name TEXT NOT NULL,
	references_updated INTEGER NOT NULL DEFAULT 0,
	backend_id TEXT NOT NULL DEFAULT '',
	applied_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_renames_applied_at ON renames(applied_at);
`

// HistoryEntry is one committed rename.
type HistoryEntry struct {
	ID                string    `json:"id"`
	FilePath          string    `json:"file"`
	OldName           string    `json:"oldName"`
	NewName           string    `json:"newName"`
	ReferencesUpdated int       `json:"referencesUpdated"`
	BackendID         string    `json:"backendId"`
	AppliedAt         time.Time `json:"appliedAt"`
}

// Journal is a handle on the rename journal database.
type Journal struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Open opens or creates the journal at .namefix/history.db under the
// project root.
func Open(projectRoot string, logger *logging.Logger) (*Journal, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	dir := filepath.Join(projectRoot, config.ConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", config.ConfigDir, err)
	}

	dbPath := filepath.Join(dir, "history.db")
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	j := &Journal{conn: conn, logger: logger, dbPath: dbPath}
	if err := j.initSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return j, nil
}

// Close closes the journal database.
func (j *Journal) Close() error {
	if j.conn != nil {
		return j.conn.Close()
	}
	return nil
}

// Path returns the journal database path.
func (j *Journal) Path() string {
	return j.dbPath
}

func (j *Journal) initSchema() error {
	var version int
	if err := j.conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}

	if _, err := j.conn.Exec(createRenamesTable); err != nil {
		return fmt.Errorf("failed to create renames table: %w", err)
	}
	if _, err := j.conn.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}

	j.logger.Debug("journal schema initialized", map[string]interface{}{
		"path":    j.dbPath,
		"version": schemaVersion,
	})
	return nil
}

// Record inserts one committed rename. A missing ID or AppliedAt is
// filled in before the insert.
func (j *Journal) Record(entry *HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.AppliedAt.IsZero() {
		entry.AppliedAt = time.Now().UTC()
	}

	_, err := j.conn.Exec(`
		INSERT INTO renames (
			id, file_path, old_name, new_name,
			references_updated, backend_id, applied_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		entry.ID,
		entry.FilePath,
		entry.OldName,
		entry.NewName,
		entry.ReferencesUpdated,
		entry.BackendID,
		entry.AppliedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record rename: %w", err)
	}
	return nil
}

// Recent returns the newest entries first, at most limit of them.
// A non-positive limit selects DefaultRecentLimit.
func (j *Journal) Recent(limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	rows, err := j.conn.Query(`
		SELECT id, file_path, old_name, new_name,
		       references_updated, backend_id, applied_at
		FROM renames
		ORDER BY applied_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var entry HistoryEntry
		var appliedAt string
		if err := rows.Scan(
			&entry.ID,
			&entry.FilePath,
			&entry.OldName,
			&entry.NewName,
			&entry.ReferencesUpdated,
			&entry.BackendID,
			&appliedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		entry.AppliedAt, err = time.Parse(time.RFC3339, appliedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid applied_at format: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal rows: %w", err)
	}
	return entries, nil
}

// Prune deletes entries applied before the cutoff and reports how many
// rows were removed.
func (j *Journal) Prune(before time.Time) (int64, error) {
	result, err := j.conn.Exec(
		"DELETE FROM renames WHERE applied_at < ?",
		before.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune journal: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned rows: %w", err)
	}
	return removed, nil
}
