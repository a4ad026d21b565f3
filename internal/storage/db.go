package storage

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"mediaplan/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  startedAt TEXT NOT NULL,
  files INTEGER NOT NULL,
  skipped INTEGER NOT NULL,
  rows INTEGER NOT NULL,
  outputPath TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS file_reports (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId INTEGER NOT NULL,
  fileName TEXT NOT NULL,
  status TEXT NOT NULL,
  rows INTEGER NOT NULL,
  matchedFields INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(runId) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_file_reports_run ON file_reports(runId);
`

	_, err := d.conn.Exec(schema)
	return err
}

// InsertRun records one processing run and its per-file reports.
func (d *DB) InsertRun(startedAt string, reports []internal.FileReport, totalRows int, outputPath string) (int, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	skipped := 0
	for _, r := range reports {
		if r.Status == "skipped" {
			skipped++
		}
	}

	res, err := tx.Exec(`
INSERT INTO runs (startedAt, files, skipped, rows, outputPath)
VALUES (?, ?, ?, ?, ?)`,
		startedAt, len(reports), skipped, totalRows, outputPath)
	if err != nil {
		return 0, err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`
INSERT INTO file_reports (runId, fileName, status, rows, matchedFields)
VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, r := range reports {
		if _, err := stmt.Exec(runID, r.FileName, r.Status, r.Rows, r.MatchedFields); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(runID), nil
}

// ListRuns returns the most recent runs, newest first.
func (d *DB) ListRuns(limit int) ([]internal.RunRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.conn.Query(`
SELECT id, startedAt, files, skipped, rows, COALESCE(outputPath, '')
FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RunRow
	for rows.Next() {
		var r internal.RunRow
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Files, &r.Skipped, &r.Rows, &r.OutputPath); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// FileReports returns the per-file outcomes of one run.
func (d *DB) FileReports(runID int) ([]internal.FileReport, error) {
	rows, err := d.conn.Query(`
SELECT fileName, status, rows, matchedFields
FROM file_reports WHERE runId = ? ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.FileReport
	for rows.Next() {
		var r internal.FileReport
		if err := rows.Scan(&r.FileName, &r.Status, &r.Rows, &r.MatchedFields); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
