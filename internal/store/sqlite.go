package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"eisen/internal/model"

	_ "modernc.org/sqlite"
)

// SQLite is the default local Backend. Each task is one row; insertion
// order is kept by the autoincrement seq column.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (or creates) the database at path. Use ":memory:" for an
// ephemeral store.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sqlite: empty path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One connection keeps ":memory:" databases shared and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db, path: path}, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tasks (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			importance INTEGER NOT NULL DEFAULT 0,
			urgency INTEGER NOT NULL DEFAULT 0,
			due_date TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT '',
			quadrant TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending'
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);`,
		`CREATE TABLE IF NOT EXISTS tags (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			tag_name TEXT NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

func (s *SQLite) Path() string { return s.path }

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) LoadTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, description, importance, urgency, due_date, tags, status FROM tasks ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Task
	for rows.Next() {
		var (
			t            model.Task
			tags, status string
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Importance, &t.Urgency, &t.DueDate, &tags, &status); err != nil {
			return nil, err
		}
		t.Tags = model.SplitTags(tags)
		// Scores win over the stored quadrant column.
		t.Quadrant = model.Classify(t.Importance, t.Urgency)
		t.Status = model.StatusPending
		if model.Status(status) == model.StatusDone {
			t.Status = model.StatusDone
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLite) InsertTask(ctx context.Context, t model.Task) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO tasks(id, title, description, importance, urgency, due_date, tags, quadrant, status) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.Importance, t.Urgency, t.DueDate, model.JoinTags(t.Tags), string(t.Quadrant), string(t.Status))
	return err
}

func (s *SQLite) UpdateTask(ctx context.Context, t model.Task) error {
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET title = ?, description = ?, importance = ?, urgency = ?, due_date = ?, tags = ?, quadrant = ?, status = ? WHERE id = ?`,
		t.Title, t.Description, t.Importance, t.Urgency, t.DueDate, model.JoinTags(t.Tags), string(t.Quadrant), string(t.Status), t.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) ClearTasks(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tasks`)
	return err
}

func (s *SQLite) LoadTags(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT tag_name FROM tags ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func (s *SQLite) AppendTag(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO tags(tag_name) VALUES(?)`, name)
	return err
}

func (s *SQLite) DeleteTag(ctx context.Context, name string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE seq = (SELECT seq FROM tags WHERE tag_name = ? ORDER BY seq LIMIT 1)`, name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
