// Package indexdb keeps a small sqlite index of finished episodes so
// recorded runs stay discoverable without scanning log files.
package indexdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// EpisodeRow is one finished episode.
type EpisodeRow struct {
	ID         int64
	Env        string
	Seed       int64
	Steps      int
	Return     float64
	Terminated bool
	LogPath    string
	RecordedAt string
}

type SQLiteIndex struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	const schema = `
CREATE TABLE IF NOT EXISTS episodes (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	env         TEXT NOT NULL,
	seed        INTEGER NOT NULL,
	steps       INTEGER NOT NULL,
	total_return REAL NOT NULL,
	terminated  INTEGER NOT NULL,
	log_path    TEXT NOT NULL DEFAULT '',
	recorded_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_episodes_env ON episodes(env);
`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteIndex{db: db}, nil
}

func (x *SQLiteIndex) Close() error { return x.db.Close() }

// InsertEpisode records one finished episode and returns its id.
func (x *SQLiteIndex) InsertEpisode(ctx context.Context, row EpisodeRow) (int64, error) {
	if row.RecordedAt == "" {
		row.RecordedAt = time.Now().UTC().Format(time.RFC3339)
	}
	res, err := x.db.ExecContext(ctx,
		`INSERT INTO episodes (env, seed, steps, total_return, terminated, log_path, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		row.Env, row.Seed, row.Steps, row.Return, boolInt(row.Terminated), row.LogPath, row.RecordedAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListEpisodes returns the most recent episodes for env ("" for all),
// newest first.
func (x *SQLiteIndex) ListEpisodes(ctx context.Context, envName string, limit int) ([]EpisodeRow, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, env, seed, steps, total_return, terminated, log_path, recorded_at
		FROM episodes`
	args := []any{}
	if envName != "" {
		query += ` WHERE env = ?`
		args = append(args, envName)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := x.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EpisodeRow
	for rows.Next() {
		var r EpisodeRow
		var term int
		if err := rows.Scan(&r.ID, &r.Env, &r.Seed, &r.Steps, &r.Return, &term, &r.LogPath, &r.RecordedAt); err != nil {
			return nil, err
		}
		r.Terminated = term != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
