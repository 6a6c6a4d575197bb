package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"apptrack/internal/model"

	_ "modernc.org/sqlite"
)

const stateSchemaVersion = 1

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.statePath())
	if err != nil {
		return nil, err
	}
	// WAL keeps readers (a second shell running `apps list`) from blocking a writer.
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
	if err := migrateSQLiteState(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s Store) loadSQLite(ctx context.Context) (model.Snapshot, bool, error) {
	if _, err := os.Stat(s.statePath()); errors.Is(err, os.ErrNotExist) {
		return model.Snapshot{}, false, nil
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Snapshot{}, false, err
	}
	defer db.Close()

	version, ok, err := readMeta(ctx, db, "version")
	if err != nil {
		return model.Snapshot{}, false, err
	}
	if !ok {
		// Schema exists but nothing was ever saved.
		return model.Snapshot{}, false, nil
	}
	if n, err := strconv.Atoi(version); err != nil || n > stateSchemaVersion {
		return model.Snapshot{}, false, errors.New("unsupported state version " + version)
	}

	var out model.Snapshot
	if out.Applications, err = readJSONRows[model.Application](ctx, db, `SELECT json FROM applications ORDER BY pos`); err != nil {
		return model.Snapshot{}, false, err
	}
	if out.Essays, err = readJSONRows[model.Essay](ctx, db, `SELECT json FROM essays ORDER BY pos`); err != nil {
		return model.Snapshot{}, false, err
	}
	if out.Tags, err = readJSONRows[model.Tag](ctx, db, `SELECT json FROM tags ORDER BY pos`); err != nil {
		return model.Snapshot{}, false, err
	}
	return out, true, nil
}

func (s Store) saveSQLite(ctx context.Context, snap model.Snapshot) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	nowMs := time.Now().UTC().UnixMilli()
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, "version", strconv.Itoa(stateSchemaVersion)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, "saved_at_unixms", strconv.FormatInt(nowMs, 10)); err != nil {
		return err
	}

	// Replace-all: snapshots are small and every save is a full snapshot.
	for _, t := range []string{"applications", "essays", "tags"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	for pos, a := range snap.Applications {
		raw, err := json.Marshal(a)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO applications(id, pos, school_name, deadline, outcome, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?)`,
			a.ID, pos, a.SchoolName, string(a.Deadline), string(a.Outcome), string(raw), nowMs); err != nil {
			return err
		}
	}
	for pos, e := range snap.Essays {
		raw, err := json.Marshal(e)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO essays(id, pos, application_id, ord, completed, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?)`,
			e.ID, pos, e.ApplicationID, e.Order, boolToInt(e.Completed), string(raw), nowMs); err != nil {
			return err
		}
	}
	for pos, t := range snap.Tags {
		raw, err := json.Marshal(t)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO tags(id, pos, name, type, color, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?)`,
			t.ID, pos, t.Name, string(t.Type), string(t.Color), string(raw), nowMs); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS applications (
			id TEXT PRIMARY KEY,
			pos INTEGER NOT NULL,
			school_name TEXT NOT NULL,
			deadline TEXT NOT NULL,
			outcome TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS essays (
			id TEXT PRIMARY KEY,
			pos INTEGER NOT NULL,
			application_id TEXT NOT NULL,
			ord INTEGER NOT NULL,
			completed INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_essays_application ON essays(application_id, ord);`,
		`CREATE TABLE IF NOT EXISTS tags (
			id TEXT PRIMARY KEY,
			pos INTEGER NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			color TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func readMeta(ctx context.Context, db *sql.DB, k string) (string, bool, error) {
	var v string
	err := db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, k).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return strings.TrimSpace(v), true, nil
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
