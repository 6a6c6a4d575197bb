// Package store persists the tracker snapshot on disk.
//
// Two backends share one directory layout: state.sqlite (default) or
// state.json, plus view_state.json and a backups/ directory.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"apptrack/internal/logger"
	"apptrack/internal/model"
)

const (
	jsonStateFileName   = "state.json"
	sqliteStateFileName = "state.sqlite"
	backupsDirName      = "backups"
)

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendJSON   Backend = "json"
)

func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendSQLite:
		return BackendSQLite, nil
	case BackendJSON:
		return BackendJSON, nil
	}
	return "", fmt.Errorf("unknown backend: %q", s)
}

type Store struct {
	Dir     string
	Backend Backend
	Log     *logger.Logger
}

// LoadResult is the outcome of Load. Seeded is set when the seed dataset was
// used; Cause is set when that happened because stored data was unreadable.
type LoadResult struct {
	Snapshot model.Snapshot
	Seeded   bool
	Cause    error
	// Quarantined is where unreadable data was moved, if anywhere.
	Quarantined string
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) backend() Backend {
	if s.Backend == "" {
		return BackendSQLite
	}
	return s.Backend
}

func (s Store) log() *logger.Logger {
	if s.Log == nil {
		return logger.Nop()
	}
	return s.Log
}

func (s Store) statePath() string {
	if s.backend() == BackendJSON {
		return filepath.Join(s.Dir, jsonStateFileName)
	}
	return filepath.Join(s.Dir, sqliteStateFileName)
}

func (s Store) backupsDir() string {
	return filepath.Join(s.Dir, backupsDirName)
}

// Load never fails on bad data: absent state yields the seed dataset, and
// unreadable state is moved aside and replaced by the seed dataset.
// Only filesystem errors on the data directory itself are returned.
func (s Store) Load(ctx context.Context) (LoadResult, error) {
	if err := s.Ensure(); err != nil {
		return LoadResult{}, err
	}

	var (
		snap  model.Snapshot
		found bool
		err   error
	)
	switch s.backend() {
	case BackendJSON:
		snap, found, err = s.loadJSON()
	default:
		snap, found, err = s.loadSQLite(ctx)
	}
	if err != nil {
		res := LoadResult{Snapshot: Seed(), Seeded: true, Cause: err}
		if dest, qerr := s.quarantine(); qerr == nil {
			res.Quarantined = dest
		} else if !errors.Is(qerr, os.ErrNotExist) {
			s.log().WithError(qerr).Warnw("could not move unreadable state aside", "path", s.statePath())
		}
		s.log().WithError(err).Warnw("stored state unreadable, using seed data", "path", s.statePath(), "quarantined", res.Quarantined)
		return res, nil
	}
	if !found {
		s.log().Infow("no stored state, using seed data", "dir", s.Dir)
		return LoadResult{Snapshot: Seed(), Seeded: true}, nil
	}
	if snap.Normalize() {
		s.log().Debugw("normalized stored state")
	}
	return LoadResult{Snapshot: snap}, nil
}

// Save writes the whole snapshot.
func (s Store) Save(ctx context.Context, snap model.Snapshot) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	switch s.backend() {
	case BackendJSON:
		return s.saveJSON(snap)
	default:
		return s.saveSQLite(ctx, snap)
	}
}

func (s Store) quarantine() (string, error) {
	src := s.statePath()
	if _, err := os.Stat(src); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.backupsDir(), 0o755); err != nil {
		return "", err
	}
	dest := filepath.Join(s.backupsDir(), "unreadable-"+timestamp(time.Now())+"-"+filepath.Base(src))
	if err := os.Rename(src, dest); err != nil {
		return "", err
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(src + suffix)
	}
	return dest, nil
}

func timestamp(t time.Time) string {
	return t.UTC().Format("20060102T150405.000Z")
}
