package store

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"apptrack/internal/model"
)

func CopyFile(src string, dest string) error {
	src = filepath.Clean(src)
	dest = filepath.Clean(dest)
	if src == "" || dest == "" {
		return errors.New("copy file: missing src/dest")
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// Backup writes an importable copy of the current state into backups/ and returns its path.
// The JSON backend's state file is copied as is; SQLite state is exported.
func (s Store) Backup(ctx context.Context, current model.Snapshot) (string, error) {
	dest := filepath.Join(s.backupsDir(), "state-"+timestamp(time.Now())+".json")
	if s.backend() == BackendJSON {
		err := CopyFile(s.statePath(), dest)
		if err == nil {
			return dest, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := ExportJSON(current)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.backupsDir(), 0o755); err != nil {
		return "", err
	}
	if err := writeFileAtomic(dest, b); err != nil {
		return "", err
	}
	return dest, nil
}
