package store

import (
	"encoding/json"
	"errors"
	"os"

	"apptrack/internal/model"
)

func (s Store) loadJSON() (model.Snapshot, bool, error) {
	b, err := os.ReadFile(s.statePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Snapshot{}, false, nil
		}
		return model.Snapshot{}, false, err
	}
	snap, err := decodeSnapshot(b)
	if err != nil {
		return model.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s Store) saveJSON(snap model.Snapshot) error {
	b, err := ExportJSON(snap)
	if err != nil {
		return err
	}
	return writeFileAtomic(s.statePath(), b)
}

func writeFileAtomic(path string, b []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ExportJSON renders the full snapshot in the import/export file format.
func ExportJSON(snap model.Snapshot) ([]byte, error) {
	out := snap.Clone()
	out.Normalize()
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}
