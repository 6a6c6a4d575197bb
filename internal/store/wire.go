package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"apptrack/internal/model"
)

// ErrInvalidImport marks a file that is not a snapshot.
var ErrInvalidImport = errors.New("invalid import file")

var snapshotFields = []string{"applications", "essays", "tags"}

// ParseImport decodes a user-supplied snapshot. Each of the three collections
// must be present and a list, and every entity must validate.
func ParseImport(b []byte) (model.Snapshot, error) {
	snap, err := decodeSnapshot(b)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if err := validateSnapshot(snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	snap.Normalize()
	return snap, nil
}

func decodeSnapshot(b []byte) (model.Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return model.Snapshot{}, err
	}
	if raw == nil {
		return model.Snapshot{}, errors.New("expected an object")
	}
	for _, field := range snapshotFields {
		if !isList(raw[field]) {
			return model.Snapshot{}, fmt.Errorf("%q must be a list", field)
		}
	}
	var snap model.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return model.Snapshot{}, err
	}
	return snap, nil
}

func isList(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '['
}

func validateSnapshot(snap model.Snapshot) error {
	for _, t := range snap.Tags {
		if err := model.Validate(t); err != nil {
			return err
		}
	}
	for _, a := range snap.Applications {
		if err := model.Validate(a); err != nil {
			return fmt.Errorf("application %s: %w", a.ID, err)
		}
	}
	for _, e := range snap.Essays {
		if err := model.Validate(e); err != nil {
			return fmt.Errorf("essay %s: %w", e.ID, err)
		}
	}
	return nil
}
