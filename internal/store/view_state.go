package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"apptrack/internal/tracker"
)

const viewStateFileName = "view_state.json"

// ViewState remembers list ordering between CLI invocations so that repeated
// `apps list` calls keep their order the way a resident view does.
// It is best effort: callers should tolerate missing or invalid data.
type ViewState struct {
	Version int               `json:"version"`
	Sort    tracker.SortState `json:"sort"`
}

func (s Store) viewStatePath() string {
	return filepath.Join(s.Dir, viewStateFileName)
}

func (s Store) LoadViewState() (*ViewState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &ViewState{Version: 1}, nil
	}
	b, err := os.ReadFile(s.viewStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ViewState{Version: 1}, nil
		}
		return nil, err
	}
	var st ViewState
	if err := json.Unmarshal(b, &st); err != nil {
		// Corrupted: treat as missing.
		return &ViewState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveViewState(st *ViewState) error {
	if st == nil || strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.viewStatePath(), b)
}
