// Package tracker owns the application snapshot and every mutation on it.
//
// All writes go through Tracker methods. Each write is applied to a copy of the
// snapshot and swapped in whole, so readers never see a half-applied change and
// the derived index is always rebuilt from a consistent state.
package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"apptrack/internal/logger"
	"apptrack/internal/model"
	"apptrack/internal/query"

	"github.com/google/uuid"
)

// Persister receives the full snapshot after every settled mutation.
type Persister interface {
	Save(ctx context.Context, s model.Snapshot) error
}

type Tracker struct {
	mu   sync.Mutex
	snap model.Snapshot
	idx  query.Index

	persister Persister
	log       *logger.Logger
	now       func() time.Time
	newID     func() string

	sort  SortState
	edits *Debouncer
}

type Option func(*Tracker)

func WithPersister(p Persister) Option {
	return func(t *Tracker) { t.persister = p }
}

func WithLogger(l *logger.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// WithClock overrides time.Now for history timestamps.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(t *Tracker) { t.newID = gen }
}

// WithDebounce sets how long text edits wait before they apply.
func WithDebounce(d time.Duration) Option {
	return func(t *Tracker) { t.edits = NewDebouncer(d) }
}

// WithSortState restores sort caches saved by a previous session.
func WithSortState(s SortState) Option {
	return func(t *Tracker) { t.sort = s }
}

// New takes ownership of a copy of s. The snapshot is normalized first.
func New(s model.Snapshot, opts ...Option) *Tracker {
	snap := s.Clone()
	snap.Normalize()
	t := &Tracker{
		snap:  snap,
		log:   logger.Nop(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.edits == nil {
		t.edits = NewDebouncer(DefaultDebounce)
	}
	t.edits.log = t.log.WithComponent("debounce")
	t.idx = query.BuildIndex(t.snap)
	return t
}

// Snapshot returns a deep copy of the current state.
func (t *Tracker) Snapshot() model.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap.Clone()
}

// ReplaceAll swaps in an entirely new snapshot (the import path).
// Pending debounced edits target the old data and are dropped.
func (t *Tracker) ReplaceAll(ctx context.Context, s model.Snapshot) error {
	t.edits.DiscardAll()
	next := s.Clone()
	next.Normalize()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap = next
	t.idx = query.BuildIndex(t.snap)
	t.sort.Refresh++
	return t.persistLocked(ctx)
}

// mutate runs fn against a working copy and commits it only when fn reports a change.
func (t *Tracker) mutate(op string, fn func(s *model.Snapshot) (bool, error)) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	work := t.snap.Clone()
	changed, err := fn(&work)
	if err != nil {
		return false, err
	}
	if !changed {
		t.log.Debugw("no-op mutation", "op", op)
		return false, nil
	}
	t.snap = work
	t.idx = query.BuildIndex(t.snap)
	if err := t.persistLocked(context.Background()); err != nil {
		return true, err
	}
	return true, nil
}

func (t *Tracker) persistLocked(ctx context.Context) error {
	if t.persister == nil {
		return nil
	}
	if err := t.persister.Save(ctx, t.snap); err != nil {
		t.log.WithError(err).Errorw("save snapshot failed")
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func findApplication(s *model.Snapshot, id string) int {
	for i := range s.Applications {
		if s.Applications[i].ID == id {
			return i
		}
	}
	return -1
}

func findEssay(s *model.Snapshot, id string) int {
	for i := range s.Essays {
		if s.Essays[i].ID == id {
			return i
		}
	}
	return -1
}

func findTag(s *model.Snapshot, id string) int {
	for i := range s.Tags {
		if s.Tags[i].ID == id {
			return i
		}
	}
	return -1
}

func removeID(ids []string, id string) ([]string, bool) {
	out := make([]string, 0, len(ids))
	removed := false
	for _, x := range ids {
		if x == id {
			removed = true
			continue
		}
		out = append(out, x)
	}
	return out, removed
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
