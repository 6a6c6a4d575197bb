package tracker

import (
	"sort"
	"sync"
	"time"

	"apptrack/internal/logger"
)

const DefaultDebounce = 500 * time.Millisecond

// Debouncer holds at most one pending write per key. Scheduling a key that
// already has a pending write stops its timer and replaces the write.
type Debouncer struct {
	delay time.Duration
	log   *logger.Logger

	mu      sync.Mutex
	seq     uint64
	pending map[string]*pendingWrite

	// applyMu serializes applies with Cancel so a cancelled write can't land late.
	applyMu sync.Mutex
}

type pendingWrite struct {
	seq   uint64
	timer *time.Timer
	apply func()
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{
		delay:   delay,
		log:     logger.Nop(),
		pending: map[string]*pendingWrite{},
	}
}

func (d *Debouncer) Schedule(key string, apply func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
		d.log.Debugw("pending edit superseded", "key", key)
	}
	d.seq++
	seq := d.seq
	d.pending[key] = &pendingWrite{
		seq:   seq,
		apply: apply,
		timer: time.AfterFunc(d.delay, func() { d.onTimer(key, seq) }),
	}
}

func (d *Debouncer) onTimer(key string, seq uint64) {
	d.applyMu.Lock()
	defer d.applyMu.Unlock()

	d.mu.Lock()
	pw, ok := d.pending[key]
	if !ok || pw.seq != seq {
		// Superseded or cancelled after the timer fired.
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	d.mu.Unlock()

	pw.apply()
}

// Cancel drops the pending write for key, waiting out an apply already in progress.
func (d *Debouncer) Cancel(key string) bool {
	d.applyMu.Lock()
	defer d.applyMu.Unlock()

	d.mu.Lock()
	defer d.mu.Unlock()
	pw, ok := d.pending[key]
	if !ok {
		return false
	}
	pw.timer.Stop()
	delete(d.pending, key)
	return true
}

func (d *Debouncer) DiscardAll() int {
	d.applyMu.Lock()
	defer d.applyMu.Unlock()

	d.mu.Lock()
	defer d.mu.Unlock()
	n := len(d.pending)
	for key, pw := range d.pending {
		pw.timer.Stop()
		delete(d.pending, key)
	}
	return n
}

// Flush applies every pending write now, in key order.
func (d *Debouncer) Flush() int {
	d.applyMu.Lock()
	defer d.applyMu.Unlock()

	d.mu.Lock()
	keys := make([]string, 0, len(d.pending))
	for key := range d.pending {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	writes := make([]*pendingWrite, 0, len(keys))
	for _, key := range keys {
		pw := d.pending[key]
		pw.timer.Stop()
		delete(d.pending, key)
		writes = append(writes, pw)
	}
	d.mu.Unlock()

	for _, pw := range writes {
		pw.apply()
	}
	return len(writes)
}

func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
