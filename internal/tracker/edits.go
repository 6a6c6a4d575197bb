package tracker

// Text fields are edited keystroke by keystroke. These entry points coalesce
// the edits per entity and apply only the latest once input goes quiet.

func notesEditKey(applicationID string) string { return "notes:" + applicationID }
func essayEditKey(essayID string) string       { return "essay:" + essayID }

// EditNotes schedules a notes write for the application.
func (t *Tracker) EditNotes(applicationID, notes string) {
	t.edits.Schedule(notesEditKey(applicationID), func() {
		if _, err := t.SetNotes(applicationID, notes); err != nil {
			t.log.WithError(err).Warnw("debounced notes edit failed", "application", applicationID)
		}
	})
}

// EditEssayText schedules an essay text write.
func (t *Tracker) EditEssayText(essayID, text string) {
	t.edits.Schedule(essayEditKey(essayID), func() {
		if _, err := t.SetEssayText(essayID, text); err != nil {
			t.log.WithError(err).Warnw("debounced essay edit failed", "essay", essayID)
		}
	})
}

// DiscardEdit drops a pending edit, e.g. when its editor closes without saving.
func (t *Tracker) DiscardEdit(kind, id string) bool {
	switch kind {
	case "notes":
		return t.edits.Cancel(notesEditKey(id))
	case "essay":
		return t.edits.Cancel(essayEditKey(id))
	}
	return false
}

// PendingEdits reports how many debounced writes have not landed yet.
func (t *Tracker) PendingEdits() int {
	return t.edits.Pending()
}

// FlushEdits applies all pending edits immediately.
func (t *Tracker) FlushEdits() int {
	return t.edits.Flush()
}

// Close flushes pending edits. The tracker stays usable for reads.
func (t *Tracker) Close() {
	if n := t.edits.Flush(); n > 0 {
		t.log.Debugw("flushed pending edits", "count", n)
	}
}
