package tracker

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_CoalescesPerKey(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var got atomic.Value
	var applied atomic.Int32

	for _, v := range []string{"a", "ab", "abc"} {
		v := v
		d.Schedule("k", func() {
			got.Store(v)
			applied.Add(1)
		})
	}
	assert.Equal(t, 1, d.Pending())

	require.Eventually(t, func() bool { return applied.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "abc", got.Load())
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), applied.Load())
}

func TestDebouncer_CancelAndFlush(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var applied atomic.Int32
	d.Schedule("a", func() { applied.Add(1) })
	d.Schedule("b", func() { applied.Add(10) })

	assert.True(t, d.Cancel("a"))
	assert.False(t, d.Cancel("a"))
	assert.Equal(t, 1, d.Flush())
	assert.Equal(t, int32(10), applied.Load())
	assert.Equal(t, 0, d.Pending())
}

func TestEditNotes_AppliesLatestOnly(t *testing.T) {
	tr, p := newTestTracker(t)
	a, err := tr.AddApplication(NewApplication{SchoolName: "A", Deadline: "2025-01-01"})
	require.NoError(t, err)
	saves := p.count()

	tr.EditNotes(a.ID, "d")
	tr.EditNotes(a.ID, "dr")
	tr.EditNotes(a.ID, "draft")

	require.Eventually(t, func() bool {
		got, _ := tr.Application(a.ID)
		return got.Notes == "draft"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, saves+1, p.count())
}

func TestEditEssayText_DiscardDropsWrite(t *testing.T) {
	tr, _ := newTestTracker(t, WithDebounce(time.Hour))
	a, _ := tr.AddApplication(NewApplication{SchoolName: "A", Deadline: "2025-01-01"})
	e, _ := tr.AddEssay(NewEssay{ApplicationID: a.ID, Text: "original"})

	tr.EditEssayText(e.ID, "typed")
	assert.Equal(t, 1, tr.PendingEdits())
	assert.True(t, tr.DiscardEdit("essay", e.ID))
	tr.Close()

	got, _ := tr.Essay(e.ID)
	assert.Equal(t, "original", got.Text)
}

func TestClose_FlushesPendingEdits(t *testing.T) {
	tr, _ := newTestTracker(t, WithDebounce(time.Hour))
	a, _ := tr.AddApplication(NewApplication{SchoolName: "A", Deadline: "2025-01-01"})
	e, _ := tr.AddEssay(NewEssay{ApplicationID: a.ID})

	tr.EditEssayText(e.ID, "final words")
	tr.Close()

	got, _ := tr.Essay(e.ID)
	assert.Equal(t, "final words", got.Text)
	assert.Equal(t, 0, tr.PendingEdits())
}

func TestCommitEssayHistory_SupersedesPendingEdit(t *testing.T) {
	tr, _ := newTestTracker(t, WithDebounce(time.Hour))
	a, _ := tr.AddApplication(NewApplication{SchoolName: "A", Deadline: "2025-01-01"})
	e, _ := tr.AddEssay(NewEssay{ApplicationID: a.ID})

	tr.EditEssayText(e.ID, "half typed")
	_, err := tr.CommitEssayHistory(e.ID, "half typed, then finished")
	require.NoError(t, err)
	tr.Close()

	got, _ := tr.Essay(e.ID)
	assert.Equal(t, "half typed, then finished", got.Text)
	require.Len(t, got.History, 1)
}
