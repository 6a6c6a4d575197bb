package tracker

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"apptrack/internal/model"
	"apptrack/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPersister struct {
	mu    sync.Mutex
	saves []model.Snapshot
}

func (p *recordingPersister) Save(_ context.Context, s model.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves = append(p.saves, s.Clone())
	return nil
}

func (p *recordingPersister) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.saves)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

var fixedNow = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func newTestTracker(t *testing.T, opts ...Option) (*Tracker, *recordingPersister) {
	t.Helper()
	p := &recordingPersister{}
	base := []Option{
		WithPersister(p),
		WithIDGenerator(sequentialIDs()),
		WithClock(func() time.Time { return fixedNow }),
		WithDebounce(20 * time.Millisecond),
	}
	tr := New(model.Snapshot{}, append(base, opts...)...)
	return tr, p
}

func essayOrders(t *testing.T, tr *Tracker, appID string) []int {
	t.Helper()
	var out []int
	for _, e := range tr.EssaysForApplication(appID) {
		out = append(out, e.Order)
	}
	return out
}

func essayIDs(essays []model.Essay) []string {
	out := make([]string, len(essays))
	for i, e := range essays {
		out[i] = e.ID
	}
	return out
}

func TestAddApplication_DefaultChecklistAndOutcome(t *testing.T) {
	tr, p := newTestTracker(t)

	a, err := tr.AddApplication(NewApplication{SchoolName: " Stanford ", Deadline: "2025-01-05"})
	require.NoError(t, err)
	assert.Equal(t, "Stanford", a.SchoolName)
	assert.Equal(t, model.OutcomeInProgress, a.Outcome)
	require.Len(t, a.Checklist, 3)
	assert.Equal(t, "Rec Letters", a.Checklist[0].Text)
	assert.False(t, a.Checklist[0].Completed)
	assert.Empty(t, a.Notes)
	assert.Equal(t, 1, p.count())
}

func TestAddApplication_RejectsInvalid(t *testing.T) {
	tr, p := newTestTracker(t)

	_, err := tr.AddApplication(NewApplication{SchoolName: "", Deadline: "2025-01-05"})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = tr.AddApplication(NewApplication{SchoolName: "MIT", Deadline: "Jan 5"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, p.count())
}

func TestAddEssay_AppendsAndRequiresParent(t *testing.T) {
	tr, _ := newTestTracker(t)
	a, err := tr.AddApplication(NewApplication{SchoolName: "MIT", Deadline: "2025-01-06"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		e, err := tr.AddEssay(NewEssay{ApplicationID: a.ID, Prompt: fmt.Sprintf("p%d", i)})
		require.NoError(t, err)
		assert.Equal(t, i, e.Order)
		assert.False(t, e.Completed)
		assert.Empty(t, e.History)
	}

	_, err = tr.AddEssay(NewEssay{ApplicationID: "nope"})
	var nf NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "application", nf.Kind)
}

func TestEssayOrderStaysContiguous(t *testing.T) {
	tr, _ := newTestTracker(t)
	a, _ := tr.AddApplication(NewApplication{SchoolName: "A", Deadline: "2025-01-01"})
	b, _ := tr.AddApplication(NewApplication{SchoolName: "B", Deadline: "2025-01-02"})

	var ids []string
	for i := 0; i < 5; i++ {
		e, err := tr.AddEssay(NewEssay{ApplicationID: a.ID, Prompt: fmt.Sprintf("a%d", i)})
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}
	other, err := tr.AddEssay(NewEssay{ApplicationID: b.ID, Prompt: "b0"})
	require.NoError(t, err)

	_, err = tr.DeleteEssay(ids[1])
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, essayOrders(t, tr, a.ID))

	_, err = tr.ReorderEssay(a.ID, ids[4], ids[0])
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, essayOrders(t, tr, a.ID))

	_, err = tr.AddEssay(NewEssay{ApplicationID: a.ID, Prompt: "a5"})
	require.NoError(t, err)
	_, err = tr.DeleteEssay(ids[0])
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, essayOrders(t, tr, a.ID))

	got, ok := tr.Essay(other.ID)
	require.True(t, ok)
	assert.Equal(t, 0, got.Order)
}

func TestReorderEssay_RemoveThenInsert(t *testing.T) {
	setup := func(t *testing.T) (*Tracker, string, []string) {
		tr, _ := newTestTracker(t)
		a, _ := tr.AddApplication(NewApplication{SchoolName: "A", Deadline: "2025-01-01"})
		var ids []string
		for _, p := range []string{"A", "B", "C"} {
			e, err := tr.AddEssay(NewEssay{ApplicationID: a.ID, Prompt: p})
			require.NoError(t, err)
			ids = append(ids, e.ID)
		}
		return tr, a.ID, ids
	}
	prompts := func(tr *Tracker, appID string) []string {
		var out []string
		for _, e := range tr.EssaysForApplication(appID) {
			out = append(out, e.Prompt)
		}
		return out
	}

	t.Run("drag up lands before target", func(t *testing.T) {
		tr, appID, ids := setup(t)
		changed, err := tr.ReorderEssay(appID, ids[2], ids[0])
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, []string{"C", "A", "B"}, prompts(tr, appID))
	})

	t.Run("drag down takes target index", func(t *testing.T) {
		tr, appID, ids := setup(t)
		_, err := tr.ReorderEssay(appID, ids[0], ids[2])
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "C", "A"}, prompts(tr, appID))
	})

	t.Run("unknown ids are a no-op", func(t *testing.T) {
		tr, appID, ids := setup(t)
		changed, err := tr.ReorderEssay(appID, "missing", ids[0])
		require.NoError(t, err)
		assert.False(t, changed)
		changed, err = tr.ReorderEssay("other-app", ids[0], ids[1])
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, []string{"A", "B", "C"}, prompts(tr, appID))
	})
}

func TestDeleteTag_Cascades(t *testing.T) {
	tr, _ := newTestTracker(t)
	school, err := tr.AddTag("Reach", model.TagColor("rose"), model.TagTypeSchool)
	require.NoError(t, err)
	essayTag, err := tr.AddTag("Why Us?", model.TagColor("blue"), model.TagTypeEssay)
	require.NoError(t, err)

	a, err := tr.AddApplication(NewApplication{SchoolName: "A", Deadline: "2025-01-01", TagIDs: []string{school.ID}})
	require.NoError(t, err)
	e, err := tr.AddEssay(NewEssay{ApplicationID: a.ID, TagIDs: []string{essayTag.ID}})
	require.NoError(t, err)

	changed, err := tr.DeleteTag(school.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	_, err = tr.DeleteTag(essayTag.ID)
	require.NoError(t, err)

	got, _ := tr.Application(a.ID)
	assert.Empty(t, got.TagIDs)
	gotEssay, _ := tr.Essay(e.ID)
	assert.Empty(t, gotEssay.TagIDs)
	assert.Empty(t, tr.TagsByID())
}

func TestDeleteApplication_CascadesEssays(t *testing.T) {
	tr, _ := newTestTracker(t)
	a, _ := tr.AddApplication(NewApplication{SchoolName: "A", Deadline: "2025-01-01"})
	b, _ := tr.AddApplication(NewApplication{SchoolName: "B", Deadline: "2025-01-01"})
	_, _ = tr.AddEssay(NewEssay{ApplicationID: a.ID})
	_, _ = tr.AddEssay(NewEssay{ApplicationID: a.ID})
	kept, _ := tr.AddEssay(NewEssay{ApplicationID: b.ID})

	changed, err := tr.DeleteApplication(a.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	snap := tr.Snapshot()
	require.Len(t, snap.Essays, 1)
	assert.Equal(t, kept.ID, snap.Essays[0].ID)
	assert.Empty(t, tr.EssaysForApplication(a.ID))
}

func TestTagTypeIsEnforced(t *testing.T) {
	tr, _ := newTestTracker(t)
	essayTag, _ := tr.AddTag("Why Us?", model.TagColor("blue"), model.TagTypeEssay)

	_, err := tr.AddApplication(NewApplication{SchoolName: "A", Deadline: "2025-01-01", TagIDs: []string{essayTag.ID}})
	var tte TagTypeError
	require.ErrorAs(t, err, &tte)

	_, err = tr.AddTag("Bad", model.TagColor("chartreuse"), model.TagTypeSchool)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestUpdateTag_KeepsType(t *testing.T) {
	tr, _ := newTestTracker(t)
	tag, _ := tr.AddTag("Reach", model.TagColor("rose"), model.TagTypeSchool)

	changed, err := tr.UpdateTag(tag.ID, "Far Reach", model.TagColor("red"))
	require.NoError(t, err)
	assert.True(t, changed)
	got := tr.TagsByID()[tag.ID]
	assert.Equal(t, "Far Reach", got.Name)
	assert.Equal(t, model.TagTypeSchool, got.Type)

	changed, err = tr.UpdateTag(tag.ID, "Far Reach", model.TagColor("red"))
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = tr.UpdateTag("missing", "x", model.TagColor("red"))
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestCommitEssayHistory_NewestFirst(t *testing.T) {
	tr, _ := newTestTracker(t)
	a, _ := tr.AddApplication(NewApplication{SchoolName: "A", Deadline: "2025-01-01"})
	e, _ := tr.AddEssay(NewEssay{ApplicationID: a.ID, Text: "draft v0"})

	_, err := tr.CommitEssayHistory(e.ID, "draft v1")
	require.NoError(t, err)
	_, err = tr.CommitEssayHistory(e.ID, "draft v2")
	require.NoError(t, err)

	got, _ := tr.Essay(e.ID)
	require.Len(t, got.History, 2)
	assert.Equal(t, "draft v2", got.History[0].Text)
	assert.Equal(t, "draft v1", got.History[1].Text)
	assert.Equal(t, fixedNow, got.History[0].Timestamp)
	assert.Equal(t, "draft v2", got.Text)

	changed, err := tr.RestoreEssayVersion(e.ID, 1)
	require.NoError(t, err)
	assert.True(t, changed)
	got, _ = tr.Essay(e.ID)
	assert.Equal(t, "draft v1", got.Text)
	assert.Len(t, got.History, 2)

	_, err = tr.RestoreEssayVersion(e.ID, 5)
	require.Error(t, err)
}

func TestUpdateEssay_PreservesOwnedFields(t *testing.T) {
	tr, _ := newTestTracker(t)
	a, _ := tr.AddApplication(NewApplication{SchoolName: "A", Deadline: "2025-01-01"})
	b, _ := tr.AddApplication(NewApplication{SchoolName: "B", Deadline: "2025-01-01"})
	_, _ = tr.AddEssay(NewEssay{ApplicationID: a.ID})
	e, _ := tr.AddEssay(NewEssay{ApplicationID: a.ID})
	_, _ = tr.CommitEssayHistory(e.ID, "v1")

	edit, _ := tr.Essay(e.ID)
	edit.Prompt = "New prompt"
	edit.ApplicationID = b.ID
	edit.Order = 7
	edit.History = nil
	edit.Completed = true

	changed, err := tr.UpdateEssay(edit)
	require.NoError(t, err)
	assert.True(t, changed)

	got, _ := tr.Essay(e.ID)
	assert.Equal(t, "New prompt", got.Prompt)
	assert.True(t, got.Completed)
	assert.Equal(t, a.ID, got.ApplicationID)
	assert.Equal(t, 1, got.Order)
	assert.Len(t, got.History, 1)
}

func TestChecklistOperations(t *testing.T) {
	tr, _ := newTestTracker(t)
	a, _ := tr.AddApplication(NewApplication{SchoolName: "A", Deadline: "2025-01-01"})

	item, changed, err := tr.AddChecklistTask(a.ID, "Interview")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = tr.ToggleChecklistTask(a.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	p, ok := tr.Completion(a.ID)
	require.True(t, ok)
	assert.Equal(t, query.Progress{Completed: 1, Total: 4}, p)

	changed, err = tr.ToggleChecklistTask(a.ID, "missing")
	require.NoError(t, err)
	assert.False(t, changed)

	changed, err = tr.DeleteChecklistTask(a.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	got, _ := tr.Application(a.ID)
	assert.Len(t, got.Checklist, 3)

	_, changed, err = tr.AddChecklistTask("missing", "x")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestNoOpMutationsDoNotPersist(t *testing.T) {
	tr, p := newTestTracker(t)
	before := p.count()

	for _, fn := range []func() (bool, error){
		func() (bool, error) { return tr.DeleteApplication("x") },
		func() (bool, error) { return tr.DeleteEssay("x") },
		func() (bool, error) { return tr.DeleteTag("x") },
		func() (bool, error) { return tr.ToggleEssayComplete("x") },
		func() (bool, error) { return tr.ToggleApplicationTag("x", "y") },
		func() (bool, error) { return tr.CommitEssayHistory("x", "text") },
	} {
		changed, err := fn()
		require.NoError(t, err)
		assert.False(t, changed)
	}
	assert.Equal(t, before, p.count())
}

func TestListApplications_StableUntilRefresh(t *testing.T) {
	tr, _ := newTestTracker(t)
	a, _ := tr.AddApplication(NewApplication{SchoolName: "A", Deadline: "2025-01-01"})
	b, _ := tr.AddApplication(NewApplication{SchoolName: "B", Deadline: "2025-01-02"})

	first := tr.ListApplications(query.Filter{}, query.SortMode("doneness-desc"))
	require.Equal(t, []string{a.ID, b.ID}, []string{first[0].ID, first[1].ID})

	// Finishing B's checklist would move it first, but the order holds.
	for _, item := range b.Checklist {
		_, err := tr.ToggleChecklistTask(b.ID, item.ID)
		require.NoError(t, err)
	}
	_, err := tr.SetNotes(a.ID, "edited")
	require.NoError(t, err)

	second := tr.ListApplications(query.Filter{}, query.SortMode("doneness-desc"))
	assert.Equal(t, []string{a.ID, b.ID}, []string{second[0].ID, second[1].ID})
	assert.Equal(t, "edited", second[0].Notes)

	tr.RefreshSort()
	third := tr.ListApplications(query.Filter{}, query.SortMode("doneness-desc"))
	assert.Equal(t, []string{b.ID, a.ID}, []string{third[0].ID, third[1].ID})
}

func TestListEssays_FiltersBySearch(t *testing.T) {
	tr, _ := newTestTracker(t)
	a, _ := tr.AddApplication(NewApplication{SchoolName: "Stanford", Deadline: "2025-01-01"})
	one, _ := tr.AddEssay(NewEssay{ApplicationID: a.ID, Prompt: "Why Stanford?", Text: "one two"})
	two, _ := tr.AddEssay(NewEssay{ApplicationID: a.ID, Prompt: "Roommate letter", Text: "one two three"})

	got := tr.ListEssays(query.Filter{Search: "roommate"}, query.EssaySortMode("words-asc"))
	assert.Equal(t, []string{two.ID}, essayIDs(got))

	got = tr.ListEssays(query.Filter{}, query.EssaySortMode("words-desc"))
	assert.Equal(t, []string{two.ID, one.ID}, essayIDs(got))
}

func TestReturnedValuesAreCopies(t *testing.T) {
	tr, _ := newTestTracker(t)
	a, _ := tr.AddApplication(NewApplication{SchoolName: "A", Deadline: "2025-01-01"})

	list := tr.ListApplications(query.Filter{}, query.DefaultSortMode)
	list[0].Checklist[0].Completed = true
	list[0].SchoolName = "mutated"

	got, _ := tr.Application(a.ID)
	assert.False(t, got.Checklist[0].Completed)
	assert.Equal(t, "A", got.SchoolName)
}

func TestReplaceAll_NormalizesAndPersists(t *testing.T) {
	tr, p := newTestTracker(t)
	err := tr.ReplaceAll(context.Background(), model.Snapshot{
		Applications: []model.Application{{ID: "a1", SchoolName: "A", Deadline: "2025-01-01", Outcome: model.OutcomeInProgress}},
		Essays: []model.Essay{
			{ID: "e1", ApplicationID: "a1", Order: 4},
			{ID: "e2", ApplicationID: "a1", Order: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, p.count())

	essays := tr.EssaysForApplication("a1")
	assert.Equal(t, []string{"e2", "e1"}, essayIDs(essays))
	assert.Equal(t, []int{0, 1}, essayOrders(t, tr, "a1"))
	assert.NotNil(t, tr.Snapshot().Tags)
}

func TestBoard_MoveBySettingOutcome(t *testing.T) {
	tr, _ := newTestTracker(t)
	a, err := tr.AddApplication(NewApplication{SchoolName: "Rice", Deadline: "2025-01-04"})
	require.NoError(t, err)

	board := tr.Board(query.Filter{}, query.SortDeadlineAsc)
	require.Equal(t, model.OutcomeInProgress, board[0].Outcome)
	require.Len(t, board[0].Applications, 1)

	_, err = tr.SetOutcome(a.ID, model.OutcomeAccepted)
	require.NoError(t, err)
	board = tr.Board(query.Filter{}, query.SortDeadlineAsc)
	assert.Empty(t, board[0].Applications)
	assert.Equal(t, model.OutcomeAccepted, board[2].Outcome)
	assert.Len(t, board[2].Applications, 1)

	c, err := tr.Comparison([]string{a.ID})
	require.NoError(t, err)
	require.Len(t, c.Schools, 1)
	assert.Equal(t, "Rice", c.Schools[0].Application.SchoolName)
}
