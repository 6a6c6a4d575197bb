package query

import (
	"testing"

	"apptrack/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortFixture(mode SortMode, f Filter, cache SortCache, refresh int, s model.Snapshot) ([]string, SortCache, bool) {
	idx := BuildIndex(s)
	filtered := FilterApplications(s, idx, f)
	out, next, recomputed := SortApplications(cache, NewSortInputs(string(mode), f, refresh), filtered, idx)
	return ids(out), next, recomputed
}

func TestSortApplications_Comparators(t *testing.T) {
	s := fixture()
	cases := []struct {
		mode SortMode
		want []string
	}{
		{SortDeadlineAsc, []string{"a3", "a1", "a2"}},
		{SortSchoolAsc, []string{"a2", "a1", "a3"}},
		{SortSchoolDesc, []string{"a3", "a1", "a2"}},
		// a1: (2+1)/(3+2)=60%, a3: 0/2=0%, a2: no tasks.
		{SortDonenessAsc, []string{"a3", "a1", "a2"}},
		{SortDonenessDesc, []string{"a1", "a3", "a2"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.mode), func(t *testing.T) {
			got, _, recomputed := sortFixture(tc.mode, Filter{}, SortCache{}, 0, s)
			assert.True(t, recomputed)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSortApplications_NoTaskSentinelAlwaysLast(t *testing.T) {
	s := fixture()
	// Move the no-task application to the front of the collection.
	s.Applications = append([]model.Application{s.Applications[1]}, s.Applications[0], s.Applications[2])
	for _, mode := range []SortMode{SortDonenessAsc, SortDonenessDesc} {
		got, _, _ := sortFixture(mode, Filter{}, SortCache{}, 0, s)
		require.Len(t, got, 3)
		assert.Equal(t, "a2", got[2], string(mode))
	}
}

func TestSortApplications_InvalidDeadlinesLast(t *testing.T) {
	s := fixture()
	s.Applications[2].Deadline = ""
	got, _, _ := sortFixture(SortDeadlineAsc, Filter{}, SortCache{}, 0, s)
	assert.Equal(t, []string{"a1", "a2", "a3"}, got)
}

func TestSortApplications_ReusesOrderAcrossUnrelatedEdits(t *testing.T) {
	s := fixture()
	first, cache, recomputed := sortFixture(SortDonenessDesc, Filter{}, SortCache{}, 0, s)
	require.True(t, recomputed)
	require.Equal(t, []string{"a1", "a3", "a2"}, first)

	// Finishing all of a3's tasks would put it first under a fresh sort.
	s.Applications[2].Checklist[0].Completed = true
	s.Essays[2].Completed = true
	s.Applications[2].Notes = "edited"

	idx := BuildIndex(s)
	filtered := FilterApplications(s, idx, Filter{})
	out, cache2, recomputed := SortApplications(cache, NewSortInputs(string(SortDonenessDesc), Filter{}, 0), filtered, idx)
	assert.False(t, recomputed)
	assert.Equal(t, first, ids(out))
	// Reused order still carries fresh field values.
	assert.Equal(t, "edited", out[1].Notes)
	assert.Equal(t, cache, cache2)

	// Calling again is idempotent.
	again, _, recomputed := sortFixture(SortDonenessDesc, Filter{}, cache2, 0, s)
	assert.False(t, recomputed)
	assert.Equal(t, first, again)

	// An explicit refresh opts back into an up-to-date order.
	fresh, _, recomputed := sortFixture(SortDonenessDesc, Filter{}, cache2, 1, s)
	assert.True(t, recomputed)
	assert.Equal(t, []string{"a3", "a1", "a2"}, fresh)
}

func TestSortApplications_ResortsWhenInputsChange(t *testing.T) {
	s := fixture()
	_, cache, _ := sortFixture(SortDeadlineAsc, Filter{}, SortCache{}, 0, s)

	got, cache, recomputed := sortFixture(SortSchoolAsc, Filter{}, cache, 0, s)
	assert.True(t, recomputed)
	assert.Equal(t, []string{"a2", "a1", "a3"}, got)

	// Search text changed but matches the same set: still a resort trigger.
	_, _, recomputed = sortFixture(SortSchoolAsc, Filter{Search: "i"}, cache, 0, s)
	assert.True(t, recomputed)

	// Tag selection order does not matter.
	_, c1, _ := sortFixture(SortSchoolAsc, Filter{TagIDs: []string{"st1", "st2"}}, SortCache{}, 0, s)
	_, _, recomputed = sortFixture(SortSchoolAsc, Filter{TagIDs: []string{"st2", "st1"}}, c1, 0, s)
	assert.False(t, recomputed)
}

func TestSortApplications_ResortsWhenMembershipChanges(t *testing.T) {
	s := fixture()
	_, cache, _ := sortFixture(SortDeadlineAsc, Filter{}, SortCache{}, 0, s)

	s.Applications = append(s.Applications, model.Application{ID: "a4", SchoolName: "Yale", Deadline: "2024-01-01", Outcome: model.OutcomeInProgress})
	got, cache, recomputed := sortFixture(SortDeadlineAsc, Filter{}, cache, 0, s)
	assert.True(t, recomputed)
	assert.Equal(t, []string{"a4", "a3", "a1", "a2"}, got)

	s.Applications = s.Applications[:3]
	got, _, recomputed = sortFixture(SortDeadlineAsc, Filter{}, cache, 0, s)
	assert.True(t, recomputed)
	assert.Equal(t, []string{"a3", "a1", "a2"}, got)
}

func TestSortCache_NeedsResort(t *testing.T) {
	in := NewSortInputs("deadline-asc", Filter{}, 0)
	c := SortCache{Inputs: in, OrderedIDs: []string{"a", "b"}, Valid: true}

	assert.False(t, c.NeedsResort(in, []string{"b", "a"}))
	assert.True(t, c.NeedsResort(in, []string{"a"}))
	assert.True(t, c.NeedsResort(in, []string{"a", "c"}))
	assert.True(t, c.NeedsResort(in, []string{"a", "a"}))
	assert.True(t, SortCache{}.NeedsResort(in, nil))
}

func TestSortEssays_Modes(t *testing.T) {
	s := fixture()
	idx := BuildIndex(s)
	filtered := FilterEssays(s, idx, Filter{})

	out, _, _ := SortEssays(SortCache{}, NewSortInputs(string(EssaySortDeadlineAsc), Filter{}, 0), filtered, idx)
	assert.Equal(t, []string{"e3", "e1", "e2"}, ids(out))

	out, _, _ = SortEssays(SortCache{}, NewSortInputs(string(EssaySortWordsAsc), Filter{}, 0), filtered, idx)
	assert.Equal(t, []string{"e1", "e2", "e3"}, ids(out))

	out, cache, _ := SortEssays(SortCache{}, NewSortInputs(string(EssaySortWordsDesc), Filter{}, 0), filtered, idx)
	assert.Equal(t, []string{"e3", "e2", "e1"}, ids(out))

	// Typing into an essay doesn't reshuffle until refresh.
	s.Essays[1].Text = "now this essay is by far the longest one here"
	idx = BuildIndex(s)
	out, _, recomputed := SortEssays(cache, NewSortInputs(string(EssaySortWordsDesc), Filter{}, 0), FilterEssays(s, idx, Filter{}), idx)
	assert.False(t, recomputed)
	assert.Equal(t, []string{"e3", "e2", "e1"}, ids(out))
}

func TestParseSortMode(t *testing.T) {
	m, err := ParseSortMode("")
	require.NoError(t, err)
	assert.Equal(t, SortDeadlineAsc, m)

	m, err = ParseSortMode("DONENESS-DESC")
	require.NoError(t, err)
	assert.Equal(t, SortDonenessDesc, m)

	_, err = ParseSortMode("random")
	require.Error(t, err)

	em, err := ParseEssaySortMode("words-asc")
	require.NoError(t, err)
	assert.Equal(t, EssaySortWordsAsc, em)
}
