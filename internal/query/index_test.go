package query

import (
	"testing"

	"apptrack/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndex_GroupsAndOrdersEssays(t *testing.T) {
	idx := BuildIndex(fixture())

	assert.Equal(t, []string{"e1", "e2"}, ids(idx.EssaysFor("a1")))
	assert.Equal(t, []string{"e3"}, ids(idx.EssaysFor("a3")))

	// An application with no essays has an empty list, not a missing key.
	xs, ok := idx.EssaysByApplication["a2"]
	require.True(t, ok)
	assert.NotNil(t, xs)
	assert.Empty(t, xs)

	assert.NotNil(t, idx.EssaysFor("unknown"))
	assert.Len(t, idx.TagsByID, 4)
}

func TestResolveTags_DropsDeletedTags(t *testing.T) {
	idx := BuildIndex(fixture())
	got := idx.ResolveTags([]string{"st1", "gone", "t1"})
	require.Len(t, got, 2)
	assert.Equal(t, "Reach", got[0].Name)
	assert.Equal(t, "Why Us?", got[1].Name)
}

func TestTagsOfType_SortedByName(t *testing.T) {
	got := TagsOfType(fixture().Tags, model.TagTypeSchool)
	require.Len(t, got, 2)
	assert.Equal(t, "Private", got[0].Name)
	assert.Equal(t, "Reach", got[1].Name)
}
