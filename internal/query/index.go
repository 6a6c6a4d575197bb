// Package query holds the derived views over a snapshot: the relational index,
// tag/search filtering, UI-stable sorting and progress aggregation.
// Everything here is a pure function of its inputs.
package query

import (
	"sort"

	"apptrack/internal/model"
)

// Index is the relational view of a snapshot.
type Index struct {
	// EssaysByApplication maps every application id to its essays ordered by Order.
	// Applications with no essays map to an empty (non-nil) slice.
	EssaysByApplication map[string][]model.Essay
	TagsByID            map[string]model.Tag
	ApplicationsByID    map[string]model.Application
}

func BuildIndex(s model.Snapshot) Index {
	idx := Index{
		EssaysByApplication: make(map[string][]model.Essay, len(s.Applications)),
		TagsByID:            make(map[string]model.Tag, len(s.Tags)),
		ApplicationsByID:    make(map[string]model.Application, len(s.Applications)),
	}
	for _, a := range s.Applications {
		idx.ApplicationsByID[a.ID] = a
		idx.EssaysByApplication[a.ID] = []model.Essay{}
	}
	for _, e := range s.Essays {
		idx.EssaysByApplication[e.ApplicationID] = append(idx.EssaysByApplication[e.ApplicationID], e)
	}
	for id := range idx.EssaysByApplication {
		essays := idx.EssaysByApplication[id]
		sort.SliceStable(essays, func(i, j int) bool { return essays[i].Order < essays[j].Order })
	}
	for _, t := range s.Tags {
		idx.TagsByID[t.ID] = t
	}
	return idx
}

// EssaysFor returns the ordered essays of an application (never nil).
func (idx Index) EssaysFor(applicationID string) []model.Essay {
	if xs, ok := idx.EssaysByApplication[applicationID]; ok {
		return xs
	}
	return []model.Essay{}
}

// ResolveTags maps ids to live tags, silently dropping ids of deleted tags.
func (idx Index) ResolveTags(ids []string) []model.Tag {
	out := make([]model.Tag, 0, len(ids))
	for _, id := range ids {
		if t, ok := idx.TagsByID[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// TagsOfType returns the live tags of one type ordered by name.
func TagsOfType(tags []model.Tag, typ model.TagType) []model.Tag {
	out := []model.Tag{}
	for _, t := range tags {
		if t.Type == typ {
			out = append(out, t)
		}
	}
	c := newCollator()
	sort.SliceStable(out, func(i, j int) bool { return c.CompareString(out[i].Name, out[j].Name) < 0 })
	return out
}
