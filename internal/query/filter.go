package query

import "apptrack/internal/model"

// Filter narrows the visible set. Tag and search filters are ANDed.
type Filter struct {
	TagIDs []string `json:"tagIds,omitempty"`
	Search string   `json:"search,omitempty"`
}

// tagSelection is a tag-id selection partitioned by the tags' own type.
type tagSelection struct {
	school []string
	essay  []string
}

// partition splits selected ids by Tag.Type. Ids of deleted tags are ignored.
func partition(ids []string, idx Index) tagSelection {
	var sel tagSelection
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		t, ok := idx.TagsByID[id]
		if !ok {
			continue
		}
		switch t.Type {
		case model.TagTypeSchool:
			sel.school = append(sel.school, id)
		case model.TagTypeEssay:
			sel.essay = append(sel.essay, id)
		}
	}
	return sel
}

// schoolMatch: the application holds every selected school tag.
func (sel tagSelection) schoolMatch(a model.Application) bool {
	for _, id := range sel.school {
		if !a.HasTag(id) {
			return false
		}
	}
	return true
}

// essayMatch: the essay holds any selected essay tag (vacuously true with none selected).
func (sel tagSelection) essayMatch(e model.Essay) bool {
	if len(sel.essay) == 0 {
		return true
	}
	for _, id := range sel.essay {
		if e.HasTag(id) {
			return true
		}
	}
	return false
}

func (sel tagSelection) applicationMatch(a model.Application, essays []model.Essay) bool {
	if !sel.schoolMatch(a) {
		return false
	}
	if len(sel.essay) == 0 {
		return true
	}
	for _, e := range essays {
		if sel.essayMatch(e) {
			return true
		}
	}
	return false
}

// FilterApplications returns the applications passing f, in collection order.
func FilterApplications(s model.Snapshot, idx Index, f Filter) []model.Application {
	sel := partition(f.TagIDs, idx)
	terms := ParseSearchTerms(f.Search)

	out := make([]model.Application, 0, len(s.Applications))
	for _, a := range s.Applications {
		essays := idx.EssaysFor(a.ID)
		if !sel.applicationMatch(a, essays) {
			continue
		}
		if !matchesAllTerms(terms, func(term string) bool { return applicationContains(a, essays, idx, term) }) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// FilterEssays evaluates the tag predicate per essay: the essay's own tags against the
// selected essay tags, and its parent application against the selected school tags.
// Essays whose parent application no longer exists are skipped.
func FilterEssays(s model.Snapshot, idx Index, f Filter) []model.Essay {
	sel := partition(f.TagIDs, idx)
	terms := ParseSearchTerms(f.Search)

	out := make([]model.Essay, 0, len(s.Essays))
	for _, e := range s.Essays {
		parent, ok := idx.ApplicationsByID[e.ApplicationID]
		if !ok {
			continue
		}
		if !sel.essayMatch(e) || !sel.schoolMatch(parent) {
			continue
		}
		if !matchesAllTerms(terms, func(term string) bool { return essayContains(e, parent, idx, term) }) {
			continue
		}
		out = append(out, e)
	}
	return out
}
