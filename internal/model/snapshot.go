package model

import "sort"

// Snapshot is the full persisted state: the three entity collections.
type Snapshot struct {
	Applications []Application `json:"applications" yaml:"applications"`
	Essays       []Essay       `json:"essays" yaml:"essays"`
	Tags         []Tag         `json:"tags" yaml:"tags"`
}

func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Applications: make([]Application, 0, len(s.Applications)),
		Essays:       make([]Essay, 0, len(s.Essays)),
		Tags:         append(make([]Tag, 0, len(s.Tags)), s.Tags...),
	}
	for _, a := range s.Applications {
		out.Applications = append(out.Applications, a.Clone())
	}
	for _, e := range s.Essays {
		out.Essays = append(out.Essays, e.Clone())
	}
	return out
}

// Normalize repairs a loaded or imported snapshot in place:
// nil collections become empty, duplicate tag ids are dropped,
// and essay orders are renumbered to 0..n-1 per application.
// It reports whether anything changed.
func (s *Snapshot) Normalize() bool {
	changed := false
	if s.Applications == nil {
		s.Applications = []Application{}
		changed = true
	}
	if s.Essays == nil {
		s.Essays = []Essay{}
		changed = true
	}
	if s.Tags == nil {
		s.Tags = []Tag{}
		changed = true
	}

	for i := range s.Applications {
		a := &s.Applications[i]
		if a.Checklist == nil {
			a.Checklist = []ChecklistItem{}
			changed = true
		}
		if ids, dup := dedupe(a.TagIDs); dup {
			a.TagIDs = ids
			changed = true
		}
	}

	groups := map[string][]int{}
	for i := range s.Essays {
		e := &s.Essays[i]
		if ids, dup := dedupe(e.TagIDs); dup {
			e.TagIDs = ids
			changed = true
		}
		if e.History == nil {
			e.History = []EssayVersion{}
			changed = true
		}
		groups[e.ApplicationID] = append(groups[e.ApplicationID], i)
	}
	for _, idxs := range groups {
		sort.SliceStable(idxs, func(i, j int) bool {
			return s.Essays[idxs[i]].Order < s.Essays[idxs[j]].Order
		})
		for pos, idx := range idxs {
			if s.Essays[idx].Order != pos {
				s.Essays[idx].Order = pos
				changed = true
			}
		}
	}
	return changed
}

func dedupe(ids []string) ([]string, bool) {
	if ids == nil {
		return []string{}, true
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, len(out) != len(ids)
}
