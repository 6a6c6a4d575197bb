package query

import (
	"fmt"
	"sort"
	"strings"

	"apptrack/internal/model"
)

type SortMode string

const (
	SortDeadlineAsc  SortMode = "deadline-asc"
	SortSchoolAsc    SortMode = "schoolName-asc"
	SortSchoolDesc   SortMode = "schoolName-desc"
	SortDonenessAsc  SortMode = "doneness-asc"
	SortDonenessDesc SortMode = "doneness-desc"
	DefaultSortMode           = SortDeadlineAsc
	DefaultEssaySort          = EssaySortDeadlineAsc
)

var SortModes = []SortMode{SortDeadlineAsc, SortSchoolAsc, SortSchoolDesc, SortDonenessAsc, SortDonenessDesc}

type EssaySortMode string

const (
	EssaySortDeadlineAsc EssaySortMode = "deadline-asc"
	EssaySortWordsAsc    EssaySortMode = "words-asc"
	EssaySortWordsDesc   EssaySortMode = "words-desc"
)

var EssaySortModes = []EssaySortMode{EssaySortDeadlineAsc, EssaySortWordsAsc, EssaySortWordsDesc}

func ParseSortMode(s string) (SortMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultSortMode, nil
	}
	for _, m := range SortModes {
		if strings.EqualFold(string(m), s) {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid sort mode: %q", s)
}

func ParseEssaySortMode(s string) (EssaySortMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultEssaySort, nil
	}
	for _, m := range EssaySortModes {
		if strings.EqualFold(string(m), s) {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid essay sort mode: %q", s)
}

// SortInputs are the sort-relevant inputs: a change in any of them forces a re-sort.
type SortInputs struct {
	Mode    string   `json:"mode"`
	TagIDs  []string `json:"tagIds,omitempty"`
	Search  string   `json:"search,omitempty"`
	Refresh int      `json:"refresh"`
}

// NewSortInputs captures inputs with the tag selection in canonical (sorted, unique) form
// so that selecting the same tags in a different order is not a change.
func NewSortInputs(mode string, f Filter, refresh int) SortInputs {
	seen := map[string]bool{}
	var ids []string
	for _, id := range f.TagIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return SortInputs{Mode: mode, TagIDs: ids, Search: f.Search, Refresh: refresh}
}

func (in SortInputs) Equal(o SortInputs) bool {
	if in.Mode != o.Mode || in.Search != o.Search || in.Refresh != o.Refresh || len(in.TagIDs) != len(o.TagIDs) {
		return false
	}
	for i := range in.TagIDs {
		if in.TagIDs[i] != o.TagIDs[i] {
			return false
		}
	}
	return true
}

// SortCache remembers the last computed order and the inputs it was computed from.
// The zero value forces a sort on first use.
type SortCache struct {
	Inputs     SortInputs `json:"inputs"`
	OrderedIDs []string   `json:"orderedIds"`
	Valid      bool       `json:"valid"`
}

// NeedsResort reports whether the cached order can't be reused: the inputs changed,
// or an id entered or left the result set.
func (c SortCache) NeedsResort(in SortInputs, currentIDs []string) bool {
	if !c.Valid || !c.Inputs.Equal(in) {
		return true
	}
	return !sameIDSet(c.OrderedIDs, currentIDs)
}

func sameIDSet(prev, cur []string) bool {
	if len(prev) != len(cur) {
		return false
	}
	set := make(map[string]bool, len(cur))
	for _, id := range cur {
		set[id] = true
	}
	if len(set) != len(prev) {
		return false
	}
	for _, id := range prev {
		if !set[id] {
			return false
		}
	}
	return true
}

// StableOrder returns the id order to render. When no re-sort is needed the previous
// order is reused verbatim; otherwise recompute is called and its result cached.
func StableOrder(c SortCache, in SortInputs, currentIDs []string, recompute func() []string) ([]string, SortCache, bool) {
	if !c.NeedsResort(in, currentIDs) {
		return c.OrderedIDs, c, false
	}
	ordered := recompute()
	return ordered, SortCache{Inputs: in, OrderedIDs: ordered, Valid: true}, true
}

// SortApplications orders a filtered application set, reusing the cached order when possible.
// Returned applications always carry their current field values.
func SortApplications(c SortCache, in SortInputs, filtered []model.Application, idx Index) ([]model.Application, SortCache, bool) {
	ids := make([]string, len(filtered))
	byID := make(map[string]model.Application, len(filtered))
	for i, a := range filtered {
		ids[i] = a.ID
		byID[a.ID] = a
	}
	ordered, next, recomputed := StableOrder(c, in, ids, func() []string {
		sorted := append([]model.Application{}, filtered...)
		sortApplications(sorted, SortMode(in.Mode), idx)
		out := make([]string, len(sorted))
		for i, a := range sorted {
			out[i] = a.ID
		}
		return out
	})
	out := make([]model.Application, 0, len(ordered))
	for _, id := range ordered {
		if a, ok := byID[id]; ok {
			out = append(out, a)
		}
	}
	return out, next, recomputed
}

// SortEssays is the essay-view counterpart of SortApplications.
func SortEssays(c SortCache, in SortInputs, filtered []model.Essay, idx Index) ([]model.Essay, SortCache, bool) {
	ids := make([]string, len(filtered))
	byID := make(map[string]model.Essay, len(filtered))
	for i, e := range filtered {
		ids[i] = e.ID
		byID[e.ID] = e
	}
	ordered, next, recomputed := StableOrder(c, in, ids, func() []string {
		sorted := append([]model.Essay{}, filtered...)
		sortEssays(sorted, EssaySortMode(in.Mode), idx)
		out := make([]string, len(sorted))
		for i, e := range sorted {
			out[i] = e.ID
		}
		return out
	})
	out := make([]model.Essay, 0, len(ordered))
	for _, id := range ordered {
		if e, ok := byID[id]; ok {
			out = append(out, e)
		}
	}
	return out, next, recomputed
}
