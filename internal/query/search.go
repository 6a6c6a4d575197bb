package query

import (
	"strings"

	"apptrack/internal/model"
)

// ParseSearchTerms splits a query on ';', trims and lowercases each segment,
// and drops empty segments.
func ParseSearchTerms(q string) []string {
	var out []string
	for _, seg := range strings.Split(q, ";") {
		seg = strings.ToLower(strings.TrimSpace(seg))
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// matchesAllTerms ANDs terms; no terms means everything passes.
func matchesAllTerms(terms []string, match func(term string) bool) bool {
	for _, term := range terms {
		if !match(term) {
			return false
		}
	}
	return true
}

func contains(field, term string) bool {
	return strings.Contains(strings.ToLower(field), term)
}

func anyTagContains(ids []string, idx Index, term string) bool {
	for _, t := range idx.ResolveTags(ids) {
		if contains(t.Name, term) {
			return true
		}
	}
	return false
}

func applicationContains(a model.Application, essays []model.Essay, idx Index, term string) bool {
	if contains(a.SchoolName, term) || contains(a.Notes, term) || contains(string(a.Outcome), term) {
		return true
	}
	if anyTagContains(a.TagIDs, idx, term) {
		return true
	}
	for _, e := range essays {
		if contains(e.Prompt, term) || contains(e.Text, term) || anyTagContains(e.TagIDs, idx, term) {
			return true
		}
	}
	return false
}

func essayContains(e model.Essay, parent model.Application, idx Index, term string) bool {
	return contains(e.Prompt, term) ||
		contains(e.Text, term) ||
		anyTagContains(e.TagIDs, idx, term) ||
		contains(parent.SchoolName, term)
}
