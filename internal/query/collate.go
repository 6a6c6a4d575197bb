package query

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newCollator returns a locale-aware string comparator.
// Collators are not safe for concurrent use, so callers create one per sort.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}
