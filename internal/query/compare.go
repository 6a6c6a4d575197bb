package query

import (
	"sort"

	"apptrack/internal/model"
)

func sortApplications(apps []model.Application, mode SortMode, idx Index) {
	switch mode {
	case SortSchoolAsc, SortSchoolDesc:
		c := newCollator()
		desc := mode == SortSchoolDesc
		sort.SliceStable(apps, func(i, j int) bool {
			if desc {
				return c.CompareString(apps[j].SchoolName, apps[i].SchoolName) < 0
			}
			return c.CompareString(apps[i].SchoolName, apps[j].SchoolName) < 0
		})
	case SortDonenessAsc, SortDonenessDesc:
		pct := make(map[string]float64, len(apps))
		none := make(map[string]bool, len(apps))
		for _, a := range apps {
			p, ok := Completion(a, idx.EssaysFor(a.ID)).Percent()
			pct[a.ID] = p
			none[a.ID] = !ok
		}
		desc := mode == SortDonenessDesc
		sort.SliceStable(apps, func(i, j int) bool {
			a, b := apps[i].ID, apps[j].ID
			// Applications without tasks go last in both directions.
			if none[a] || none[b] {
				return !none[a] && none[b]
			}
			if desc {
				return pct[a] > pct[b]
			}
			return pct[a] < pct[b]
		})
	default:
		sort.SliceStable(apps, func(i, j int) bool {
			return deadlineLess(apps[i].Deadline, apps[j].Deadline)
		})
	}
}

// deadlineLess orders by calendar date, with unparseable dates last.
func deadlineLess(a, b model.Date) bool {
	ta, oka := a.Time()
	tb, okb := b.Time()
	if !oka || !okb {
		return oka && !okb
	}
	return ta.Before(tb)
}

func sortEssays(essays []model.Essay, mode EssaySortMode, idx Index) {
	switch mode {
	case EssaySortWordsAsc, EssaySortWordsDesc:
		words := make(map[string]int, len(essays))
		for _, e := range essays {
			words[e.ID] = model.WordCount(e.Text)
		}
		desc := mode == EssaySortWordsDesc
		sort.SliceStable(essays, func(i, j int) bool {
			if desc {
				return words[essays[i].ID] > words[essays[j].ID]
			}
			return words[essays[i].ID] < words[essays[j].ID]
		})
	default:
		sort.SliceStable(essays, func(i, j int) bool {
			a, b := essays[i], essays[j]
			if a.ApplicationID != b.ApplicationID {
				da := idx.ApplicationsByID[a.ApplicationID].Deadline
				db := idx.ApplicationsByID[b.ApplicationID].Deadline
				if deadlineLess(da, db) {
					return true
				}
				if deadlineLess(db, da) {
					return false
				}
				return a.ApplicationID < b.ApplicationID
			}
			return a.Order < b.Order
		})
	}
}
