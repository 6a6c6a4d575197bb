package tracker

import (
	"time"

	"apptrack/internal/model"
	"apptrack/internal/query"
)

// SortState is the tracker's UI-stable ordering memory. It is exported so
// front ends that don't stay resident can persist it between runs.
type SortState struct {
	Refresh      int             `json:"refresh"`
	Applications query.SortCache `json:"applications"`
	Essays       query.SortCache `json:"essays"`
}

func (t *Tracker) SortState() SortState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sort
}

// RefreshSort forces the next list call of either view to recompute its order.
func (t *Tracker) RefreshSort() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sort.Refresh++
}

// ListApplications filters and orders applications. The previous order is kept
// unless the filter, the mode, the refresh counter or the result membership changed.
func (t *Tracker) ListApplications(f query.Filter, mode query.SortMode) []model.Application {
	t.mu.Lock()
	defer t.mu.Unlock()

	filtered := query.FilterApplications(t.snap, t.idx, f)
	in := query.NewSortInputs(string(mode), f, t.sort.Refresh)
	out, next, recomputed := query.SortApplications(t.sort.Applications, in, filtered, t.idx)
	t.sort.Applications = next
	t.log.Debugw("application order", "recomputed", recomputed, "count", len(out))
	return cloneApplications(out)
}

// ListEssays is the essay-centric view.
func (t *Tracker) ListEssays(f query.Filter, mode query.EssaySortMode) []model.Essay {
	t.mu.Lock()
	defer t.mu.Unlock()

	filtered := query.FilterEssays(t.snap, t.idx, f)
	in := query.NewSortInputs(string(mode), f, t.sort.Refresh)
	out, next, recomputed := query.SortEssays(t.sort.Essays, in, filtered, t.idx)
	t.sort.Essays = next
	t.log.Debugw("essay order", "recomputed", recomputed, "count", len(out))
	return cloneEssays(out)
}

// EssaysForApplication returns the application's essays in order.
func (t *Tracker) EssaysForApplication(applicationID string) []model.Essay {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneEssays(t.idx.EssaysFor(applicationID))
}

func (t *Tracker) Application(id string) (model.Application, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	a, ok := t.idx.ApplicationsByID[id]
	if !ok {
		return model.Application{}, false
	}
	return a.Clone(), true
}

func (t *Tracker) Essay(id string) (model.Essay, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.snap.Essays {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return model.Essay{}, false
}

func (t *Tracker) TagsByID() map[string]model.Tag {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]model.Tag, len(t.idx.TagsByID))
	for id, tag := range t.idx.TagsByID {
		out[id] = tag
	}
	return out
}

// Tags returns the tags of one type ordered by name.
func (t *Tracker) Tags(typ model.TagType) []model.Tag {
	t.mu.Lock()
	defer t.mu.Unlock()
	return query.TagsOfType(t.snap.Tags, typ)
}

// ResolveTags maps ids to live tags, skipping deleted ones.
func (t *Tracker) ResolveTags(ids []string) []model.Tag {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.idx.ResolveTags(ids)
}

// Completion reports checklist plus essay progress for one application.
func (t *Tracker) Completion(applicationID string) (query.Progress, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	a, ok := t.idx.ApplicationsByID[applicationID]
	if !ok {
		return query.Progress{}, false
	}
	return query.Completion(a, t.idx.EssaysFor(a.ID)), true
}

// ProgressSummary summarizes the visible applications.
func (t *Tracker) ProgressSummary(visible []model.Application) query.Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return query.Summarize(visible, t.idx)
}

func (t *Tracker) EssayProgressSummary(visible []model.Essay) query.Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return query.SummarizeEssays(visible, t.idx)
}

func (t *Tracker) Dashboard() query.Dashboard {
	t.mu.Lock()
	defer t.mu.Unlock()
	return query.BuildDashboard(t.snap, t.idx, t.now())
}

func (t *Tracker) Results() query.Results {
	t.mu.Lock()
	defer t.mu.Unlock()
	return query.BuildResults(cloneApplications(t.snap.Applications))
}

func (t *Tracker) DecisionTimeline() []model.Application {
	t.mu.Lock()
	defer t.mu.Unlock()
	return query.DecisionTimeline(cloneApplications(t.snap.Applications))
}

// Comparison lines up accepted schools side by side, in the order of ids.
func (t *Tracker) Comparison(ids []string) (query.Comparison, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return query.BuildComparison(cloneApplications(t.snap.Applications), ids)
}

// Board groups the visible applications by outcome. Moving a card between
// columns is SetOutcome.
func (t *Tracker) Board(f query.Filter, mode query.SortMode) []query.BoardColumn {
	return query.BoardColumns(t.ListApplications(f, mode))
}

// Now is the tracker's clock, exposed so views agree on "today".
func (t *Tracker) Now() time.Time {
	return t.now()
}

func cloneApplications(in []model.Application) []model.Application {
	out := make([]model.Application, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}

func cloneEssays(in []model.Essay) []model.Essay {
	out := make([]model.Essay, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}
