package cli

import (
	"strings"

	"apptrack/internal/model"
	"apptrack/internal/query"
	"apptrack/internal/tracker"

	"github.com/spf13/cobra"
)

// filterFlags are shared by every command that works on the filtered view.
type filterFlags struct {
	tagIDs []string
	search string
	sort   string
}

func (f *filterFlags) register(cmd *cobra.Command, sortHelp string) {
	cmd.Flags().StringSliceVar(&f.tagIDs, "tag", nil, "Filter by tag id (repeatable; school tags AND, essay tags OR)")
	cmd.Flags().StringVar(&f.search, "search", "", "Search terms separated by ';' (all must match)")
	cmd.Flags().StringVar(&f.sort, "sort", "", sortHelp)
}

func (f filterFlags) filter() query.Filter {
	return query.Filter{TagIDs: f.tagIDs, Search: strings.TrimSpace(f.search)}
}

func (f filterFlags) applicationSort(app *App) (query.SortMode, error) {
	s := f.sort
	if s == "" {
		s = app.cfg.View.Sort
	}
	return query.ParseSortMode(s)
}

func (f filterFlags) essaySort(app *App) (query.EssaySortMode, error) {
	s := f.sort
	if s == "" {
		s = app.cfg.View.EssaySort
	}
	return query.ParseEssaySortMode(s)
}

type applicationView struct {
	model.Application
	Tags []model.Tag `json:"tags"`
	// Completion is a percentage, or null when the application has no tasks.
	Completion *float64       `json:"completion"`
	Progress   query.Progress `json:"progress"`
	Essays     []essayView    `json:"essays,omitempty"`
}

type essayView struct {
	model.Essay
	Tags       []model.Tag `json:"tags"`
	WordCount  int         `json:"wordCount"`
	SchoolName string      `json:"schoolName,omitempty"`
}

func newApplicationView(t *tracker.Tracker, a model.Application, withEssays bool) applicationView {
	v := applicationView{Application: a, Tags: t.ResolveTags(a.TagIDs)}
	if p, ok := t.Completion(a.ID); ok {
		v.Progress = p
		if pct, ok := p.Percent(); ok {
			v.Completion = &pct
		}
	}
	if withEssays {
		for _, e := range t.EssaysForApplication(a.ID) {
			v.Essays = append(v.Essays, newEssayView(t, e, ""))
		}
	}
	return v
}

func newEssayView(t *tracker.Tracker, e model.Essay, schoolName string) essayView {
	return essayView{
		Essay:      e,
		Tags:       t.ResolveTags(e.TagIDs),
		WordCount:  model.WordCount(e.Text),
		SchoolName: schoolName,
	}
}
