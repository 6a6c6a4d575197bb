package tui

import (
	"fmt"
	"time"

	"apptrack/internal/model"
	"apptrack/internal/query"
	"apptrack/internal/tracker"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type focus int

const (
	focusList focus = iota
	focusDetail
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeTags
	modeNotes
)

// reloadMsg re-reads the list after a debounced edit had time to land.
type reloadMsg struct{}

type detailRow struct {
	essay bool
	id    string
}

type appModel struct {
	t        *tracker.Tracker
	keys     keyMap
	help     help.Model
	search   textinput.Model
	notes    textinput.Model
	debounce time.Duration

	mode    mode
	focus   focus
	sortIdx int
	tagIDs  []string

	apps         []model.Application
	cursor       int
	detailCursor int
	tagCursor    int

	status string
	width  int
	height int
}

func newModel(t *tracker.Tracker, opts Options) appModel {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search (separate terms with ;)"

	notes := textinput.New()
	notes.Prompt = "notes: "

	m := appModel{
		t:        t,
		keys:     defaultKeyMap(),
		help:     help.New(),
		search:   search,
		notes:    notes,
		debounce: opts.Debounce,
	}
	if m.debounce <= 0 {
		m.debounce = tracker.DefaultDebounce
	}
	for i, s := range query.SortModes {
		if s == opts.Sort {
			m.sortIdx = i
		}
	}
	m.reload()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) sortMode() query.SortMode { return query.SortModes[m.sortIdx] }

func (m appModel) filter() query.Filter {
	return query.Filter{TagIDs: m.tagIDs, Search: m.search.Value()}
}

// reload re-reads the visible list and keeps the selection on the same application.
func (m *appModel) reload() {
	selected := ""
	if a, ok := m.selected(); ok {
		selected = a.ID
	}
	m.apps = m.t.ListApplications(m.filter(), m.sortMode())
	m.cursor = clamp(m.cursor, len(m.apps))
	for i, a := range m.apps {
		if a.ID == selected {
			m.cursor = i
			break
		}
	}
	m.detailCursor = clamp(m.detailCursor, len(m.detailRows()))
}

func (m appModel) selected() (model.Application, bool) {
	if m.cursor < 0 || m.cursor >= len(m.apps) {
		return model.Application{}, false
	}
	return m.apps[m.cursor], true
}

func (m appModel) detailRows() []detailRow {
	a, ok := m.selected()
	if !ok {
		return nil
	}
	rows := make([]detailRow, 0, len(a.Checklist))
	for _, it := range a.Checklist {
		rows = append(rows, detailRow{id: it.ID})
	}
	for _, e := range m.t.EssaysForApplication(a.ID) {
		rows = append(rows, detailRow{essay: true, id: e.ID})
	}
	return rows
}

// allTags lists school tags then essay tags, each by name.
func (m appModel) allTags() []model.Tag {
	return append(m.t.Tags(model.TagTypeSchool), m.t.Tags(model.TagTypeEssay)...)
}

func (m appModel) tagSelected(id string) bool {
	for _, x := range m.tagIDs {
		if x == id {
			return true
		}
	}
	return false
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (m *appModel) report(err error) {
	if err != nil {
		m.status = err.Error()
	}
}

func reloadAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return reloadMsg{} })
}

func nextOutcome(o model.Outcome) model.Outcome {
	for i, x := range model.Outcomes {
		if x == o {
			return model.Outcomes[(i+1)%len(model.Outcomes)]
		}
	}
	return model.OutcomeInProgress
}

func percentLabel(p query.Progress) string {
	pct, ok := p.Percent()
	if !ok {
		return "   -"
	}
	return fmt.Sprintf("%3.0f%%", pct)
}
