package tui

import (
	"fmt"

	"apptrack/internal/query"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case reloadMsg:
		m.reload()
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeTags:
			return m.updateTags(msg)
		case modeNotes:
			return m.updateNotes(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Accept):
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
		m.search.Blur()
		m.search.SetValue("")
		m.reload()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.reload()
	return m, cmd
}

func (m appModel) updateTags(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tags := m.allTags()
	switch {
	case key.Matches(msg, m.keys.Accept), key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Tags):
		m.mode = modeBrowse
	case key.Matches(msg, m.keys.Up):
		m.tagCursor = clamp(m.tagCursor-1, len(tags))
	case key.Matches(msg, m.keys.Down):
		m.tagCursor = clamp(m.tagCursor+1, len(tags))
	case key.Matches(msg, m.keys.Toggle):
		if m.tagCursor < len(tags) {
			id := tags[m.tagCursor].ID
			next := make([]string, 0, len(m.tagIDs)+1)
			for _, x := range m.tagIDs {
				if x != id {
					next = append(next, x)
				}
			}
			if len(next) == len(m.tagIDs) {
				next = append(next, id)
			}
			m.tagIDs = next
			m.reload()
		}
	}
	return m, nil
}

func (m appModel) updateNotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a, ok := m.selected()
	if !ok {
		m.mode = modeBrowse
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Accept):
		m.mode = modeBrowse
		m.notes.Blur()
		m.t.FlushEdits()
		m.status = "notes saved"
		m.reload()
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
		m.notes.Blur()
		m.t.DiscardEdit("notes", a.ID)
		m.reload()
		return m, nil
	}
	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	m.t.EditNotes(a.ID, m.notes.Value())
	return m, tea.Batch(cmd, reloadAfter(m.debounce*2))
}

func (m appModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusList && len(m.detailRows()) > 0 {
			m.focus = focusDetail
		} else {
			m.focus = focusList
		}
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		return m, tea.Batch(m.search.Focus(), textinput.Blink)
	case key.Matches(msg, m.keys.Tags):
		m.mode = modeTags
		m.tagCursor = 0
	case key.Matches(msg, m.keys.Sort):
		m.sortIdx = (m.sortIdx + 1) % len(query.SortModes)
		m.status = "sort: " + string(m.sortMode())
		m.reload()
	case key.Matches(msg, m.keys.Refresh):
		m.t.RefreshSort()
		m.reload()
	case key.Matches(msg, m.keys.Toggle):
		m.toggle()
		m.reload()
	case key.Matches(msg, m.keys.MoveUp):
		m.moveEssay(-1)
		m.reload()
	case key.Matches(msg, m.keys.MoveDown):
		m.moveEssay(1)
		m.reload()
	case key.Matches(msg, m.keys.Outcome):
		if a, ok := m.selected(); ok {
			_, err := m.t.SetOutcome(a.ID, nextOutcome(a.Outcome))
			m.report(err)
			m.reload()
		}
	case key.Matches(msg, m.keys.Notes):
		if a, ok := m.selected(); ok {
			m.mode = modeNotes
			m.notes.SetValue(a.Notes)
			m.notes.CursorEnd()
			return m, m.notes.Focus()
		}
	case key.Matches(msg, m.keys.Commit):
		m.commit()
		m.reload()
	}
	return m, nil
}

func (m *appModel) move(delta int) {
	if m.focus == focusDetail {
		m.detailCursor = clamp(m.detailCursor+delta, len(m.detailRows()))
		return
	}
	m.cursor = clamp(m.cursor+delta, len(m.apps))
	m.detailCursor = 0
}

func (m appModel) currentRow() (detailRow, bool) {
	if m.focus != focusDetail {
		return detailRow{}, false
	}
	rows := m.detailRows()
	if m.detailCursor >= len(rows) {
		return detailRow{}, false
	}
	return rows[m.detailCursor], true
}

func (m *appModel) toggle() {
	row, ok := m.currentRow()
	if !ok {
		return
	}
	a, _ := m.selected()
	var err error
	if row.essay {
		_, err = m.t.ToggleEssayComplete(row.id)
	} else {
		_, err = m.t.ToggleChecklistTask(a.ID, row.id)
	}
	m.report(err)
}

// moveEssay swaps the selected essay with its neighbor and keeps it selected.
func (m *appModel) moveEssay(delta int) {
	row, ok := m.currentRow()
	if !ok || !row.essay {
		return
	}
	a, _ := m.selected()
	essays := m.t.EssaysForApplication(a.ID)
	pos := -1
	for i, e := range essays {
		if e.ID == row.id {
			pos = i
		}
	}
	target := pos + delta
	if pos < 0 || target < 0 || target >= len(essays) {
		return
	}
	changed, err := m.t.ReorderEssay(a.ID, row.id, essays[target].ID)
	m.report(err)
	if changed {
		m.detailCursor += delta
	}
}

func (m *appModel) commit() {
	row, ok := m.currentRow()
	if !ok || !row.essay {
		return
	}
	e, ok := m.t.Essay(row.id)
	if !ok {
		return
	}
	if _, err := m.t.CommitEssayHistory(e.ID, e.Text); err != nil {
		m.report(err)
		return
	}
	m.status = fmt.Sprintf("saved version %d of %q", len(e.History)+1, e.Prompt)
}
