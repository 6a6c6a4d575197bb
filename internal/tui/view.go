package tui

import (
	"fmt"
	"strings"

	"apptrack/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	width := m.width
	if width <= 0 {
		width = 100
	}
	leftW := width * 45 / 100
	rightW := width - leftW

	var b strings.Builder
	b.WriteString(m.header(width))
	b.WriteString("\n")
	if m.mode == modeSearch || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	left := paneStyle.Width(leftW).Render(m.listView(leftW - 2))
	var right string
	if m.mode == modeTags {
		right = m.tagPickerView(rightW - 2)
	} else {
		right = m.detailView(rightW - 2)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, paneStyle.Width(rightW).Render(right)))
	b.WriteString("\n\n")
	b.WriteString(m.progressLine())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m appModel) header(width int) string {
	parts := []string{titleStyle.Render("apptrack"), mutedStyle.Render("sort: " + string(m.sortMode()))}
	if len(m.tagIDs) > 0 {
		parts = append(parts, "filter: "+tagChips(m.t.ResolveTags(m.tagIDs)))
	}
	return truncate(strings.Join(parts, "  "), width)
}

func (m appModel) listView(width int) string {
	if len(m.apps) == 0 {
		return mutedStyle.Render("No applications match.")
	}
	tags := m.t.TagsByID()
	lines := make([]string, 0, len(m.apps))
	for i, a := range m.apps {
		p, _ := m.t.Completion(a.ID)
		row := fmt.Sprintf("%s  %s  %s", a.Deadline, percentLabel(p), a.SchoolName)
		var chips []model.Tag
		for _, id := range a.TagIDs {
			if t, ok := tags[id]; ok {
				chips = append(chips, t)
			}
		}
		if len(chips) > 0 {
			row += "  " + tagChips(chips)
		}
		row = truncate(row, width)
		if i == m.cursor && m.focus == focusList {
			row = selectedStyle.Render(row)
		}
		lines = append(lines, row)
	}
	return strings.Join(lines, "\n")
}

func (m appModel) detailView(width int) string {
	a, ok := m.selected()
	if !ok {
		return mutedStyle.Render("No application selected.")
	}
	var lines []string
	add := func(s string) { lines = append(lines, truncate(s, width)) }

	add(titleStyle.Render(a.SchoolName))
	add(fmt.Sprintf("Deadline %s · %s", a.Deadline, a.Outcome))
	if chips := tagChips(m.t.ResolveTags(a.TagIDs)); chips != "" {
		add(chips)
	}
	add("")

	row := 0
	mark := func(done bool, label string) {
		box := "[ ]"
		if done {
			box = doneStyle.Render("[x]")
		}
		s := truncate(box+" "+label, width)
		if m.focus == focusDetail && row == m.detailCursor {
			s = selectedStyle.Render(s)
		}
		lines = append(lines, s)
		row++
	}

	add(mutedStyle.Render("Checklist"))
	if len(a.Checklist) == 0 {
		add(mutedStyle.Render("(No tasks)"))
	}
	for _, it := range a.Checklist {
		mark(it.Completed, it.Text)
	}
	add("")
	add(mutedStyle.Render("Essays"))
	essays := m.t.EssaysForApplication(a.ID)
	if len(essays) == 0 {
		add(mutedStyle.Render("(No essays)"))
	}
	for _, e := range essays {
		label := fmt.Sprintf("%s (%d words)", e.Prompt, model.WordCount(e.Text))
		if chips := tagChips(m.t.ResolveTags(e.TagIDs)); chips != "" {
			label += " " + chips
		}
		mark(e.Completed, label)
	}
	add("")
	if m.mode == modeNotes {
		add(m.notes.View())
	} else if a.Notes != "" {
		add(mutedStyle.Render("Notes: ") + a.Notes)
	}
	return strings.Join(lines, "\n")
}

func (m appModel) tagPickerView(width int) string {
	lines := []string{titleStyle.Render("Filter by tag"), mutedStyle.Render("school tags AND, essay tags OR"), ""}
	for i, t := range m.allTags() {
		box := "[ ]"
		if m.tagSelected(t.ID) {
			box = "[x]"
		}
		s := truncate(fmt.Sprintf("%s %s %s", box, tagChip(t), mutedStyle.Render(string(t.Type))), width)
		if i == m.tagCursor {
			s = selectedStyle.Render(s)
		}
		lines = append(lines, s)
	}
	return strings.Join(lines, "\n")
}

// progressLine summarizes the visible applications.
func (m appModel) progressLine() string {
	s := m.t.ProgressSummary(m.apps)
	return fmt.Sprintf("Submitted %d/%d %s   Essays %d/%d %s",
		s.SubmittedApplications, s.TotalApplications, progressBar(s.SubmittedApplications, s.TotalApplications, 12),
		s.CompletedEssays, s.TotalEssays, progressBar(s.CompletedEssays, s.TotalEssays, 12))
}
