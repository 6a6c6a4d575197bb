// Package export turns the current filtered and sorted view into documents.
package export

import (
	"bytes"
	"strings"

	"apptrack/internal/model"
)

// View is the read-only input of an export: the visible applications in
// display order plus the lookups needed to describe them.
type View struct {
	Applications        []model.Application
	EssaysByApplication map[string][]model.Essay
	TagsByID            map[string]model.Tag
}

// RenderMarkdown writes one section per application, separated by rules.
func RenderMarkdown(v View) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	for i, app := range v.Applications {
		if i > 0 {
			writeLn("")
			writeLn("---")
			writeLn("")
		}
		writeLn("# " + strings.TrimSpace(app.SchoolName))
		writeLn("")
		writeLn("- **Deadline:** " + FormatDate(app.Deadline))
		writeLn("- **Tags:** " + tagNames(app.TagIDs, v.TagsByID))
		writeLn("- **Status:** " + string(app.Outcome))

		writeLn("")
		writeLn("## Checklist")
		writeLn("")
		if len(app.Checklist) == 0 {
			writeLn("(No tasks)")
		}
		for _, item := range app.Checklist {
			box := "[ ]"
			if item.Completed {
				box = "[x]"
			}
			writeLn("- " + box + " " + strings.TrimSpace(item.Text))
		}

		writeLn("")
		writeLn("## Notes")
		writeLn("")
		writeLn(orPlaceholder(app.Notes, "(No notes)"))

		for _, essay := range v.EssaysByApplication[app.ID] {
			writeLn("")
			writeLn("## " + orPlaceholder(essay.Prompt, "(No prompt)"))
			writeLn("")
			writeLn(orPlaceholder(essay.Text, "(No text written)"))
			writeLn("")
			writeLn("**Essay Tags:** " + tagNames(essay.TagIDs, v.TagsByID))
		}
	}
	return buf.String()
}

// FormatDate renders a calendar date as "January 5, 2025". Unparseable dates are returned as is.
func FormatDate(d model.Date) string {
	t, ok := d.Time()
	if !ok {
		return string(d)
	}
	return t.Format("January 2, 2006")
}

func tagNames(ids []string, byID map[string]model.Tag) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			names = append(names, t.Name)
		}
	}
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, ", ")
}

func orPlaceholder(s, placeholder string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return placeholder
	}
	return s
}
