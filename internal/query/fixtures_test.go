package query

import "apptrack/internal/model"

func checklist(done ...bool) []model.ChecklistItem {
	out := make([]model.ChecklistItem, len(done))
	for i, d := range done {
		out[i] = model.ChecklistItem{ID: string(rune('a' + i)), Text: "task", Completed: d}
	}
	return out
}

func fixture() model.Snapshot {
	return model.Snapshot{
		Tags: []model.Tag{
			{ID: "st1", Name: "Reach", Color: "red", Type: model.TagTypeSchool},
			{ID: "st2", Name: "Private", Color: "violet", Type: model.TagTypeSchool},
			{ID: "t1", Name: "Why Us?", Color: "blue", Type: model.TagTypeEssay},
			{ID: "t2", Name: "Extracurricular", Color: "green", Type: model.TagTypeEssay},
		},
		Applications: []model.Application{
			{
				ID: "a1", SchoolName: "Stanford University", Deadline: "2025-01-05",
				Outcome: model.OutcomeInProgress, Notes: "Mention my research with Prof. Smith.",
				Checklist: checklist(true, true, false), TagIDs: []string{"st1", "st2"},
			},
			{
				ID: "a2", SchoolName: "Massachusetts Institute of Technology", Deadline: "2025-01-06",
				Outcome: model.OutcomeSubmitted, Checklist: []model.ChecklistItem{}, TagIDs: []string{"st1", "gone"},
			},
			{
				ID: "a3", SchoolName: "University of California, Berkeley", Deadline: "2024-11-30",
				Outcome: model.OutcomeInProgress, Checklist: checklist(false), TagIDs: []string{"st2"},
			},
		},
		Essays: []model.Essay{
			{ID: "e2", ApplicationID: "a1", Prompt: "Extracurricular activity", Text: "one two three", TagIDs: []string{"t2"}, Order: 1, Completed: true},
			{ID: "e1", ApplicationID: "a1", Prompt: "What excites you about learning?", Text: "", TagIDs: []string{"t1"}, Order: 0},
			{ID: "e3", ApplicationID: "a3", Prompt: "Describe your world", Text: "Growing up in a small town", TagIDs: []string{"t1", "gone"}, Order: 0},
		},
	}
}

func ids[T interface {
	model.Application | model.Essay
}](xs []T) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		switch v := any(x).(type) {
		case model.Application:
			out = append(out, v.ID)
		case model.Essay:
			out = append(out, v.ID)
		}
	}
	return out
}
