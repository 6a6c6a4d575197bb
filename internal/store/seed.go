package store

import (
	"apptrack/internal/model"

	"github.com/google/uuid"
)

// Seed returns the starter dataset shown before anything has been saved.
// Checklist item ids are fresh on every call.
func Seed() model.Snapshot {
	tags := []model.Tag{
		{ID: "t1", Name: "Why Us?", Color: "blue", Type: model.TagTypeEssay},
		{ID: "t2", Name: "Extracurricular", Color: "green", Type: model.TagTypeEssay},
		{ID: "t3", Name: "Personal Statement", Color: "purple", Type: model.TagTypeEssay},
		{ID: "t4", Name: "Community", Color: "orange", Type: model.TagTypeEssay},
		{ID: "st1", Name: "Reach", Color: "red", Type: model.TagTypeSchool},
		{ID: "st2", Name: "Target", Color: "amber", Type: model.TagTypeSchool},
		{ID: "st3", Name: "Safety", Color: "emerald", Type: model.TagTypeSchool},
		{ID: "st4", Name: "Public", Color: "sky", Type: model.TagTypeSchool},
		{ID: "st5", Name: "Private", Color: "violet", Type: model.TagTypeSchool},
	}
	apps := []model.Application{
		{
			ID:         "a1",
			SchoolName: "Stanford University",
			Deadline:   "2025-01-05",
			Outcome:    model.OutcomeInProgress,
			Notes:      "Remember to mention my research with Prof. Smith.",
			Checklist:  defaultChecklist(),
			TagIDs:     []string{"st1", "st5"},
		},
		{
			ID:         "a2",
			SchoolName: "Massachusetts Institute of Technology (MIT)",
			Deadline:   "2025-01-06",
			Outcome:    model.OutcomeInProgress,
			Checklist:  defaultChecklist(),
			TagIDs:     []string{"st1", "st5"},
		},
		{
			ID:         "a3",
			SchoolName: "University of California, Berkeley",
			Deadline:   "2024-11-30",
			Outcome:    model.OutcomeSubmitted,
			Notes:      "Submitted on Nov 28th. Included the optional arts supplement.",
			Checklist:  defaultChecklist(),
			TagIDs:     []string{"st2", "st4"},
		},
	}
	essays := []model.Essay{
		{
			ID:            "e1",
			ApplicationID: "a1",
			Prompt:        "The Stanford community is deeply curious and driven to learn in and out of the classroom. Reflect on an idea or experience that makes you genuinely excited about learning.",
			TagIDs:        []string{"t3"},
			Order:         0,
			History:       []model.EssayVersion{},
		},
		{
			ID:            "e2",
			ApplicationID: "a1",
			Prompt:        "Briefly elaborate on one of your extracurricular activities or work experiences.",
			TagIDs:        []string{"t2"},
			Order:         1,
			History:       []model.EssayVersion{},
		},
		{
			ID:            "e3",
			ApplicationID: "a2",
			Prompt:        "Describe the world you come from; for example, your family, clubs, school, community, city, or town. How has that world shaped your dreams and aspirations?",
			Text:          "Growing up in a small town...",
			TagIDs:        []string{"t4"},
			Order:         0,
			History:       []model.EssayVersion{},
		},
	}
	return model.Snapshot{Applications: apps, Essays: essays, Tags: tags}
}

func defaultChecklist() []model.ChecklistItem {
	out := make([]model.ChecklistItem, 0, len(model.DefaultChecklistTexts))
	for _, text := range model.DefaultChecklistTexts {
		out = append(out, model.ChecklistItem{ID: uuid.NewString(), Text: text})
	}
	return out
}
