package tracker

import (
	"fmt"
	"reflect"
	"strings"

	"apptrack/internal/model"
)

// NewApplication carries the user-supplied fields of a new application.
type NewApplication struct {
	SchoolName string
	Deadline   model.Date
	Outcome    model.Outcome
	Notes      string
	TagIDs     []string

	DecisionDate     *model.Date
	FinancialAid     *float64
	TuitionCost      *float64
	ResponseDeadline *model.Date
	Pros             []string
	Cons             []string
	Location         *model.Location
}

// AddApplication creates an application with the default checklist.
func (t *Tracker) AddApplication(in NewApplication) (model.Application, error) {
	outcome := in.Outcome
	if outcome == "" {
		outcome = model.OutcomeInProgress
	}
	a := model.Application{
		ID:               t.newID(),
		SchoolName:       strings.TrimSpace(in.SchoolName),
		Deadline:         in.Deadline,
		Outcome:          outcome,
		Notes:            in.Notes,
		Checklist:        make([]model.ChecklistItem, 0, len(model.DefaultChecklistTexts)),
		TagIDs:           uniqueIDs(in.TagIDs),
		DecisionDate:     in.DecisionDate,
		FinancialAid:     in.FinancialAid,
		TuitionCost:      in.TuitionCost,
		ResponseDeadline: in.ResponseDeadline,
		Pros:             in.Pros,
		Cons:             in.Cons,
		Location:         in.Location,
	}
	for _, text := range model.DefaultChecklistTexts {
		a.Checklist = append(a.Checklist, model.ChecklistItem{ID: t.newID(), Text: text})
	}
	if err := model.Validate(a); err != nil {
		return model.Application{}, err
	}

	_, err := t.mutate("addApplication", func(s *model.Snapshot) (bool, error) {
		if err := checkTagTypes(s, a.TagIDs, model.TagTypeSchool); err != nil {
			return false, err
		}
		s.Applications = append(s.Applications, a)
		return true, nil
	})
	if err != nil {
		return model.Application{}, err
	}
	return a.Clone(), nil
}

// UpdateApplication replaces the stored application with the same id.
// Unknown ids are a no-op.
func (t *Tracker) UpdateApplication(a model.Application) (bool, error) {
	next := a.Clone()
	next.SchoolName = strings.TrimSpace(next.SchoolName)
	next.TagIDs = uniqueIDs(next.TagIDs)
	if next.Checklist == nil {
		next.Checklist = []model.ChecklistItem{}
	}
	if err := model.Validate(next); err != nil {
		return false, err
	}
	return t.mutate("updateApplication", func(s *model.Snapshot) (bool, error) {
		i := findApplication(s, next.ID)
		if i < 0 {
			return false, nil
		}
		if err := checkTagTypes(s, next.TagIDs, model.TagTypeSchool); err != nil {
			return false, err
		}
		if reflect.DeepEqual(s.Applications[i], next) {
			return false, nil
		}
		s.Applications[i] = next
		return true, nil
	})
}

// DeleteApplication removes the application and every essay it owns.
func (t *Tracker) DeleteApplication(id string) (bool, error) {
	return t.mutate("deleteApplication", func(s *model.Snapshot) (bool, error) {
		i := findApplication(s, id)
		if i < 0 {
			return false, nil
		}
		s.Applications = append(s.Applications[:i], s.Applications[i+1:]...)
		kept := s.Essays[:0]
		for _, e := range s.Essays {
			if e.ApplicationID != id {
				kept = append(kept, e)
			}
		}
		s.Essays = kept
		return true, nil
	})
}

// SetNotes writes notes immediately. EditNotes is the debounced variant.
func (t *Tracker) SetNotes(applicationID, notes string) (bool, error) {
	return t.mutate("setNotes", func(s *model.Snapshot) (bool, error) {
		i := findApplication(s, applicationID)
		if i < 0 || s.Applications[i].Notes == notes {
			return false, nil
		}
		s.Applications[i].Notes = notes
		return true, nil
	})
}

// SetOutcome updates an application's outcome.
func (t *Tracker) SetOutcome(applicationID string, o model.Outcome) (bool, error) {
	if !o.Valid() {
		return false, fmt.Errorf("invalid outcome: %q", o)
	}
	return t.mutate("setOutcome", func(s *model.Snapshot) (bool, error) {
		i := findApplication(s, applicationID)
		if i < 0 || s.Applications[i].Outcome == o {
			return false, nil
		}
		s.Applications[i].Outcome = o
		return true, nil
	})
}

// ToggleApplicationTag adds or removes a school tag. Unknown ids are a no-op.
func (t *Tracker) ToggleApplicationTag(applicationID, tagID string) (bool, error) {
	return t.mutate("toggleApplicationTag", func(s *model.Snapshot) (bool, error) {
		i := findApplication(s, applicationID)
		if i < 0 || findTag(s, tagID) < 0 {
			return false, nil
		}
		if err := checkTagTypes(s, []string{tagID}, model.TagTypeSchool); err != nil {
			return false, err
		}
		a := &s.Applications[i]
		if ids, removed := removeID(a.TagIDs, tagID); removed {
			a.TagIDs = ids
		} else {
			a.TagIDs = append(a.TagIDs, tagID)
		}
		return true, nil
	})
}

// AddChecklistTask appends a task. An unknown application is a no-op.
func (t *Tracker) AddChecklistTask(applicationID, text string) (model.ChecklistItem, bool, error) {
	item := model.ChecklistItem{ID: t.newID(), Text: strings.TrimSpace(text)}
	if item.Text == "" {
		return model.ChecklistItem{}, false, &model.ValidationError{Entity: "checklist item", Fields: []string{"Text (required)"}}
	}
	changed, err := t.mutate("addChecklistTask", func(s *model.Snapshot) (bool, error) {
		i := findApplication(s, applicationID)
		if i < 0 {
			return false, nil
		}
		s.Applications[i].Checklist = append(s.Applications[i].Checklist, item)
		return true, nil
	})
	if err != nil || !changed {
		return model.ChecklistItem{}, false, err
	}
	return item, true, nil
}

func (t *Tracker) ToggleChecklistTask(applicationID, taskID string) (bool, error) {
	return t.mutate("toggleChecklistTask", func(s *model.Snapshot) (bool, error) {
		i := findApplication(s, applicationID)
		if i < 0 {
			return false, nil
		}
		for j := range s.Applications[i].Checklist {
			item := &s.Applications[i].Checklist[j]
			if item.ID == taskID {
				item.Completed = !item.Completed
				return true, nil
			}
		}
		return false, nil
	})
}

func (t *Tracker) DeleteChecklistTask(applicationID, taskID string) (bool, error) {
	return t.mutate("deleteChecklistTask", func(s *model.Snapshot) (bool, error) {
		i := findApplication(s, applicationID)
		if i < 0 {
			return false, nil
		}
		list := s.Applications[i].Checklist
		for j := range list {
			if list[j].ID == taskID {
				s.Applications[i].Checklist = append(list[:j], list[j+1:]...)
				return true, nil
			}
		}
		return false, nil
	})
}

func checkTagTypes(s *model.Snapshot, ids []string, want model.TagType) error {
	for _, id := range ids {
		i := findTag(s, id)
		if i < 0 {
			// Dangling references are tolerated and filtered at read time.
			continue
		}
		if s.Tags[i].Type != want {
			return TagTypeError{TagID: id, Want: string(want), Got: string(s.Tags[i].Type)}
		}
	}
	return nil
}
