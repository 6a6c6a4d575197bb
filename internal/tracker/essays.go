package tracker

import (
	"fmt"
	"sort"
	"strings"

	"apptrack/internal/model"
)

type NewEssay struct {
	ApplicationID string
	Prompt        string
	Text          string
	TagIDs        []string
}

// AddEssay appends an essay to the end of its application's list.
func (t *Tracker) AddEssay(in NewEssay) (model.Essay, error) {
	e := model.Essay{
		ID:            t.newID(),
		ApplicationID: in.ApplicationID,
		Prompt:        strings.TrimSpace(in.Prompt),
		Text:          in.Text,
		TagIDs:        uniqueIDs(in.TagIDs),
		History:       []model.EssayVersion{},
	}
	_, err := t.mutate("addEssay", func(s *model.Snapshot) (bool, error) {
		if findApplication(s, e.ApplicationID) < 0 {
			return false, NotFoundError{Kind: "application", ID: e.ApplicationID}
		}
		if err := checkTagTypes(s, e.TagIDs, model.TagTypeEssay); err != nil {
			return false, err
		}
		e.Order = len(siblings(s, e.ApplicationID))
		if err := model.Validate(e); err != nil {
			return false, err
		}
		s.Essays = append(s.Essays, e)
		return true, nil
	})
	if err != nil {
		return model.Essay{}, err
	}
	return e.Clone(), nil
}

// UpdateEssay writes prompt, text, tags and completion. The essay's application,
// order and history are owned by the tracker and keep their stored values.
func (t *Tracker) UpdateEssay(e model.Essay) (bool, error) {
	return t.mutate("updateEssay", func(s *model.Snapshot) (bool, error) {
		i := findEssay(s, e.ID)
		if i < 0 {
			return false, nil
		}
		cur := &s.Essays[i]
		ids := uniqueIDs(e.TagIDs)
		if err := checkTagTypes(s, ids, model.TagTypeEssay); err != nil {
			return false, err
		}
		prompt := strings.TrimSpace(e.Prompt)
		if cur.Prompt == prompt && cur.Text == e.Text && cur.Completed == e.Completed && sameIDs(cur.TagIDs, ids) {
			return false, nil
		}
		cur.Prompt = prompt
		cur.Text = e.Text
		cur.Completed = e.Completed
		cur.TagIDs = ids
		return true, nil
	})
}

// SetEssayText writes essay text immediately. EditEssayText is the debounced variant.
func (t *Tracker) SetEssayText(id, text string) (bool, error) {
	return t.mutate("setEssayText", func(s *model.Snapshot) (bool, error) {
		i := findEssay(s, id)
		if i < 0 || s.Essays[i].Text == text {
			return false, nil
		}
		s.Essays[i].Text = text
		return true, nil
	})
}

func (t *Tracker) ToggleEssayComplete(id string) (bool, error) {
	return t.mutate("toggleEssayComplete", func(s *model.Snapshot) (bool, error) {
		i := findEssay(s, id)
		if i < 0 {
			return false, nil
		}
		s.Essays[i].Completed = !s.Essays[i].Completed
		return true, nil
	})
}

// ToggleEssayTag adds or removes an essay tag. Unknown ids are a no-op.
func (t *Tracker) ToggleEssayTag(essayID, tagID string) (bool, error) {
	return t.mutate("toggleEssayTag", func(s *model.Snapshot) (bool, error) {
		i := findEssay(s, essayID)
		if i < 0 || findTag(s, tagID) < 0 {
			return false, nil
		}
		if err := checkTagTypes(s, []string{tagID}, model.TagTypeEssay); err != nil {
			return false, err
		}
		e := &s.Essays[i]
		if ids, removed := removeID(e.TagIDs, tagID); removed {
			e.TagIDs = ids
		} else {
			e.TagIDs = append(e.TagIDs, tagID)
		}
		return true, nil
	})
}

// CommitEssayHistory prepends currentText to the history and makes it the live text.
// The caller passes the text because a debounced edit may not have landed yet;
// any pending edit for the essay is superseded by the commit.
func (t *Tracker) CommitEssayHistory(id, currentText string) (bool, error) {
	t.edits.Cancel(essayEditKey(id))
	now := t.now().UTC()
	return t.mutate("commitEssayHistory", func(s *model.Snapshot) (bool, error) {
		i := findEssay(s, id)
		if i < 0 {
			return false, nil
		}
		e := &s.Essays[i]
		e.History = append([]model.EssayVersion{{Text: currentText, Timestamp: now}}, e.History...)
		e.Text = currentText
		return true, nil
	})
}

// RestoreEssayVersion sets the live text to history[version]. History is unchanged.
func (t *Tracker) RestoreEssayVersion(id string, version int) (bool, error) {
	t.edits.Cancel(essayEditKey(id))
	return t.mutate("restoreEssayVersion", func(s *model.Snapshot) (bool, error) {
		i := findEssay(s, id)
		if i < 0 {
			return false, nil
		}
		e := &s.Essays[i]
		if version < 0 || version >= len(e.History) {
			return false, fmt.Errorf("essay %s has no history entry %d", id, version)
		}
		if e.Text == e.History[version].Text {
			return false, nil
		}
		e.Text = e.History[version].Text
		return true, nil
	})
}

// DeleteEssay removes an essay and closes the gap in its siblings' orders.
func (t *Tracker) DeleteEssay(id string) (bool, error) {
	t.edits.Cancel(essayEditKey(id))
	return t.mutate("deleteEssay", func(s *model.Snapshot) (bool, error) {
		i := findEssay(s, id)
		if i < 0 {
			return false, nil
		}
		appID := s.Essays[i].ApplicationID
		s.Essays = append(s.Essays[:i], s.Essays[i+1:]...)
		renumber(s, siblings(s, appID))
		return true, nil
	})
}

// ReorderEssay moves dragged into target's position within one application's list:
// dragged is removed, then reinserted at the index target held, and every sibling's
// order is reassigned. Ids outside the application's list make this a no-op.
func (t *Tracker) ReorderEssay(applicationID, draggedID, targetID string) (bool, error) {
	return t.mutate("reorderEssay", func(s *model.Snapshot) (bool, error) {
		list := siblings(s, applicationID)
		from, to := -1, -1
		for pos, i := range list {
			switch s.Essays[i].ID {
			case draggedID:
				from = pos
			case targetID:
				to = pos
			}
		}
		if from < 0 || to < 0 || from == to {
			return false, nil
		}
		moved := list[from]
		list = append(list[:from], list[from+1:]...)
		list = append(list[:to], append([]int{moved}, list[to:]...)...)
		return renumber(s, list), nil
	})
}

// siblings returns indexes into s.Essays for one application, sorted by order.
func siblings(s *model.Snapshot, applicationID string) []int {
	var out []int
	for i := range s.Essays {
		if s.Essays[i].ApplicationID == applicationID {
			out = append(out, i)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return s.Essays[out[a]].Order < s.Essays[out[b]].Order
	})
	return out
}

func renumber(s *model.Snapshot, list []int) bool {
	changed := false
	for pos, i := range list {
		if s.Essays[i].Order != pos {
			s.Essays[i].Order = pos
			changed = true
		}
	}
	return changed
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
