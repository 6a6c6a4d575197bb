package tracker

import (
	"strings"

	"apptrack/internal/model"
)

func (t *Tracker) AddTag(name string, color model.TagColor, typ model.TagType) (model.Tag, error) {
	tag := model.Tag{ID: t.newID(), Name: strings.TrimSpace(name), Color: color, Type: typ}
	if err := model.Validate(tag); err != nil {
		return model.Tag{}, err
	}
	if _, err := t.mutate("addTag", func(s *model.Snapshot) (bool, error) {
		s.Tags = append(s.Tags, tag)
		return true, nil
	}); err != nil {
		return model.Tag{}, err
	}
	return tag, nil
}

// UpdateTag renames or recolors a tag. A tag's type is fixed at creation.
func (t *Tracker) UpdateTag(id, name string, color model.TagColor) (bool, error) {
	return t.mutate("updateTag", func(s *model.Snapshot) (bool, error) {
		i := findTag(s, id)
		if i < 0 {
			return false, nil
		}
		next := s.Tags[i]
		next.Name = strings.TrimSpace(name)
		next.Color = color
		if next == s.Tags[i] {
			return false, nil
		}
		if err := model.Validate(next); err != nil {
			return false, err
		}
		s.Tags[i] = next
		return true, nil
	})
}

// DeleteTag removes the tag and strips its id from every application and essay.
func (t *Tracker) DeleteTag(id string) (bool, error) {
	return t.mutate("deleteTag", func(s *model.Snapshot) (bool, error) {
		i := findTag(s, id)
		if i < 0 {
			return false, nil
		}
		s.Tags = append(s.Tags[:i], s.Tags[i+1:]...)
		for j := range s.Applications {
			s.Applications[j].TagIDs, _ = removeID(s.Applications[j].TagIDs, id)
		}
		for j := range s.Essays {
			s.Essays[j].TagIDs, _ = removeID(s.Essays[j].TagIDs, id)
		}
		return true, nil
	})
}
