package model

import (
	"fmt"
	"strings"
)

type TagType string

const (
	TagTypeSchool TagType = "school"
	TagTypeEssay  TagType = "essay"
)

func ParseTagType(s string) (TagType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "school":
		return TagTypeSchool, nil
	case "essay":
		return TagTypeEssay, nil
	default:
		return "", fmt.Errorf("invalid tag type: %q (expected school|essay)", s)
	}
}

type TagColor string

// TagColors is the fixed palette a tag color must come from.
var TagColors = []TagColor{
	"rose", "pink", "fuchsia", "purple", "violet", "indigo", "blue", "sky",
	"cyan", "teal", "emerald", "green", "lime", "yellow", "amber", "orange", "red",
}

func (c TagColor) Valid() bool {
	for _, p := range TagColors {
		if p == c {
			return true
		}
	}
	return false
}

func ParseTagColor(s string) (TagColor, error) {
	c := TagColor(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid tag color: %q", s)
	}
	return c, nil
}

type Tag struct {
	ID    string   `json:"id" yaml:"id" validate:"required"`
	Name  string   `json:"name" yaml:"name" validate:"required,max=80"`
	Color TagColor `json:"color" yaml:"color" validate:"tagcolor"`
	Type  TagType  `json:"type" yaml:"type" validate:"tagtype"`
}
