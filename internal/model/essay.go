package model

import (
	"strings"
	"time"
)

// EssayVersion is an immutable snapshot of essay text.
type EssayVersion struct {
	Text      string    `json:"text" yaml:"text"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

type Essay struct {
	ID            string   `json:"id" yaml:"id" validate:"required"`
	ApplicationID string   `json:"applicationId" yaml:"applicationId" validate:"required"`
	Prompt        string   `json:"prompt" yaml:"prompt"`
	Text          string   `json:"text" yaml:"text"`
	TagIDs        []string `json:"tagIds" yaml:"tagIds"`
	Order         int      `json:"order" yaml:"order" validate:"gte=0"`
	// History is newest-first.
	History   []EssayVersion `json:"history" yaml:"history"`
	Completed bool           `json:"completed" yaml:"completed"`
}

func (e Essay) HasTag(id string) bool {
	return containsID(e.TagIDs, id)
}

func (e Essay) Clone() Essay {
	out := e
	out.TagIDs = append([]string{}, e.TagIDs...)
	out.History = append([]EssayVersion{}, e.History...)
	return out
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
