package tracker

import "fmt"

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// TagTypeError is returned when a tag of one type is attached to the other entity kind.
type TagTypeError struct {
	TagID string
	Want  string
	Got   string
}

func (e TagTypeError) Error() string {
	return fmt.Sprintf("tag %s is a %s tag, want %s", e.TagID, e.Got, e.Want)
}
