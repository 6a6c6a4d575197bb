package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("tagcolor", func(fl validator.FieldLevel) bool {
		return TagColor(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("tagtype", func(fl validator.FieldLevel) bool {
		t := TagType(fl.Field().String())
		return t == TagTypeSchool || t == TagTypeEssay
	})
	_ = validate.RegisterValidation("outcome", func(fl validator.FieldLevel) bool {
		return Outcome(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return Date(fl.Field().String()).Valid()
	})
}

// ValidationError lists the offending fields of a rejected entity.
type ValidationError struct {
	Entity string
	Fields []string
	err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return e.err }

// Validate checks a Tag, Application, ChecklistItem or Essay at construction time.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Entity: entityName(v), err: err}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return out
}

func entityName(v any) string {
	switch v.(type) {
	case Tag, *Tag:
		return "tag"
	case Application, *Application:
		return "application"
	case Essay, *Essay:
		return "essay"
	case ChecklistItem, *ChecklistItem:
		return "checklist item"
	default:
		return "value"
	}
}
