package model

import (
	"fmt"
	"strings"
)

type Outcome string

const (
	OutcomeInProgress Outcome = "In Progress"
	OutcomeSubmitted  Outcome = "Submitted"
	OutcomeAccepted   Outcome = "Accepted"
	OutcomeRejected   Outcome = "Rejected"
	OutcomeWaitlisted Outcome = "Waitlisted"
	OutcomeDeferred   Outcome = "Deferred"
	OutcomeWithdrawn  Outcome = "Withdrawn"
)

// Outcomes lists every outcome in display order.
var Outcomes = []Outcome{
	OutcomeInProgress,
	OutcomeSubmitted,
	OutcomeAccepted,
	OutcomeRejected,
	OutcomeWaitlisted,
	OutcomeDeferred,
	OutcomeWithdrawn,
}

func (o Outcome) Valid() bool {
	for _, x := range Outcomes {
		if x == o {
			return true
		}
	}
	return false
}

// ParseOutcome accepts either the label ("In Progress") or a slug ("in-progress", "in_progress").
func ParseOutcome(s string) (Outcome, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", " ", "_", " ").Replace(norm)
	for _, o := range Outcomes {
		if strings.ToLower(string(o)) == norm {
			return o, nil
		}
	}
	return "", fmt.Errorf("invalid outcome: %q", s)
}

type ChecklistItem struct {
	ID        string `json:"id" yaml:"id" validate:"required"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

type Location struct {
	City  string   `json:"city" yaml:"city"`
	State string   `json:"state" yaml:"state"`
	Lat   *float64 `json:"lat,omitempty" yaml:"lat,omitempty"`
	Lng   *float64 `json:"lng,omitempty" yaml:"lng,omitempty"`
}

type Application struct {
	ID         string          `json:"id" yaml:"id" validate:"required"`
	SchoolName string          `json:"schoolName" yaml:"schoolName" validate:"required"`
	Deadline   Date            `json:"deadline" yaml:"deadline" validate:"isodate"`
	Outcome    Outcome         `json:"outcome" yaml:"outcome" validate:"outcome"`
	Notes      string          `json:"notes" yaml:"notes"`
	Checklist  []ChecklistItem `json:"checklist" yaml:"checklist" validate:"dive"`
	TagIDs     []string        `json:"tagIds" yaml:"tagIds"`

	DecisionDate     *Date     `json:"decisionDate,omitempty" yaml:"decisionDate,omitempty" validate:"omitempty,isodate"`
	FinancialAid     *float64  `json:"financialAid,omitempty" yaml:"financialAid,omitempty" validate:"omitempty,gte=0"`
	TuitionCost      *float64  `json:"tuitionCost,omitempty" yaml:"tuitionCost,omitempty" validate:"omitempty,gte=0"`
	ResponseDeadline *Date     `json:"responseDeadline,omitempty" yaml:"responseDeadline,omitempty" validate:"omitempty,isodate"`
	Pros             []string  `json:"pros,omitempty" yaml:"pros,omitempty"`
	Cons             []string  `json:"cons,omitempty" yaml:"cons,omitempty"`
	Location         *Location `json:"location,omitempty" yaml:"location,omitempty"`
}

// HasTag reports whether id is in the application's own tag set.
func (a Application) HasTag(id string) bool {
	return containsID(a.TagIDs, id)
}

// Clone returns a deep copy so callers can't mutate tracker-owned slices.
func (a Application) Clone() Application {
	out := a
	out.Checklist = append([]ChecklistItem{}, a.Checklist...)
	out.TagIDs = append([]string{}, a.TagIDs...)
	if a.Pros != nil {
		out.Pros = append([]string{}, a.Pros...)
	}
	if a.Cons != nil {
		out.Cons = append([]string{}, a.Cons...)
	}
	if a.DecisionDate != nil {
		d := *a.DecisionDate
		out.DecisionDate = &d
	}
	if a.ResponseDeadline != nil {
		d := *a.ResponseDeadline
		out.ResponseDeadline = &d
	}
	if a.FinancialAid != nil {
		v := *a.FinancialAid
		out.FinancialAid = &v
	}
	if a.TuitionCost != nil {
		v := *a.TuitionCost
		out.TuitionCost = &v
	}
	if a.Location != nil {
		l := *a.Location
		out.Location = &l
	}
	return out
}

// DefaultChecklistTexts seeds every new application.
var DefaultChecklistTexts = []string{"Rec Letters", "Common App", "Their portal"}

func containsID(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
