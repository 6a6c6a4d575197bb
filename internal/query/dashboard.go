package query

import (
	"sort"
	"time"

	"apptrack/internal/model"
)

type DashboardStats struct {
	TotalApplications     int `json:"totalApplications"`
	SubmittedApplications int `json:"submittedApplications"`
	TotalEssays           int `json:"totalEssays"`
	CompletedEssays       int `json:"completedEssays"`
}

type UpcomingDeadline struct {
	Application   model.Application `json:"application"`
	DaysRemaining int               `json:"daysRemaining"`
}

type OutcomeCount struct {
	Outcome model.Outcome `json:"outcome"`
	Count   int           `json:"count"`
}

type TagProgress struct {
	Tag       model.Tag `json:"tag"`
	Completed int       `json:"completed"`
	Total     int       `json:"total"`
}

type Dashboard struct {
	Stats       DashboardStats     `json:"stats"`
	Upcoming    []UpcomingDeadline `json:"upcoming"`
	Outcomes    []OutcomeCount     `json:"outcomes"`
	EssayTags   []TagProgress      `json:"essayTags"`
	GeneratedOn model.Date         `json:"generatedOn"`
}

// BuildDashboard summarizes the whole snapshot. Unlike Summarize, withdrawn
// applications are not counted as submitted here.
func BuildDashboard(s model.Snapshot, idx Index, now time.Time) Dashboard {
	d := Dashboard{
		Upcoming:    []UpcomingDeadline{},
		Outcomes:    make([]OutcomeCount, 0, len(model.Outcomes)),
		EssayTags:   []TagProgress{},
		GeneratedOn: model.NewDate(now),
	}

	counts := map[model.Outcome]int{}
	for _, a := range s.Applications {
		d.Stats.TotalApplications++
		counts[a.Outcome]++
		if a.Outcome != model.OutcomeInProgress && a.Outcome != model.OutcomeWithdrawn {
			d.Stats.SubmittedApplications++
		}
		if a.Outcome == model.OutcomeWithdrawn {
			continue
		}
		if days, ok := a.Deadline.DaysFrom(now); ok && days >= 0 {
			d.Upcoming = append(d.Upcoming, UpcomingDeadline{Application: a, DaysRemaining: days})
		}
	}
	sort.SliceStable(d.Upcoming, func(i, j int) bool { return d.Upcoming[i].DaysRemaining < d.Upcoming[j].DaysRemaining })

	for _, o := range model.Outcomes {
		d.Outcomes = append(d.Outcomes, OutcomeCount{Outcome: o, Count: counts[o]})
	}

	byTag := map[string]*TagProgress{}
	for _, e := range s.Essays {
		d.Stats.TotalEssays++
		if e.Completed {
			d.Stats.CompletedEssays++
		}
		for _, t := range idx.ResolveTags(e.TagIDs) {
			tp := byTag[t.ID]
			if tp == nil {
				tp = &TagProgress{Tag: t}
				byTag[t.ID] = tp
			}
			tp.Total++
			if e.Completed {
				tp.Completed++
			}
		}
	}
	for _, tp := range byTag {
		d.EssayTags = append(d.EssayTags, *tp)
	}
	c := newCollator()
	sort.SliceStable(d.EssayTags, func(i, j int) bool {
		if r := c.CompareString(d.EssayTags[i].Tag.Name, d.EssayTags[j].Tag.Name); r != 0 {
			return r < 0
		}
		return d.EssayTags[i].Tag.ID < d.EssayTags[j].Tag.ID
	})
	return d
}

type AcceptedSchool struct {
	Application model.Application `json:"application"`
	// NetCost is tuition minus aid; nil when tuition is unknown.
	NetCost *float64 `json:"netCost,omitempty"`
}

type Results struct {
	Accepted   []AcceptedSchool    `json:"accepted"`
	Waitlisted []model.Application `json:"waitlisted"`
	Deferred   []model.Application `json:"deferred"`
	Rejected   []model.Application `json:"rejected"`
	Pending    []model.Application `json:"pending"`
	TotalAid   float64             `json:"totalAid"`
}

// HasDecisions reports whether any school has answered.
func (r Results) HasDecisions() bool {
	return len(r.Accepted) > 0 || len(r.Waitlisted) > 0 || len(r.Deferred) > 0 || len(r.Rejected) > 0
}

// BuildResults groups applications by decision. Withdrawn applications appear in no group.
func BuildResults(apps []model.Application) Results {
	r := Results{
		Accepted:   []AcceptedSchool{},
		Waitlisted: []model.Application{},
		Deferred:   []model.Application{},
		Rejected:   []model.Application{},
		Pending:    []model.Application{},
	}
	for _, a := range apps {
		switch a.Outcome {
		case model.OutcomeAccepted:
			as := AcceptedSchool{Application: a}
			aid := 0.0
			if a.FinancialAid != nil {
				aid = *a.FinancialAid
			}
			r.TotalAid += aid
			if a.TuitionCost != nil {
				net := *a.TuitionCost - aid
				as.NetCost = &net
			}
			r.Accepted = append(r.Accepted, as)
		case model.OutcomeWaitlisted:
			r.Waitlisted = append(r.Waitlisted, a)
		case model.OutcomeDeferred:
			r.Deferred = append(r.Deferred, a)
		case model.OutcomeRejected:
			r.Rejected = append(r.Rejected, a)
		case model.OutcomeInProgress, model.OutcomeSubmitted:
			r.Pending = append(r.Pending, a)
		}
	}
	return r
}

// DecisionTimeline lists decided applications with a decision date, earliest first.
func DecisionTimeline(apps []model.Application) []model.Application {
	out := []model.Application{}
	for _, a := range apps {
		if a.DecisionDate == nil || !a.DecisionDate.Valid() {
			continue
		}
		if a.Outcome == model.OutcomeInProgress || a.Outcome == model.OutcomeSubmitted {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return deadlineLess(*out[i].DecisionDate, *out[j].DecisionDate) })
	return out
}
