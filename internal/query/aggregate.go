package query

import "apptrack/internal/model"

// Progress counts completed tasks (checklist items + essays) of one application.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// NoTasks is the sentinel percentage reported for an application with nothing to do.
const NoTasks = -1.0

// Percent returns the completion percentage, or (NoTasks, false) when there are no tasks.
func (p Progress) Percent() (float64, bool) {
	if p.Total == 0 {
		return NoTasks, false
	}
	return float64(p.Completed) / float64(p.Total) * 100, true
}

func Completion(a model.Application, essays []model.Essay) Progress {
	var p Progress
	for _, it := range a.Checklist {
		p.Total++
		if it.Completed {
			p.Completed++
		}
	}
	for _, e := range essays {
		p.Total++
		if e.Completed {
			p.Completed++
		}
	}
	return p
}

// Summary is the view-level progress over whatever set is currently visible.
type Summary struct {
	SubmittedApplications int `json:"submittedApplications"`
	TotalApplications     int `json:"totalApplications"`
	CompletedEssays       int `json:"completedEssays"`
	TotalEssays           int `json:"totalEssays"`
}

// Summarize counts applications past "In Progress" and completed essays of the visible applications.
func Summarize(visible []model.Application, idx Index) Summary {
	var s Summary
	for _, a := range visible {
		s.TotalApplications++
		if a.Outcome != model.OutcomeInProgress {
			s.SubmittedApplications++
		}
		for _, e := range idx.EssaysFor(a.ID) {
			s.TotalEssays++
			if e.Completed {
				s.CompletedEssays++
			}
		}
	}
	return s
}

// SummarizeEssays is Summarize for the essay-centric view.
func SummarizeEssays(visible []model.Essay, idx Index) Summary {
	var s Summary
	seen := map[string]bool{}
	for _, e := range visible {
		s.TotalEssays++
		if e.Completed {
			s.CompletedEssays++
		}
		if seen[e.ApplicationID] {
			continue
		}
		seen[e.ApplicationID] = true
		if a, ok := idx.ApplicationsByID[e.ApplicationID]; ok {
			s.TotalApplications++
			if a.Outcome != model.OutcomeInProgress {
				s.SubmittedApplications++
			}
		}
	}
	return s
}
