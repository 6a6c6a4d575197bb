package query

import (
	"testing"
	"time"

	"apptrack/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion(t *testing.T) {
	s := fixture()
	idx := BuildIndex(s)

	pct, ok := Completion(s.Applications[0], idx.EssaysFor("a1")).Percent()
	require.True(t, ok)
	assert.InDelta(t, 60.0, pct, 1e-9)

	pct, ok = Completion(s.Applications[1], idx.EssaysFor("a2")).Percent()
	assert.False(t, ok)
	assert.Equal(t, NoTasks, pct)
}

func TestSummarize_OverVisibleSet(t *testing.T) {
	s := fixture()
	idx := BuildIndex(s)

	all := Summarize(s.Applications, idx)
	assert.Equal(t, Summary{SubmittedApplications: 1, TotalApplications: 3, CompletedEssays: 1, TotalEssays: 3}, all)

	visible := FilterApplications(s, idx, Filter{Search: "berkeley"})
	assert.Equal(t, Summary{SubmittedApplications: 0, TotalApplications: 1, CompletedEssays: 0, TotalEssays: 1}, Summarize(visible, idx))

	essays := FilterEssays(s, idx, Filter{TagIDs: []string{"t2"}})
	assert.Equal(t, Summary{SubmittedApplications: 0, TotalApplications: 1, CompletedEssays: 1, TotalEssays: 1}, SummarizeEssays(essays, idx))
}

func TestBuildDashboard(t *testing.T) {
	s := fixture()
	s.Applications = append(s.Applications, model.Application{
		ID: "a4", SchoolName: "Yale", Deadline: "2025-01-02", Outcome: model.OutcomeWithdrawn,
	})
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	d := BuildDashboard(s, BuildIndex(s), now)
	assert.Equal(t, DashboardStats{TotalApplications: 4, SubmittedApplications: 1, TotalEssays: 3, CompletedEssays: 1}, d.Stats)

	require.Len(t, d.Upcoming, 2)
	assert.Equal(t, "a1", d.Upcoming[0].Application.ID)
	assert.Equal(t, 4, d.Upcoming[0].DaysRemaining)
	assert.Equal(t, "a2", d.Upcoming[1].Application.ID)

	require.Len(t, d.Outcomes, len(model.Outcomes))
	assert.Equal(t, OutcomeCount{Outcome: model.OutcomeInProgress, Count: 2}, d.Outcomes[0])
	assert.Equal(t, OutcomeCount{Outcome: model.OutcomeWithdrawn, Count: 1}, d.Outcomes[6])

	require.Len(t, d.EssayTags, 2)
	assert.Equal(t, "Extracurricular", d.EssayTags[0].Tag.Name)
	assert.Equal(t, 1, d.EssayTags[0].Completed)
	assert.Equal(t, "Why Us?", d.EssayTags[1].Tag.Name)
	assert.Equal(t, 2, d.EssayTags[1].Total)
	assert.Equal(t, model.Date("2025-01-01"), d.GeneratedOn)
}

func TestBuildResultsAndTimeline(t *testing.T) {
	aid, tuition := 20000.0, 80000.0
	apps := []model.Application{
		{ID: "x1", Outcome: model.OutcomeAccepted, FinancialAid: &aid, TuitionCost: &tuition, DecisionDate: datePtr("2025-03-20")},
		{ID: "x2", Outcome: model.OutcomeAccepted, DecisionDate: datePtr("2025-03-01")},
		{ID: "x3", Outcome: model.OutcomeRejected, DecisionDate: datePtr("2025-02-10")},
		{ID: "x4", Outcome: model.OutcomeSubmitted, DecisionDate: datePtr("2025-01-10")},
		{ID: "x5", Outcome: model.OutcomeInProgress},
		{ID: "x6", Outcome: model.OutcomeWithdrawn},
		{ID: "x7", Outcome: model.OutcomeWaitlisted},
	}

	r := BuildResults(apps)
	require.Len(t, r.Accepted, 2)
	assert.InDelta(t, 20000.0, r.TotalAid, 1e-9)
	require.NotNil(t, r.Accepted[0].NetCost)
	assert.InDelta(t, 60000.0, *r.Accepted[0].NetCost, 1e-9)
	assert.Nil(t, r.Accepted[1].NetCost)
	assert.Equal(t, []string{"x3"}, ids(r.Rejected))
	assert.Equal(t, []string{"x4", "x5"}, ids(r.Pending))
	assert.Equal(t, []string{"x7"}, ids(r.Waitlisted))
	assert.True(t, r.HasDecisions())

	assert.Equal(t, []string{"x3", "x2", "x1"}, ids(DecisionTimeline(apps)))
}

func datePtr(s string) *model.Date {
	d := model.Date(s)
	return &d
}
