package query

import (
	"testing"

	"apptrack/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(v float64) *float64 { return &v }

func TestBuildComparison(t *testing.T) {
	apps := []model.Application{
		{ID: "s1", Outcome: model.OutcomeAccepted, TuitionCost: money(60000), FinancialAid: money(45000)},
		{ID: "s2", Outcome: model.OutcomeAccepted, TuitionCost: money(30000)},
		{ID: "s3", Outcome: model.OutcomeAccepted, TuitionCost: money(50000), FinancialAid: money(45000)},
		{ID: "s4", Outcome: model.OutcomeAccepted},
		{ID: "s5", Outcome: model.OutcomeAccepted},
		{ID: "r1", Outcome: model.OutcomeRejected, TuitionCost: money(1)},
	}

	tests := []struct {
		name       string
		ids        []string
		wantIDs    []string
		wantNet    []float64
		wantLowest []bool
		wantAid    []bool
		available  []string
	}{
		{
			name:       "nothing selected",
			wantIDs:    []string{},
			available:  []string{"s1", "s2", "s3", "s4", "s5"},
			wantNet:    []float64{},
			wantLowest: []bool{},
			wantAid:    []bool{},
		},
		{
			name:       "single school has no markers",
			ids:        []string{"s1"},
			wantIDs:    []string{"s1"},
			wantNet:    []float64{15000},
			wantLowest: []bool{false},
			wantAid:    []bool{false},
			available:  []string{"s2", "s3", "s4", "s5"},
		},
		{
			name:       "markers and ties",
			ids:        []string{"s2", "s1", "s3"},
			wantIDs:    []string{"s2", "s1", "s3"},
			wantNet:    []float64{30000, 15000, 5000},
			wantLowest: []bool{false, false, true},
			wantAid:    []bool{false, true, true},
			available:  []string{"s4", "s5"},
		},
		{
			name:       "no aid means no most-aid marker",
			ids:        []string{"s2", "s4"},
			wantIDs:    []string{"s2", "s4"},
			wantNet:    []float64{30000, 0},
			wantLowest: []bool{false, true},
			wantAid:    []bool{false, false},
			available:  []string{"s1", "s3", "s5"},
		},
		{
			name:       "unknown, duplicate and rejected ids are skipped",
			ids:        []string{"nope", "r1", "s4", "s4"},
			wantIDs:    []string{"s4"},
			wantNet:    []float64{0},
			wantLowest: []bool{false},
			wantAid:    []bool{false},
			available:  []string{"s1", "s2", "s3", "s5"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := BuildComparison(apps, tt.ids)
			require.NoError(t, err)
			gotIDs := []string{}
			gotNet := []float64{}
			gotLowest := []bool{}
			gotAid := []bool{}
			for _, s := range c.Schools {
				gotIDs = append(gotIDs, s.Application.ID)
				gotNet = append(gotNet, s.NetCost)
				gotLowest = append(gotLowest, s.LowestCost)
				gotAid = append(gotAid, s.MostAid)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
			assert.Equal(t, tt.wantNet, gotNet)
			assert.Equal(t, tt.wantLowest, gotLowest)
			assert.Equal(t, tt.wantAid, gotAid)
			assert.Equal(t, tt.available, ids(c.Available))
		})
	}
}

func TestBuildComparison_AtMostFour(t *testing.T) {
	apps := []model.Application{
		{ID: "s1", Outcome: model.OutcomeAccepted},
		{ID: "s2", Outcome: model.OutcomeAccepted},
		{ID: "s3", Outcome: model.OutcomeAccepted},
		{ID: "s4", Outcome: model.OutcomeAccepted},
		{ID: "s5", Outcome: model.OutcomeAccepted},
	}
	_, err := BuildComparison(apps, []string{"s1", "s2", "s3", "s4"})
	require.NoError(t, err)
	_, err = BuildComparison(apps, []string{"s1", "s2", "s3", "s4", "s5"})
	require.Error(t, err)
}

func TestBoardColumns(t *testing.T) {
	apps := []model.Application{
		{ID: "x1", Outcome: model.OutcomeSubmitted},
		{ID: "x2", Outcome: model.OutcomeInProgress},
		{ID: "x3", Outcome: model.OutcomeSubmitted},
		{ID: "x4", Outcome: model.OutcomeWithdrawn},
		{ID: "x5", Outcome: "Unknown"},
	}
	cols := BoardColumns(apps)
	require.Len(t, cols, len(model.Outcomes))

	got := map[model.Outcome][]string{}
	for i, c := range cols {
		assert.Equal(t, model.Outcomes[i], c.Outcome)
		got[c.Outcome] = ids(c.Applications)
	}
	assert.Equal(t, []string{"x2"}, got[model.OutcomeInProgress])
	assert.Equal(t, []string{"x1", "x3"}, got[model.OutcomeSubmitted])
	assert.Equal(t, []string{"x4"}, got[model.OutcomeWithdrawn])
	assert.Empty(t, got[model.OutcomeAccepted])
	assert.NotNil(t, cols[2].Applications)
}
