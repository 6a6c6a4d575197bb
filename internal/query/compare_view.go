package query

import (
	"fmt"

	"apptrack/internal/model"
)

// MaxCompared is how many accepted schools can be compared side by side.
const MaxCompared = 4

type ComparedSchool struct {
	Application model.Application `json:"application"`
	Tuition     float64           `json:"tuition"`
	Aid         float64           `json:"aid"`
	NetCost     float64           `json:"netCost"`
	LowestCost  bool              `json:"lowestCost"`
	MostAid     bool              `json:"mostAid"`
}

type Comparison struct {
	Schools []ComparedSchool `json:"schools"`
	// Available are accepted schools that are not being compared.
	Available []model.Application `json:"available"`
}

// BuildComparison compares the selected accepted schools in selection order.
// Unknown, duplicate and not-accepted ids are skipped. Missing tuition or aid
// counts as 0. Best-value markers need at least two schools, and most aid
// is only marked when it is positive.
func BuildComparison(apps []model.Application, ids []string) (Comparison, error) {
	accepted := make(map[string]model.Application)
	for _, a := range apps {
		if a.Outcome == model.OutcomeAccepted {
			accepted[a.ID] = a
		}
	}

	c := Comparison{Schools: []ComparedSchool{}, Available: []model.Application{}}
	picked := map[string]bool{}
	for _, id := range ids {
		a, ok := accepted[id]
		if !ok || picked[id] {
			continue
		}
		if len(c.Schools) == MaxCompared {
			return Comparison{}, fmt.Errorf("can compare at most %d schools", MaxCompared)
		}
		picked[id] = true
		s := ComparedSchool{Application: a}
		if a.TuitionCost != nil {
			s.Tuition = *a.TuitionCost
		}
		if a.FinancialAid != nil {
			s.Aid = *a.FinancialAid
		}
		s.NetCost = s.Tuition - s.Aid
		c.Schools = append(c.Schools, s)
	}
	for _, a := range apps {
		if a.Outcome == model.OutcomeAccepted && !picked[a.ID] {
			c.Available = append(c.Available, a)
		}
	}

	if len(c.Schools) < 2 {
		return c, nil
	}
	lowest, most := c.Schools[0].NetCost, c.Schools[0].Aid
	for _, s := range c.Schools[1:] {
		lowest = min(lowest, s.NetCost)
		most = max(most, s.Aid)
	}
	for i := range c.Schools {
		c.Schools[i].LowestCost = c.Schools[i].NetCost == lowest
		c.Schools[i].MostAid = most > 0 && c.Schools[i].Aid == most
	}
	return c, nil
}

type BoardColumn struct {
	Outcome      model.Outcome       `json:"outcome"`
	Applications []model.Application `json:"applications"`
}

// BoardColumns groups applications into one column per outcome, in enum
// order, keeping the input order within a column. Every column is present.
func BoardColumns(apps []model.Application) []BoardColumn {
	cols := make([]BoardColumn, len(model.Outcomes))
	pos := make(map[model.Outcome]int, len(model.Outcomes))
	for i, o := range model.Outcomes {
		cols[i] = BoardColumn{Outcome: o, Applications: []model.Application{}}
		pos[o] = i
	}
	for _, a := range apps {
		if i, ok := pos[a.Outcome]; ok {
			cols[i].Applications = append(cols[i].Applications, a)
		}
	}
	return cols
}
