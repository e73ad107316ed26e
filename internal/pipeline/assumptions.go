package pipeline

import (
	"strings"

	"github.com/rgehrsitz/rxdash/internal/aggregate"
	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/rgehrsitz/rxdash/internal/filter"
	"github.com/rgehrsitz/rxdash/internal/horizon"
	"github.com/rgehrsitz/rxdash/internal/scenario"
	"github.com/rgehrsitz/rxdash/internal/unit"
	"github.com/shopspring/decimal"
)

// firstLineLoT is the line-of-therapy tag that follows the line filter.
const firstLineLoT = "1L"

func (e *Engine) buildAssumptions(s filter.State) AssumptionsView {
	rows, brand, fallback := e.Catalog.Assumptions(s.Brand)
	if fallback {
		e.Logger.Debugf("no assumptions for %s, using %s", s.Brand, brand)
	}

	v := AssumptionsView{
		Title:        "Assumptions - " + filter.BrandLabel(s) + " (" + filter.HorizonLabel(s) + ")",
		Brand:        brand,
		UsedFallback: fallback,
	}
	for _, opt := range horizon.Window(s.Catalog(), s.HorizonStart, s.HorizonEnd) {
		v.Labels = append(v.Labels, opt.Label)
	}

	lot := ""
	if s.Line != domain.LineAll {
		lot = strings.ToUpper(s.Line)
	}

	byScenario := make(map[domain.ScenarioID][]AssumptionLine)
	for _, r := range rows {
		var values []decimal.NullDecimal
		if s.Granularity == domain.GranularityAnnually {
			values = aggregate.ReduceValues(r.Metric, r.Values, s.HorizonStart, s.HorizonEnd, e.policy)
		} else {
			values = aggregate.SliceValues(r.Values, s.HorizonStart, s.HorizonEnd)
		}
		cells := make([]string, len(values))
		for i, val := range values {
			cells[i] = unit.FormatNull(r.Metric, val)
		}
		line := AssumptionLine{
			Metric:      r.Metric,
			MetricLabel: filter.MetricLabelOf(r.Metric),
			LoT:         r.LoT,
			Regime:      r.Regime,
			ActualsTill: r.ActualsTill,
			Values:      values,
			Cells:       cells,
		}
		if lot != "" && line.LoT == firstLineLoT {
			line.LoT = lot
		}
		byScenario[r.Scenario] = append(byScenario[r.Scenario], line)
	}

	for _, p := range scenario.Filter(byScenario, s.Scenarios) {
		v.Groups = append(v.Groups, AssumptionGroup{Scenario: p.Scenario, Label: p.Label, Lines: p.Values})
	}
	return v
}
