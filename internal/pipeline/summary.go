package pipeline

import (
	"github.com/rgehrsitz/rxdash/internal/adjust"
	"github.com/rgehrsitz/rxdash/internal/aggregate"
	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/rgehrsitz/rxdash/internal/filter"
	"github.com/rgehrsitz/rxdash/internal/scenario"
	"github.com/rgehrsitz/rxdash/internal/unit"
	"github.com/shopspring/decimal"
)

func (e *Engine) buildSummary(s filter.State) ViewModel {
	sel := e.Catalog.Select(s.Brand, s.Metric)
	if sel.Fallback {
		e.Logger.Debugf("no series for %s/%s, using %s/%s", s.Brand, s.Metric, sel.Brand, sel.Metric)
	}

	// Monthly values are rounded after scaling; annual values are rounded
	// once, after the reduction.
	var series domain.MetricSeries
	if s.Granularity == domain.GranularityAnnually {
		series = adjust.Scale(sel.Series, adjust.Multiplier(s.Line, s.Indication))
	} else {
		series = adjust.Adjust(sel.Series, s.Line, s.Indication)
	}
	res := aggregate.Aggregate(series, s.Granularity, s.HorizonStart, s.HorizonEnd, e.policy)

	byScenario := make(map[domain.ScenarioID][]decimal.NullDecimal)
	var all []decimal.Decimal
	for _, p := range res.Points {
		for _, id := range scenario.Order() {
			v, ok := p.Values[id]
			if !ok {
				continue
			}
			byScenario[id] = append(byScenario[id], v)
			if v.Valid {
				all = append(all, v.Decimal)
			}
		}
	}

	v := ViewModel{
		Title:        summaryTitle(s),
		Labels:       res.Labels(),
		Metric:       s.Metric,
		Unit:         unit.KindOf(s.Metric),
		Symbol:       unit.Symbol(s.Metric),
		Brand:        sel.Brand,
		SeriesMetric: sel.Metric,
		UsedFallback: sel.Fallback,
		YDomain:      SummaryDomain(s.Metric, all),
	}
	for _, p := range scenario.Filter(byScenario, s.Scenarios) {
		cells := make([]string, len(p.Values))
		for i, val := range p.Values {
			cells[i] = unit.FormatNull(s.Metric, val)
		}
		v.Rows = append(v.Rows, Row{Scenario: p.Scenario, Label: p.Label, Values: p.Values, Cells: cells})
	}
	return v
}

// summaryTitle renders "<Metric> (<unit>) - <Brand> (<Horizon>)". Metrics
// without a unit symbol omit the parenthesis.
func summaryTitle(s filter.State) string {
	title := filter.MetricLabel(s)
	if sym := unit.Symbol(s.Metric); sym != "" {
		title += " (" + sym + ")"
	}
	return title + " - " + filter.BrandLabel(s) + " (" + filter.HorizonLabel(s) + ")"
}
