package pipeline

import (
	"github.com/rgehrsitz/rxdash/internal/dataset"
	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/rgehrsitz/rxdash/internal/filter"
	"github.com/rgehrsitz/rxdash/internal/horizon"
	"github.com/rgehrsitz/rxdash/internal/scenario"
	"github.com/rgehrsitz/rxdash/internal/unit"
	"github.com/shopspring/decimal"
)

// Bar values are shown with one decimal.
const barPlaces = 1

// HorizonScale returns the factor bridge values are scaled by for a window
// of months periods: 0.8 + min(months, 12) * 0.02.
func HorizonScale(months int) decimal.Decimal {
	if months > 12 {
		months = 12
	}
	if months < 0 {
		months = 0
	}
	return decimal.RequireFromString("0.8").Add(decimal.NewFromInt(int64(months)).Mul(decimal.RequireFromString("0.02")))
}

func (e *Engine) buildBridge(s filter.State) BridgeView {
	pair, pairOK := scenario.BridgePair(s.ScenarioFrom, s.ScenarioTo)
	lookup := e.Catalog.Bridge(s.Brand, s.Metric, pair.Key())
	pair = resolvedPair(pair, lookup)
	fallback := !pairOK || lookup.Fallback
	if fallback {
		e.Logger.Debugf("no bridge for %s/%s %s-%s, using %s/%s %s",
			s.Brand, s.Metric, s.ScenarioFrom, s.ScenarioTo, lookup.Brand, lookup.Metric, pair.Key())
	}

	scale := HorizonScale(horizon.WindowLen(s.Catalog(), s.HorizonStart, s.HorizonEnd))
	steps := make([]domain.BridgeStep, len(lookup.Steps))
	for i, st := range lookup.Steps {
		st.Value = st.Value.Mul(scale).Round(barPlaces)
		steps[i] = st
	}

	bars := layout(lookup.Metric, steps)
	return BridgeView{
		Title: "Bridge Analysis - " + brandLabel(lookup.Brand) + " - " + filter.MetricLabelOf(lookup.Metric) +
			" (" + filter.BridgeScenarioLabel(pair.From) + " vs " + filter.BridgeScenarioLabel(pair.To) + ") | " +
			filter.HorizonLabel(s),
		Brand:        lookup.Brand,
		Metric:       lookup.Metric,
		Pair:         pair,
		Scale:        scale,
		Bars:         bars,
		UsedFallback: fallback,
		YDomain:      BridgeDomain(stepValues(steps)),
	}
}

func (e *Engine) buildDrilldown(s filter.State) BridgeView {
	pair, pairOK := scenario.BridgePair(s.ScenarioFrom, s.ScenarioTo)
	lookup := e.Catalog.Drilldown(s.Brand, pair.Key())
	pair = resolvedPair(pair, lookup)
	fallback := !pairOK || lookup.Fallback
	if fallback {
		e.Logger.Debugf("no drilldown for %s %s-%s, using %s %s",
			s.Brand, s.ScenarioFrom, s.ScenarioTo, lookup.Brand, pair.Key())
	}

	return BridgeView{
		Title: "Bridge Analysis - " + drilldownIndicationLabel(s.Indication) +
			" - (" + filter.BridgeScenarioLabel(pair.From) + " vs " + filter.BridgeScenarioLabel(pair.To) + ")",
		Brand:        lookup.Brand,
		Metric:       lookup.Metric,
		Pair:         pair,
		Scale:        decimal.NewFromInt(1),
		Bars:         layout(lookup.Metric, lookup.Steps),
		UsedFallback: fallback,
		YDomain:      DrilldownDomain(stepValues(lookup.Steps)),
	}
}

// layout positions each step. Base bars stand on zero; a delta bar starts at
// the running total before it, and a decrease hangs below that total.
func layout(metric string, steps []domain.BridgeStep) []Bar {
	bars := make([]Bar, len(steps))
	running := decimal.Zero
	for i, st := range steps {
		b := Bar{Name: st.Name, Kind: st.Kind, Value: st.Value, Height: st.Value.Abs()}
		switch {
		case i == 0:
			b.Start = decimal.Zero
			b.Height = st.Value
			running = st.Value
		case i == len(steps)-1:
			b.Start = decimal.Zero
			b.Height = st.Value
		case st.Kind == domain.StepDecrease:
			b.Start = running.Add(st.Value)
			running = running.Add(st.Value)
		default:
			b.Start = running
			running = running.Add(st.Value)
		}
		b.Cell = barCell(metric, b)
		bars[i] = b
	}
	return bars
}

// barCell labels a bar with its height; decreases carry a minus sign.
func barCell(metric string, b Bar) string {
	v := b.Height
	if b.Kind == domain.StepDecrease {
		v = v.Neg()
	}
	return unit.FormatFixed(metric, v, barPlaces)
}

// resolvedPair returns the pair the lookup's steps belong to.
func resolvedPair(requested scenario.Pair, lookup dataset.BridgeLookup) scenario.Pair {
	if lookup.Pair == requested.Key() {
		return requested
	}
	return scenario.DefaultPair
}

func stepValues(steps []domain.BridgeStep) []decimal.Decimal {
	out := make([]decimal.Decimal, len(steps))
	for i, st := range steps {
		out[i] = st.Value
	}
	return out
}

func brandLabel(brand string) string {
	if label, ok := domain.LookupLabel(domain.Brands, brand); ok {
		return label
	}
	return "Brand A"
}

func drilldownIndicationLabel(indication string) string {
	if indication == domain.IndicationAll {
		return "All Indications"
	}
	if label, ok := domain.LookupLabel(domain.Indications, indication); ok {
		return label
	}
	return "Indication A"
}
