// Package filter holds the dashboard filter state and the pure reducer that
// applies user actions to it.
package filter

import (
	"encoding/json"

	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/rgehrsitz/rxdash/internal/horizon"
)

// Filter keys accepted by Set.
const (
	KeyBrand        = "brand"
	KeyIndication   = "indication"
	KeyMetric       = "metric"
	KeyLine         = "line"
	KeyScenario     = "scenario"
	KeyScenarios    = "scenarios"
	KeyScenarioFrom = "scenario_from"
	KeyScenarioTo   = "scenario_to"
	KeyGranularity  = "granularity"
	KeyHorizonStart = "horizon_start"
	KeyHorizonEnd   = "horizon_end"
)

// Keys lists every key Set accepts, in filter bar order.
var Keys = []string{
	KeyBrand, KeyIndication, KeyMetric, KeyLine,
	KeyScenario, KeyScenarios, KeyScenarioFrom, KeyScenarioTo,
	KeyGranularity, KeyHorizonStart, KeyHorizonEnd,
}

// State is the complete, serializable filter selection of one view.
type State struct {
	Variant      domain.Variant      `json:"variant" yaml:"variant"`
	Brand        string              `json:"brand" yaml:"brand"`
	Indication   string              `json:"indication" yaml:"indication"`
	Metric       string              `json:"metric" yaml:"metric"`
	Line         string              `json:"line" yaml:"line"`
	Scenario     string              `json:"scenario" yaml:"scenario"`
	Scenarios    []domain.ScenarioID `json:"scenarios" yaml:"scenarios"`
	ScenarioFrom domain.ScenarioID   `json:"scenario_from" yaml:"scenario_from"`
	ScenarioTo   domain.ScenarioID   `json:"scenario_to" yaml:"scenario_to"`
	Granularity  domain.Granularity  `json:"granularity" yaml:"granularity"`
	HorizonStart string              `json:"horizon_start" yaml:"horizon_start"`
	HorizonEnd   string              `json:"horizon_end" yaml:"horizon_end"`
}

// Default returns the initial state of a view variant.
func Default(v domain.Variant) State {
	if !v.Valid() {
		v = domain.VariantSummary
	}
	s := State{
		Variant:      v,
		Brand:        domain.BrandA,
		Indication:   domain.IndicationA,
		Metric:       domain.MetricNetRevenue,
		Line:         domain.LineAll,
		Scenario:     domain.ScenarioSelectBoth,
		Scenarios:    []domain.ScenarioID{domain.ScenarioJun25, domain.ScenarioNov25},
		ScenarioFrom: domain.ScenarioJun25,
		ScenarioTo:   domain.ScenarioNov25,
		Granularity:  domain.GranularityMonthly,
	}
	if v == domain.VariantWaterfall {
		s.Metric = domain.MetricTotalDemand
	}
	if v == domain.VariantAssumptions {
		s.Line = domain.Line1L
	}
	s.HorizonStart, s.HorizonEnd = horizon.DefaultWindow(s.Granularity, v)
	return s
}

// Clone returns a copy that shares no slices with s.
func (s State) Clone() State {
	out := s
	if s.Scenarios != nil {
		out.Scenarios = append([]domain.ScenarioID{}, s.Scenarios...)
	}
	return out
}

// Catalog returns the horizon catalog of the active granularity.
func (s State) Catalog() *horizon.Catalog {
	return horizon.For(s.Granularity)
}

// Key returns the canonical encoding of the state, used as a cache key.
// Equal states always produce equal keys.
func (s State) Key() string {
	c := s.Clone()
	if c.Scenarios == nil {
		c.Scenarios = []domain.ScenarioID{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		// A State holds only strings; marshaling cannot fail.
		panic(err)
	}
	return string(b)
}

// Has reports whether the scenario is selected.
func (s State) Has(id domain.ScenarioID) bool {
	for _, sel := range s.Scenarios {
		if sel == id {
			return true
		}
	}
	return false
}
