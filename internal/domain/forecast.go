package domain

import (
	"github.com/shopspring/decimal"
)

// HorizonOption is one selectable period in a horizon catalog.
type HorizonOption struct {
	Token   string `json:"token" yaml:"token"`
	Label   string `json:"label" yaml:"label"`
	Ordinal int    `json:"ordinal" yaml:"ordinal"`
	Year    int    `json:"year" yaml:"year"` // calendar year the period belongs to
}

// MonthPoint holds the per-scenario values of one month.
type MonthPoint struct {
	Token  string                         `json:"token" yaml:"token"`
	Label  string                         `json:"label" yaml:"label"`
	Values map[ScenarioID]decimal.Decimal `json:"values" yaml:"values"`
}

// Value returns the value recorded for the scenario.
func (p MonthPoint) Value(id ScenarioID) (decimal.Decimal, bool) {
	v, ok := p.Values[id]
	return v, ok
}

// MetricSeries is the monthly forecast of one metric for one brand.
type MetricSeries struct {
	Brand  string       `json:"brand" yaml:"brand"`
	Metric string       `json:"metric" yaml:"metric"`
	Points []MonthPoint `json:"points" yaml:"points"`
}

// Len returns the number of months in the series.
func (s MetricSeries) Len() int {
	return len(s.Points)
}

// Clone returns a deep copy of the series.
func (s MetricSeries) Clone() MetricSeries {
	out := MetricSeries{Brand: s.Brand, Metric: s.Metric}
	if s.Points == nil {
		return out
	}
	out.Points = make([]MonthPoint, len(s.Points))
	for i, p := range s.Points {
		values := make(map[ScenarioID]decimal.Decimal, len(p.Values))
		for id, v := range p.Values {
			values[id] = v
		}
		out.Points[i] = MonthPoint{Token: p.Token, Label: p.Label, Values: values}
	}
	return out
}

// AssumptionRow is one line of a brand's assumptions table.
type AssumptionRow struct {
	Scenario    ScenarioID        `json:"scenario" yaml:"scenario"`
	Metric      string            `json:"metric" yaml:"metric"`
	LoT         string            `json:"lot" yaml:"lot"`
	Regime      string            `json:"regime" yaml:"regime"`
	ActualsTill string            `json:"actuals_till" yaml:"actuals_till"`
	Values      []decimal.Decimal `json:"values" yaml:"values"`
}

// Clone returns a deep copy of the row.
func (r AssumptionRow) Clone() AssumptionRow {
	out := r
	out.Values = append([]decimal.Decimal(nil), r.Values...)
	return out
}

// StepKind classifies a bridge step.
type StepKind string

const (
	StepBase     StepKind = "base"
	StepIncrease StepKind = "increase"
	StepDecrease StepKind = "decrease"
)

// BridgeStep is one bar of a scenario bridge.
type BridgeStep struct {
	Name  string          `json:"name" yaml:"name"`
	Value decimal.Decimal `json:"value" yaml:"value"`
	Kind  StepKind        `json:"kind" yaml:"kind"`
}

// ReverseBridge returns the bridge read in the opposite direction. The two
// base bars swap places; the deltas between them keep their order but are
// negated with their kinds flipped.
func ReverseBridge(steps []BridgeStep) []BridgeStep {
	out := make([]BridgeStep, len(steps))
	for i, s := range steps {
		switch s.Kind {
		case StepIncrease:
			s.Value = s.Value.Neg()
			s.Kind = StepDecrease
		case StepDecrease:
			s.Value = s.Value.Neg()
			s.Kind = StepIncrease
		}
		out[i] = s
	}
	if n := len(out); n >= 2 && out[0].Kind == StepBase && out[n-1].Kind == StepBase {
		out[0], out[n-1] = out[n-1], out[0]
	}
	return out
}
