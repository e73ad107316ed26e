package pipeline

import (
	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/rgehrsitz/rxdash/internal/scenario"
	"github.com/rgehrsitz/rxdash/internal/unit"
	"github.com/shopspring/decimal"
)

// Domain is a y-axis range hint for charts.
type Domain struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Row is one scenario line of a summary view.
type Row struct {
	Scenario domain.ScenarioID     `json:"scenario"`
	Label    string                `json:"label"`
	Values   []decimal.NullDecimal `json:"values"`
	Cells    []string              `json:"cells"`
}

// ViewModel is the summary view: one row per selected scenario over the
// period labels of the active horizon window.
type ViewModel struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Rows   []Row     `json:"rows"`
	Metric string    `json:"metric"`
	Unit   unit.Kind `json:"unit"`
	Symbol string    `json:"symbol"`

	// Brand and SeriesMetric name the series the values came from.
	Brand        string `json:"brand"`
	SeriesMetric string `json:"series_metric"`
	UsedFallback bool   `json:"used_fallback"`

	YDomain Domain `json:"y_domain"`
}

// Clone returns a deep copy of the view.
func (v ViewModel) Clone() ViewModel {
	out := v
	out.Labels = append([]string(nil), v.Labels...)
	out.Rows = make([]Row, len(v.Rows))
	for i, r := range v.Rows {
		r.Values = append([]decimal.NullDecimal(nil), r.Values...)
		r.Cells = append([]string(nil), r.Cells...)
		out.Rows[i] = r
	}
	return out
}

// Empty reports whether the view has no rows or no periods.
func (v ViewModel) Empty() bool {
	return len(v.Rows) == 0 || len(v.Labels) == 0
}

// AssumptionLine is one row of the assumptions table.
type AssumptionLine struct {
	Metric      string                `json:"metric"`
	MetricLabel string                `json:"metric_label"`
	LoT         string                `json:"lot"`
	Regime      string                `json:"regime"`
	ActualsTill string                `json:"actuals_till"`
	Values      []decimal.NullDecimal `json:"values"`
	Cells       []string              `json:"cells"`
}

// AssumptionGroup holds the rows of one scenario.
type AssumptionGroup struct {
	Scenario domain.ScenarioID `json:"scenario"`
	Label    string            `json:"label"`
	Lines    []AssumptionLine  `json:"lines"`
}

// AssumptionsView is the assumptions table of one brand.
type AssumptionsView struct {
	Title        string            `json:"title"`
	Labels       []string          `json:"labels"`
	Groups       []AssumptionGroup `json:"groups"`
	Brand        string            `json:"brand"`
	UsedFallback bool              `json:"used_fallback"`
}

// Clone returns a deep copy of the view.
func (v AssumptionsView) Clone() AssumptionsView {
	out := v
	out.Labels = append([]string(nil), v.Labels...)
	out.Groups = make([]AssumptionGroup, len(v.Groups))
	for i, g := range v.Groups {
		lines := make([]AssumptionLine, len(g.Lines))
		for j, l := range g.Lines {
			l.Values = append([]decimal.NullDecimal(nil), l.Values...)
			l.Cells = append([]string(nil), l.Cells...)
			lines[j] = l
		}
		g.Lines = lines
		out.Groups[i] = g
	}
	return out
}

// Bar is one laid-out step of a bridge chart. Start is the invisible offset
// below the bar and Height its visible size.
type Bar struct {
	Name   string          `json:"name"`
	Kind   domain.StepKind `json:"kind"`
	Value  decimal.Decimal `json:"value"`
	Start  decimal.Decimal `json:"start"`
	Height decimal.Decimal `json:"height"`
	Cell   string          `json:"cell"`
}

// BridgeView is a laid-out waterfall between two scenarios.
type BridgeView struct {
	Title        string          `json:"title"`
	Brand        string          `json:"brand"`
	Metric       string          `json:"metric"`
	Pair         scenario.Pair   `json:"pair"`
	Scale        decimal.Decimal `json:"scale"`
	Bars         []Bar           `json:"bars"`
	UsedFallback bool            `json:"used_fallback"`
	YDomain      Domain          `json:"y_domain"`
}

// Clone returns a deep copy of the view.
func (v BridgeView) Clone() BridgeView {
	out := v
	out.Bars = append([]Bar(nil), v.Bars...)
	return out
}
