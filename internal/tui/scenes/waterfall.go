package scenes

import (
	"strings"

	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/rgehrsitz/rxdash/internal/pipeline"
	"github.com/rgehrsitz/rxdash/internal/tui/components"
	"github.com/rgehrsitz/rxdash/internal/tui/tuistyles"
	"github.com/rgehrsitz/rxdash/internal/unit"
	"github.com/shopspring/decimal"
)

// WaterfallModel renders the bridge between two scenarios, or the total
// demand drilldown when Drilldown is set.
type WaterfallModel struct {
	bridge    pipeline.BridgeView
	drilldown pipeline.BridgeView
	Drilldown bool
	width     int
}

// NewWaterfallModel creates a new waterfall scene model
func NewWaterfallModel() *WaterfallModel {
	return &WaterfallModel{width: 80}
}

// SetViews replaces the bridge and drilldown views.
func (m *WaterfallModel) SetViews(bridge, drilldown pipeline.BridgeView) {
	m.bridge = bridge
	m.drilldown = drilldown
}

// SetSize updates the scene dimensions
func (m *WaterfallModel) SetSize(width, height int) {
	m.width = width
}

// Current returns the view being shown.
func (m *WaterfallModel) Current() pipeline.BridgeView {
	if m.Drilldown {
		return m.drilldown
	}
	return m.bridge
}

// View renders the scene
func (m *WaterfallModel) View() string {
	v := m.Current()

	chart := components.NewWaterfallChart(v.Title, v.YDomain.Min.InexactFloat64(), v.YDomain.Max.InexactFloat64()).
		WithWidth(max(50, m.width-4))
	for _, b := range v.Bars {
		chart.AddBar(components.WaterfallBar{
			Name:   b.Name,
			Kind:   string(b.Kind),
			Start:  b.Start.InexactFloat64(),
			Height: b.Height.InexactFloat64(),
			Label:  b.Cell,
		})
	}

	parts := []string{chart.Render()}
	if cards := m.totals(v); cards != "" {
		parts = append(parts, "", cards)
	}
	if v.UsedFallback {
		parts = append(parts, tuistyles.SubtitleStyle.Render(fallbackNotice))
	}
	return strings.Join(parts, "\n")
}

// totals shows the first and last base bars and the change between them.
func (m *WaterfallModel) totals(v pipeline.BridgeView) string {
	if len(v.Bars) < 2 {
		return ""
	}
	first, last := v.Bars[0], v.Bars[len(v.Bars)-1]
	if first.Kind != domain.StepBase || last.Kind != domain.StepBase {
		return ""
	}

	change := last.Value.Sub(first.Value)
	sign := ""
	if change.IsPositive() {
		sign = "+"
	}
	delta := sign + unit.FormatFixed(v.Metric, change, 1)

	cards := []*components.MetricCard{
		components.NewMetricCard(first.Name, first.Cell),
		components.NewMetricCard(last.Name, last.Cell).WithTrend(!change.IsNegative(), delta),
	}
	if !first.Value.IsZero() {
		pct := change.Div(first.Value).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
		cards = append(cards, components.NewMetricCard("Change", pct))
	}
	return components.MetricGrid(cards, 3)
}
