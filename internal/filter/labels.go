package filter

import (
	"strings"

	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/rgehrsitz/rxdash/internal/scenario"
)

// BrandLabel returns the display name of the selected brand. Unknown brands
// show as Brand A, matching the data they resolve to.
func BrandLabel(s State) string {
	if label, ok := domain.LookupLabel(domain.Brands, s.Brand); ok {
		return label
	}
	return "Brand A"
}

// MetricLabel returns the display name of the selected metric.
func MetricLabel(s State) string {
	return MetricLabelOf(s.Metric)
}

// MetricLabelOf returns the display name of a metric id; unknown ids show as
// Net Revenue.
func MetricLabelOf(metric string) string {
	if label, ok := domain.LookupLabel(domain.Metrics, metric); ok {
		return label
	}
	if metric == domain.MetricTotalDemand {
		return "Total Demand"
	}
	return "Net Revenue"
}

// IndicationLabel returns the display name of the selected indication.
func IndicationLabel(s State) string {
	if label, ok := domain.LookupLabel(domain.Indications, s.Indication); ok {
		return label
	}
	return s.Indication
}

// LineLabel returns the display name of the selected line.
func LineLabel(s State) string {
	if s.Line == domain.Line4Plus {
		return "4L+"
	}
	if label, ok := domain.LookupLabel(domain.Lines, s.Line); ok {
		return label
	}
	return strings.ToUpper(s.Line)
}

// HorizonLabel returns "<start> - <end>" using the catalog labels of the
// active granularity. Unknown tokens are shown as-is.
func HorizonLabel(s State) string {
	c := s.Catalog()
	return c.Label(s.HorizonStart) + " - " + c.Label(s.HorizonEnd)
}

// ScenarioLabel returns the label of the legacy single-select scenario.
func ScenarioLabel(s State) string {
	switch s.Scenario {
	case domain.ScenarioSelectJun25:
		return "Jun'25"
	case domain.ScenarioSelectNov25:
		return "Nov'25"
	default:
		return "Jun'25 & Nov'25"
	}
}

// ScenarioSetLabel returns the text of the multi-select scenario button.
func ScenarioSetLabel(s State) string {
	ids := scenario.Select(s.Scenarios)
	switch len(ids) {
	case 0:
		return "Select scenarios"
	case len(domain.Scenarios):
		return "All Scenarios"
	}
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = domain.ScenarioLabel(id)
	}
	return strings.Join(labels, ", ")
}

// BridgeScenarioLabel labels one end of a bridge pair. Unknown ids show as Jun'25.
func BridgeScenarioLabel(id domain.ScenarioID) string {
	if scenario.Known(id) {
		return domain.ScenarioLabel(id)
	}
	return "Jun'25"
}
