package tui

import (
	"strings"

	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/rgehrsitz/rxdash/internal/filter"
)

// Field is one control of a tab's filter bar.
type Field struct {
	Key   string
	Label string
}

// scenarioSets are the multi-select choices the scenarios field cycles.
var scenarioSets = [][]domain.ScenarioID{
	{domain.ScenarioJun25, domain.ScenarioNov25},
	{domain.ScenarioJun25},
	{domain.ScenarioNov25},
	{},
}

// FieldsFor returns the filter bar of a view variant, left to right.
func FieldsFor(v domain.Variant) []Field {
	switch v {
	case domain.VariantAssumptions:
		return []Field{
			{filter.KeyBrand, "Brand"},
			{filter.KeyLine, "Line"},
			{filter.KeyScenarios, "Scenarios"},
			{filter.KeyGranularity, "Granularity"},
			{filter.KeyHorizonStart, "From"},
			{filter.KeyHorizonEnd, "To"},
		}
	case domain.VariantWaterfall:
		return []Field{
			{filter.KeyBrand, "Brand"},
			{filter.KeyMetric, "Chart"},
			{filter.KeyScenarioFrom, "From scenario"},
			{filter.KeyScenarioTo, "To scenario"},
			{filter.KeyIndication, "Indication"},
			{filter.KeyGranularity, "Granularity"},
			{filter.KeyHorizonStart, "From"},
			{filter.KeyHorizonEnd, "To"},
		}
	}
	return []Field{
		{filter.KeyBrand, "Brand"},
		{filter.KeyIndication, "Indication"},
		{filter.KeyMetric, "Metric"},
		{filter.KeyLine, "Line"},
		{filter.KeyScenarios, "Scenarios"},
		{filter.KeyGranularity, "Granularity"},
		{filter.KeyHorizonStart, "From"},
		{filter.KeyHorizonEnd, "To"},
	}
}

// FieldOptions returns the values a field cycles through.
func FieldOptions(s filter.State, key string) []string {
	switch key {
	case filter.KeyBrand:
		return values(domain.Brands)
	case filter.KeyIndication:
		return values(domain.Indications)
	case filter.KeyMetric:
		if s.Variant == domain.VariantWaterfall {
			return values(domain.BridgeMetrics)
		}
		return values(domain.Metrics)
	case filter.KeyLine:
		return values(domain.Lines)
	case filter.KeyScenarioFrom, filter.KeyScenarioTo:
		return values(domain.Scenarios)
	case filter.KeyScenarios:
		out := make([]string, len(scenarioSets))
		for i, set := range scenarioSets {
			out[i] = joinIDs(set)
		}
		return out
	case filter.KeyGranularity:
		return values(domain.Granularities)
	case filter.KeyHorizonStart, filter.KeyHorizonEnd:
		opts := s.Catalog().Options()
		out := make([]string, len(opts))
		for i, o := range opts {
			out[i] = o.Token
		}
		return out
	}
	return nil
}

// FieldValue returns the current raw value of a field.
func FieldValue(s filter.State, key string) string {
	switch key {
	case filter.KeyBrand:
		return s.Brand
	case filter.KeyIndication:
		return s.Indication
	case filter.KeyMetric:
		return s.Metric
	case filter.KeyLine:
		return s.Line
	case filter.KeyScenarios:
		return joinIDs(s.Scenarios)
	case filter.KeyScenarioFrom:
		return string(s.ScenarioFrom)
	case filter.KeyScenarioTo:
		return string(s.ScenarioTo)
	case filter.KeyGranularity:
		return string(s.Granularity)
	case filter.KeyHorizonStart:
		return s.HorizonStart
	case filter.KeyHorizonEnd:
		return s.HorizonEnd
	}
	return ""
}

// FieldDisplay returns the label shown for a field's current value.
func FieldDisplay(s filter.State, key string) string {
	switch key {
	case filter.KeyBrand:
		return filter.BrandLabel(s)
	case filter.KeyIndication:
		return filter.IndicationLabel(s)
	case filter.KeyMetric:
		return filter.MetricLabel(s)
	case filter.KeyLine:
		return filter.LineLabel(s)
	case filter.KeyScenarios:
		return filter.ScenarioSetLabel(s)
	case filter.KeyScenarioFrom:
		return filter.BridgeScenarioLabel(s.ScenarioFrom)
	case filter.KeyScenarioTo:
		return filter.BridgeScenarioLabel(s.ScenarioTo)
	case filter.KeyGranularity:
		if label, ok := domain.LookupLabel(domain.Granularities, string(s.Granularity)); ok {
			return label
		}
	case filter.KeyHorizonStart:
		return s.Catalog().Label(s.HorizonStart)
	case filter.KeyHorizonEnd:
		return s.Catalog().Label(s.HorizonEnd)
	}
	return FieldValue(s, key)
}

// CycleField moves a field delta steps through its options, wrapping, and
// applies the result through the reducer.
func CycleField(s filter.State, key string, delta int) (filter.State, error) {
	opts := FieldOptions(s, key)
	if len(opts) == 0 {
		return s, nil
	}
	idx := 0
	current := FieldValue(s, key)
	for i, o := range opts {
		if o == current {
			idx = i
			break
		}
	}
	n := len(opts)
	next := opts[((idx+delta)%n+n)%n]
	return filter.Reduce(s, filter.Set{Key: key, Value: next})
}

func values(opts []domain.Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

func joinIDs(ids []domain.ScenarioID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ",")
}
