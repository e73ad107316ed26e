package pipeline

import (
	"testing"

	"github.com/rgehrsitz/rxdash/internal/aggregate"
	"github.com/rgehrsitz/rxdash/internal/dataset"
	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/rgehrsitz/rxdash/internal/filter"
	"github.com/rgehrsitz/rxdash/internal/unit"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger records messages for assertions.
type TestLogger struct {
	messages []string
}

func (tl *TestLogger) Debugf(format string, args ...any) {
	tl.messages = append(tl.messages, "DEBUG: "+format)
}

func (tl *TestLogger) Infof(format string, args ...any) {
	tl.messages = append(tl.messages, "INFO: "+format)
}

func (tl *TestLogger) Warnf(format string, args ...any) {
	tl.messages = append(tl.messages, "WARN: "+format)
}

func (tl *TestLogger) Errorf(format string, args ...any) {
	tl.messages = append(tl.messages, "ERROR: "+format)
}

func mustReduce(t *testing.T, s filter.State, actions ...filter.Action) filter.State {
	t.Helper()
	out, err := filter.ApplyActions(s, actions)
	require.NoError(t, err)
	return out
}

func TestNewEngine(t *testing.T) {
	engine := NewEngine(nil, "")

	assert.NotNil(t, engine.Catalog, "Should use the built-in catalog")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.Equal(t, aggregate.PolicyMean, engine.Policy())
}

func TestEngine_SetLogger(t *testing.T) {
	engine := NewEngine(nil, aggregate.PolicyMean)

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestSummary_FirstQuarter(t *testing.T) {
	engine := NewEngine(nil, aggregate.PolicyMean)
	s := mustReduce(t, filter.Default(domain.VariantSummary),
		filter.Set{Key: filter.KeyHorizonEnd, Value: "mar-25"})

	v := engine.Summary(s)

	assert.Equal(t, []string{"Jan-25", "Feb-25", "Mar-25"}, v.Labels)
	require.Len(t, v.Rows, 2)
	assert.Equal(t, domain.ScenarioJun25, v.Rows[0].Scenario)
	assert.Equal(t, "Jun'25", v.Rows[0].Label)
	assert.Equal(t, []string{"$26", "$24", "$27"}, v.Rows[0].Cells)
	assert.Equal(t, "26", v.Rows[0].Values[0].Decimal.String())
	assert.Equal(t, "Net Revenue ($) - Brand A (Jan-25 - Mar-25)", v.Title)
	assert.False(t, v.UsedFallback)
	assert.Equal(t, "0", v.YDomain.Min.String())
	assert.Equal(t, "40", v.YDomain.Max.String())
}

func TestSummary_SingleMonthForEverySeries(t *testing.T) {
	engine := NewEngine(nil, aggregate.PolicyMean)
	for _, brand := range engine.Catalog.Brands() {
		for _, metric := range engine.Catalog.Metrics(brand) {
			s := mustReduce(t, filter.Default(domain.VariantSummary),
				filter.Set{Key: filter.KeyBrand, Value: brand},
				filter.Set{Key: filter.KeyMetric, Value: metric},
				filter.Set{Key: filter.KeyHorizonStart, Value: "may-26"},
				filter.Set{Key: filter.KeyHorizonEnd, Value: "may-26"})

			v := engine.Summary(s)
			assert.Equal(t, []string{"May-26"}, v.Labels, "%s/%s", brand, metric)
			for _, r := range v.Rows {
				require.Len(t, r.Values, 1)
				assert.True(t, r.Values[0].Valid, "%s/%s %s", brand, metric, r.Scenario)
			}
		}
	}
}

func TestSummary_LineAndIndication(t *testing.T) {
	engine := NewEngine(nil, aggregate.PolicyMean)
	s := mustReduce(t, filter.Default(domain.VariantSummary),
		filter.Set{Key: filter.KeyLine, Value: domain.Line2L},
		filter.Set{Key: filter.KeyHorizonEnd, Value: "jan-25"})

	v := engine.Summary(s)
	require.Len(t, v.Rows, 2)
	assert.Equal(t, "$19.5", v.Rows[0].Cells[0], "26 * 0.75")

	s = mustReduce(t, s, filter.Set{Key: filter.KeyIndication, Value: domain.IndicationC})
	v = engine.Summary(s)
	assert.Equal(t, "$12.7", v.Rows[0].Cells[0], "26 * 0.75 * 0.65 = 12.675")
}

func TestSummary_Annual(t *testing.T) {
	tests := []struct {
		name   string
		policy aggregate.Policy
		jun    []string
	}{
		{"mean", aggregate.PolicyMean, []string{"$30.9", "$39.9", "-"}},
		{"first", aggregate.PolicyFirst, []string{"$26", "$37", "-"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(nil, tt.policy)
			s := mustReduce(t, filter.Default(domain.VariantSummary),
				filter.Set{Key: filter.KeyGranularity, Value: "annually"},
				filter.Set{Key: filter.KeyHorizonEnd, Value: "2027"})

			v := engine.Summary(s)
			assert.Equal(t, []string{"2025", "2026", "2027"}, v.Labels)
			require.Len(t, v.Rows, 2)
			assert.Equal(t, tt.jun, v.Rows[0].Cells)
			assert.False(t, v.Rows[0].Values[2].Valid, "a year without months has no data")
		})
	}
}

func TestSummary_AnnualPointCount(t *testing.T) {
	engine := NewEngine(nil, aggregate.PolicyMean)
	s := mustReduce(t, filter.Default(domain.VariantSummary),
		filter.Set{Key: filter.KeyGranularity, Value: "annually"},
		filter.Set{Key: filter.KeyHorizonStart, Value: "2026"},
		filter.Set{Key: filter.KeyHorizonEnd, Value: "2030"})

	v := engine.Summary(s)
	assert.Len(t, v.Labels, 5)
	for _, r := range v.Rows {
		assert.Len(t, r.Cells, 5)
	}
	assert.Equal(t, "Net Revenue ($) - Brand A (2026 - 2030)", v.Title)
}

func TestSummary_ScenarioSelection(t *testing.T) {
	engine := NewEngine(nil, aggregate.PolicyMean)
	both := engine.Summary(filter.Default(domain.VariantSummary))

	onlyNov := mustReduce(t, filter.Default(domain.VariantSummary), filter.ToggleScenario{ID: domain.ScenarioJun25})
	v := engine.Summary(onlyNov)
	require.Len(t, v.Rows, 1)
	assert.Equal(t, domain.ScenarioNov25, v.Rows[0].Scenario)
	assert.Equal(t, both.Rows[1].Cells, v.Rows[0].Cells, "remaining rows keep their values")
	assert.Equal(t, both.YDomain, v.YDomain, "domain covers every scenario")

	none := mustReduce(t, onlyNov, filter.SetScenarios{})
	assert.Empty(t, engine.Summary(none).Rows)
	assert.True(t, engine.Summary(none).Empty())
}

func TestSummary_Fallback(t *testing.T) {
	engine := NewEngine(nil, aggregate.PolicyMean)
	log := &TestLogger{}
	engine.SetLogger(log)

	s := mustReduce(t, filter.Default(domain.VariantSummary),
		filter.Set{Key: filter.KeyBrand, Value: domain.BrandB},
		filter.Set{Key: filter.KeyMetric, Value: domain.MetricDoseMonth})

	v := engine.Summary(s)
	assert.True(t, v.UsedFallback)
	assert.Equal(t, domain.BrandA, v.Brand)
	assert.Equal(t, domain.MetricCompliance, v.SeriesMetric)
	assert.Equal(t, "85", v.Rows[0].Cells[0])
	assert.Equal(t, "Dose/Month - Brand B (Jan-25 - Aug-26)", v.Title)
	assert.NotEmpty(t, log.messages)
}

func TestSummary_RowsAlignWithLabels(t *testing.T) {
	// Catalog built without validation, holding a three-month series.
	catalog := dataset.Default()
	short := []decimal.Decimal{decimal.NewFromInt(1), decimal.NewFromInt(2), decimal.NewFromInt(3)}
	catalog.AddMonthly("brand-d", domain.MetricNetRevenue, map[domain.ScenarioID][]decimal.Decimal{
		domain.ScenarioJun25: short,
		domain.ScenarioNov25: short,
	})
	engine := NewEngine(catalog, aggregate.PolicyMean)

	s := filter.Default(domain.VariantSummary)
	s.Brand = "brand-d"
	v := engine.Summary(s)

	assert.False(t, v.UsedFallback)
	require.Len(t, v.Labels, 20)
	require.Len(t, v.Rows, 2)
	for _, row := range v.Rows {
		assert.Len(t, row.Values, len(v.Labels), row.Label)
		assert.Len(t, row.Cells, len(v.Labels), row.Label)
		assert.Equal(t, "$3", row.Cells[2])
		assert.Equal(t, unit.NoData, row.Cells[3])
		assert.Equal(t, unit.NoData, row.Cells[19])
	}
}

func TestSummary_YDomain(t *testing.T) {
	engine := NewEngine(nil, aggregate.PolicyMean)
	tests := []struct {
		metric   string
		min, max string
	}{
		{domain.MetricNetRevenue, "0", "60"},
		{domain.MetricCompliance, "0", "100"},
		{domain.MetricWACPrice, "2400", "2800"},
		{domain.MetricDoseMonth, "0", "6"},
	}

	for _, tt := range tests {
		s := mustReduce(t, filter.Default(domain.VariantSummary), filter.Set{Key: filter.KeyMetric, Value: tt.metric})
		v := engine.Summary(s)
		assert.Equal(t, tt.min, v.YDomain.Min.String(), tt.metric)
		assert.Equal(t, tt.max, v.YDomain.Max.String(), tt.metric)
	}

	s := filter.Default(domain.VariantSummary)
	s.HorizonStart, s.HorizonEnd = "aug-26", "jan-25"
	v := engine.Summary(s)
	assert.Empty(t, v.Labels)
	assert.Equal(t, "10", v.YDomain.Max.String())
}

func TestSummary_Cache(t *testing.T) {
	engine := NewEngine(nil, aggregate.PolicyMean)
	s := filter.Default(domain.VariantSummary)

	first := engine.Summary(s)
	first.Rows[0].Cells[0] = "tampered"
	second := engine.Summary(s)

	assert.Equal(t, "$26", second.Rows[0].Cells[0], "cached views are copies")
	stats := engine.CacheStats()
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 1, stats.Misses)
}

func TestCacheEvictsOldest(t *testing.T) {
	m := newMemo[int](2)
	m.put("a", 1)
	m.put("b", 2)
	m.put("c", 3)

	_, ok := m.get("a")
	assert.False(t, ok)
	v, ok := m.get("c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, m.len())
}

func TestAssumptions(t *testing.T) {
	engine := NewEngine(nil, aggregate.PolicyMean)
	s := mustReduce(t, filter.Default(domain.VariantAssumptions), filter.Set{Key: filter.KeyBrand, Value: domain.BrandB})

	v := engine.Assumptions(s)
	assert.Equal(t, "Assumptions - Brand B (Jan-25 - Aug-26)", v.Title)
	assert.Len(t, v.Labels, 20)
	require.Len(t, v.Groups, 2)
	assert.Equal(t, "Jun'25", v.Groups[0].Label)
	require.Len(t, v.Groups[0].Lines, 5)

	share := v.Groups[0].Lines[0]
	assert.Equal(t, "Market Share", share.MetricLabel)
	assert.Equal(t, "1L", share.LoT)
	assert.Equal(t, "Mono", share.Regime)
	assert.Equal(t, "3%", share.Cells[0])

	wac := v.Groups[0].Lines[2]
	assert.Equal(t, "$1,950", wac.Cells[19])
	assert.Equal(t, "", wac.LoT)
}

func TestAssumptions_LineRelabel(t *testing.T) {
	engine := NewEngine(nil, aggregate.PolicyMean)
	s := mustReduce(t, filter.Default(domain.VariantAssumptions), filter.Set{Key: filter.KeyLine, Value: domain.Line2L})

	v := engine.Assumptions(s)
	share := v.Groups[0].Lines[0]
	assert.Equal(t, "2L", share.LoT)
	assert.Equal(t, "2%", share.Cells[0], "values are not rescaled")
}

func TestAssumptions_AnnualAndFallback(t *testing.T) {
	engine := NewEngine(nil, aggregate.PolicyMean)
	s := mustReduce(t, filter.Default(domain.VariantAssumptions),
		filter.Set{Key: filter.KeyBrand, Value: "brand-q"},
		filter.Set{Key: filter.KeyGranularity, Value: "annually"},
		filter.Set{Key: filter.KeyScenarios, Value: "nov25"})

	v := engine.Assumptions(s)
	assert.True(t, v.UsedFallback)
	assert.Equal(t, domain.BrandA, v.Brand)
	assert.Equal(t, []string{"2025", "2026"}, v.Labels)
	require.Len(t, v.Groups, 1)
	assert.Equal(t, domain.ScenarioNov25, v.Groups[0].Scenario)
	// (2+2+2+3+4+5+7+7+7+8+8+10) / 12 = 5.4167
	assert.Equal(t, []string{"5%", "5%"}, v.Groups[0].Lines[0].Cells)
}

func TestBridge_Default(t *testing.T) {
	engine := NewEngine(nil, aggregate.PolicyMean)
	v := engine.Bridge(filter.Default(domain.VariantWaterfall))

	assert.Equal(t, "1.04", v.Scale.String())
	assert.Equal(t, "Bridge Analysis - Brand A - Total Demand (Jun'25 vs Nov'25) | Jan-25 - Dec-25", v.Title)
	require.Len(t, v.Bars, 4)

	cells := make([]string, len(v.Bars))
	for i, b := range v.Bars {
		cells[i] = b.Cell
	}
	assert.Equal(t, []string{"$224.4", "$38.9", "-$5.4", "$257.9"}, cells)

	assert.Equal(t, "0", v.Bars[0].Start.String())
	assert.Equal(t, "224.4", v.Bars[1].Start.String())
	assert.Equal(t, "257.9", v.Bars[2].Start.String(), "224.4 + 38.9 - 5.4")
	assert.Equal(t, "5.4", v.Bars[2].Height.String())
	assert.Equal(t, "0", v.Bars[3].Start.String())

	assert.Equal(t, "0", v.YDomain.Min.String())
	assert.Equal(t, "290", v.YDomain.Max.String())
	assert.False(t, v.UsedFallback)
}

func TestBridge_ReversedAndFallback(t *testing.T) {
	engine := NewEngine(nil, aggregate.PolicyMean)
	s := mustReduce(t, filter.Default(domain.VariantWaterfall),
		filter.Set{Key: filter.KeyScenarioFrom, Value: "nov25"},
		filter.Set{Key: filter.KeyScenarioTo, Value: "jun25"},
		filter.Set{Key: filter.KeyHorizonEnd, Value: "jan-25"})

	v := engine.Bridge(s)
	assert.Equal(t, "0.82", v.Scale.String())
	assert.Equal(t, "Nov'25", v.Bars[0].Name)
	assert.Equal(t, domain.StepDecrease, v.Bars[1].Kind)
	assert.Contains(t, v.Title, "(Nov'25 vs Jun'25)")
	assert.False(t, v.UsedFallback)

	same := mustReduce(t, s, filter.Set{Key: filter.KeyScenarioTo, Value: "nov25"})
	fb := engine.Bridge(same)
	assert.True(t, fb.UsedFallback)
	assert.Equal(t, "Jun'25", fb.Bars[0].Name)
	assert.Contains(t, fb.Title, "(Jun'25 vs Nov'25)")

	bogus := mustReduce(t, filter.Default(domain.VariantWaterfall), filter.Set{Key: filter.KeyMetric, Value: domain.MetricDiscount})
	bv := engine.Bridge(bogus)
	assert.True(t, bv.UsedFallback)
	assert.Equal(t, domain.MetricTotalDemand, bv.Metric)
}

func TestHorizonScale(t *testing.T) {
	assert.Equal(t, "0.8", HorizonScale(0).String())
	assert.Equal(t, "0.9", HorizonScale(5).String())
	assert.Equal(t, "1.04", HorizonScale(20).String())
}

func TestDrilldown(t *testing.T) {
	engine := NewEngine(nil, aggregate.PolicyMean)
	v := engine.Drilldown(filter.Default(domain.VariantWaterfall))

	assert.Equal(t, "Bridge Analysis - Indication A - (Jun'25 vs Nov'25)", v.Title)
	require.Len(t, v.Bars, 9)
	assert.Equal(t, "$89.0", v.Bars[0].Cell)
	assert.Equal(t, "-$0.9", v.Bars[1].Cell)
	assert.Equal(t, "88.1", v.Bars[1].Start.String())
	assert.Equal(t, "75", v.YDomain.Min.String())
	assert.Equal(t, "115", v.YDomain.Max.String())

	all := mustReduce(t, filter.Default(domain.VariantWaterfall), filter.Set{Key: filter.KeyIndication, Value: domain.IndicationAll})
	assert.Contains(t, engine.Drilldown(all).Title, "All Indications")
}
