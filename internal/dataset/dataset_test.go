package dataset

import (
	"testing"

	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/rgehrsitz/rxdash/internal/horizon"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefaultSeriesAlignment(t *testing.T) {
	c := Default()
	for _, brand := range c.Brands() {
		for _, metric := range c.Metrics(brand) {
			sel := c.Select(brand, metric)
			assert.False(t, sel.Fallback, "%s/%s", brand, metric)
			assert.Equal(t, horizon.Monthly.Len(), sel.Series.Len(), "%s/%s", brand, metric)
		}
	}
	assert.Equal(t, []string{domain.BrandA, domain.BrandB, domain.BrandC}, c.Brands())
}

func TestSelectExact(t *testing.T) {
	sel := Default().Select(domain.BrandA, domain.MetricNetRevenue)

	assert.False(t, sel.Fallback)
	assert.Equal(t, domain.BrandA, sel.Brand)
	assert.Equal(t, "jan-25", sel.Series.Points[0].Token)
	assert.Equal(t, "26", sel.Series.Points[0].Values[domain.ScenarioJun25].String())
	assert.Equal(t, "28", sel.Series.Points[4].Values[domain.ScenarioNov25].String())
	assert.Equal(t, "43", sel.Series.Points[19].Values[domain.ScenarioJun25].String())
}

func TestSelectFallback(t *testing.T) {
	c := Default()

	// brand-b carries no dose-month series
	sel := c.Select(domain.BrandB, domain.MetricDoseMonth)
	assert.True(t, sel.Fallback)
	assert.Equal(t, FallbackBrand, sel.Brand)
	assert.Equal(t, FallbackMetric, sel.Metric)
	assert.Equal(t, "85", sel.Series.Points[0].Values[domain.ScenarioJun25].String())

	// unknown brand resolves to brand-a first, then the metric applies
	sel = c.Select("brand-z", domain.MetricWACPrice)
	assert.True(t, sel.Fallback)
	assert.Equal(t, domain.BrandA, sel.Brand)
	assert.Equal(t, domain.MetricWACPrice, sel.Metric)
	assert.Equal(t, "2513", sel.Series.Points[0].Values[domain.ScenarioJun25].String())

	sel = c.Select(domain.BrandC, "bogus")
	assert.True(t, sel.Fallback)
	assert.Equal(t, FallbackMetric, sel.Metric)
}

func TestSelectReturnsCopy(t *testing.T) {
	c := Default()
	sel := c.Select(domain.BrandA, domain.MetricNetRevenue)
	sel.Series.Points[0].Values[domain.ScenarioJun25] = decimal.NewFromInt(-1)

	again := c.Select(domain.BrandA, domain.MetricNetRevenue)
	assert.Equal(t, "26", again.Series.Points[0].Values[domain.ScenarioJun25].String())
}

func TestMarketShareNovember(t *testing.T) {
	sel := Default().Select(domain.BrandA, domain.MetricMarketShare)
	got := make([]string, 0, 4)
	for _, p := range sel.Series.Points[:4] {
		got = append(got, p.Values[domain.ScenarioNov25].String())
	}
	assert.Equal(t, []string{"5", "6", "6", "7"}, got)
	assert.Equal(t, "23", sel.Series.Points[19].Values[domain.ScenarioNov25].String())
}

func TestAssumptions(t *testing.T) {
	c := Default()
	rows, brand, fallback := c.Assumptions(domain.BrandB)
	require.Len(t, rows, 10)
	assert.False(t, fallback)
	assert.Equal(t, domain.BrandB, brand)
	assert.Equal(t, domain.ScenarioJun25, rows[0].Scenario)
	assert.Equal(t, domain.MetricMarketShare, rows[0].Metric)
	assert.Equal(t, "1L", rows[0].LoT)
	assert.Equal(t, "Mono", rows[0].Regime)
	assert.Equal(t, "Actuals till Sep'25", rows[0].ActualsTill)
	assert.Equal(t, domain.ScenarioNov25, rows[5].Scenario)
	assert.Equal(t, "1950", rows[2].Values[19].String())

	_, brand, fallback = c.Assumptions("brand-x")
	assert.True(t, fallback)
	assert.Equal(t, domain.BrandA, brand)
}

func TestBridgeLookup(t *testing.T) {
	c := Default()

	fwd := c.Bridge(domain.BrandA, domain.MetricTotalDemand, "jun25-nov25")
	require.Len(t, fwd.Steps, 4)
	assert.False(t, fwd.Fallback)
	assert.Equal(t, "215.8", fwd.Steps[0].Value.String())
	assert.Equal(t, domain.StepDecrease, fwd.Steps[2].Kind)

	rev := c.Bridge(domain.BrandA, domain.MetricTotalDemand, "nov25-jun25")
	require.Len(t, rev.Steps, 4)
	assert.False(t, rev.Fallback)
	assert.Equal(t, "Nov'25", rev.Steps[0].Name)
	assert.Equal(t, "248", rev.Steps[0].Value.String())
	assert.Equal(t, "-37.4", rev.Steps[1].Value.String())
	assert.Equal(t, domain.StepIncrease, rev.Steps[2].Kind)
	assert.Equal(t, "nov25-jun25", rev.Pair)

	fb := c.Bridge("brand-q", "market-share", "jun25-jun25")
	assert.True(t, fb.Fallback)
	assert.Equal(t, domain.BrandA, fb.Brand)
	assert.Equal(t, domain.MetricTotalDemand, fb.Metric)
	assert.Equal(t, "Jun'25", fb.Steps[0].Name)
	assert.Equal(t, DefaultPairKey, fb.Pair)
}

func TestDrilldownLookup(t *testing.T) {
	c := Default()
	d := c.Drilldown(domain.BrandC, "jun25-nov25")
	require.Len(t, d.Steps, 9)
	assert.Equal(t, "145.5", d.Steps[0].Value.String())
	assert.Equal(t, "3L+ Share", d.Steps[7].Name)

	r := c.Drilldown(domain.BrandB, "nov25-jun25")
	assert.Equal(t, "74.6", r.Steps[0].Value.String())
	assert.Equal(t, "0.5", r.Steps[1].Value.String())
	assert.Equal(t, "1L Market Pt", r.Steps[1].Name)
}

func TestValidateRejectsShortSeries(t *testing.T) {
	c := Default()
	c.AddMonthly(domain.BrandB, domain.MetricCompliance, map[domain.ScenarioID][]decimal.Decimal{
		domain.ScenarioJun25: {decimal.NewFromInt(1), decimal.NewFromInt(2)},
	})
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 20 months, got 2")
}

func TestValidateRejectsScenarioGaps(t *testing.T) {
	full := make([]decimal.Decimal, horizon.Monthly.Len())
	for i := range full {
		full[i] = decimal.NewFromInt(int64(i))
	}

	c := Default()
	c.AddMonthly(domain.BrandB, domain.MetricCompliance, map[domain.ScenarioID][]decimal.Decimal{
		domain.ScenarioJun25: full,
		domain.ScenarioNov25: full[:3],
	})
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has 1 scenarios, expected 2")

	c = Default()
	c.AddMonthly(domain.BrandB, domain.MetricCompliance, map[domain.ScenarioID][]decimal.Decimal{
		domain.ScenarioJun25: full,
		"dec25":              full,
	})
	err = c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown scenario "dec25"`)
}

func TestFileApplyToRejectsShortNewBrand(t *testing.T) {
	doc := `
series:
  - brand: brand-d
    metric: net-revenue
    values:
      jun25: [1, 2, 3]
      nov25: [1, 2, 3]
`
	var f File
	require.NoError(t, yaml.Unmarshal([]byte(doc), &f))

	err := f.ApplyTo(Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "series brand-d/net-revenue: expected 20 months, got 3")
}

func TestValidateRejectsBadBridge(t *testing.T) {
	c := Default()
	c.SetBridge(domain.BrandA, domain.MetricNetRevenue, "jun25-nov25", []domain.BridgeStep{
		{Name: "x", Value: decimal.NewFromInt(1), Kind: domain.StepIncrease},
		{Name: "y", Value: decimal.NewFromInt(1), Kind: domain.StepBase},
	})
	assert.Error(t, c.Validate())
}

func TestValidateRequiresFallbackSeries(t *testing.T) {
	assert.Error(t, NewCatalog().Validate())
}

func TestFileApplyTo(t *testing.T) {
	doc := `
series:
  - brand: brand-b
    metric: compliance
    values:
      jun25: [80, 80, 80, 80, 80, 80, 82, 82, 82, 82, 82, 82, 84, 84, 84, 84, 84, 84, 84, 84]
      nov25: [80, 80, 80, 80, 80, 80, 82, 82, 82, 82, 82, 82, 84, 84, 84, 84, 84, 84, 84, 84]
drilldowns:
  - brand: brand-a
    pair: jun25-nov25
    steps:
      - {name: "Jun'25", value: 10, kind: base}
      - {name: "Share", value: 2.5, kind: increase}
      - {name: "Nov'25", value: 12.5, kind: base}
`
	var f File
	require.NoError(t, yaml.Unmarshal([]byte(doc), &f))

	c := Default()
	require.NoError(t, f.ApplyTo(c))

	sel := c.Select(domain.BrandB, domain.MetricCompliance)
	assert.False(t, sel.Fallback)
	assert.Equal(t, "84", sel.Series.Points[19].Values[domain.ScenarioNov25].String())

	d := c.Drilldown(domain.BrandA, "jun25-nov25")
	require.Len(t, d.Steps, 3)
	assert.Equal(t, "2.5", d.Steps[1].Value.String())
}

func TestFileApplyToRejectsInvalid(t *testing.T) {
	f := File{Series: []SeriesEntry{{Brand: "", Metric: domain.MetricCompliance}}}
	assert.Error(t, f.ApplyTo(Default()))

	short := File{Series: []SeriesEntry{{
		Brand:  domain.BrandA,
		Metric: domain.MetricCompliance,
		Values: map[string][]decimal.Decimal{"jun25": {decimal.NewFromInt(1)}},
	}}}
	err := short.ApplyTo(Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset validation failed")
}
