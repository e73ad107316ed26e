// Package dataset holds the static forecast tables the dashboard slices:
// monthly metric series, assumption rows and scenario bridges per brand.
package dataset

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/rgehrsitz/rxdash/internal/horizon"
	"github.com/rgehrsitz/rxdash/internal/scenario"
	"github.com/shopspring/decimal"
)

// Fallback identifiers used when a lookup misses.
const (
	FallbackBrand        = domain.BrandA
	FallbackMetric       = domain.MetricCompliance
	FallbackBridgeMetric = domain.MetricTotalDemand
	DefaultPairKey       = "jun25-nov25"
)

// Catalog is an immutable-after-build collection of forecast tables.
type Catalog struct {
	series      map[string]map[string]domain.MetricSeries
	assumptions map[string][]domain.AssumptionRow
	bridges     map[string]map[string]map[string][]domain.BridgeStep
	drilldowns  map[string]map[string][]domain.BridgeStep
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		series:      make(map[string]map[string]domain.MetricSeries),
		assumptions: make(map[string][]domain.AssumptionRow),
		bridges:     make(map[string]map[string]map[string][]domain.BridgeStep),
		drilldowns:  make(map[string]map[string][]domain.BridgeStep),
	}
}

// AddSeries registers a series, replacing any series with the same key.
func (c *Catalog) AddSeries(s domain.MetricSeries) {
	c.series[s.Brand] = ensure(c.series[s.Brand])
	c.series[s.Brand][s.Metric] = s.Clone()
}

// AddMonthly registers a series from positional values aligned with the
// monthly horizon catalog.
func (c *Catalog) AddMonthly(brand, metric string, values map[domain.ScenarioID][]decimal.Decimal) {
	s := domain.MetricSeries{Brand: brand, Metric: metric}
	n := 0
	for _, v := range values {
		if len(v) > n {
			n = len(v)
		}
	}
	months := horizon.Monthly.Options()
	for i := 0; i < n; i++ {
		p := domain.MonthPoint{Values: make(map[domain.ScenarioID]decimal.Decimal, len(values))}
		if i < len(months) {
			p.Token, p.Label = months[i].Token, months[i].Label
		}
		for id, v := range values {
			if i < len(v) {
				p.Values[id] = v[i]
			}
		}
		s.Points = append(s.Points, p)
	}
	c.series[brand] = ensure(c.series[brand])
	c.series[brand][metric] = s
}

// SetAssumptions replaces the assumption rows of a brand.
func (c *Catalog) SetAssumptions(brand string, rows []domain.AssumptionRow) {
	out := make([]domain.AssumptionRow, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	c.assumptions[brand] = out
}

// SetBridge stores the bridge steps of (brand, metric) for a pair key.
func (c *Catalog) SetBridge(brand, metric, pairKey string, steps []domain.BridgeStep) {
	if c.bridges[brand] == nil {
		c.bridges[brand] = make(map[string]map[string][]domain.BridgeStep)
	}
	if c.bridges[brand][metric] == nil {
		c.bridges[brand][metric] = make(map[string][]domain.BridgeStep)
	}
	c.bridges[brand][metric][pairKey] = append([]domain.BridgeStep(nil), steps...)
}

// SetDrilldown stores the demand drilldown of a brand for a pair key.
func (c *Catalog) SetDrilldown(brand, pairKey string, steps []domain.BridgeStep) {
	if c.drilldowns[brand] == nil {
		c.drilldowns[brand] = make(map[string][]domain.BridgeStep)
	}
	c.drilldowns[brand][pairKey] = append([]domain.BridgeStep(nil), steps...)
}

// Brands returns the brands that have series, sorted.
func (c *Catalog) Brands() []string {
	brands := make([]string, 0, len(c.series))
	for b := range c.series {
		brands = append(brands, b)
	}
	sort.Strings(brands)
	return brands
}

// Metrics returns the metrics recorded for a brand, sorted.
func (c *Catalog) Metrics(brand string) []string {
	metrics := make([]string, 0, len(c.series[brand]))
	for m := range c.series[brand] {
		metrics = append(metrics, m)
	}
	sort.Strings(metrics)
	return metrics
}

// Selection is the result of a series lookup.
type Selection struct {
	Series   domain.MetricSeries
	Brand    string // brand the data came from
	Metric   string // metric the data came from
	Fallback bool   // true when (Brand, Metric) differs from the request
}

// Select returns the series for (brand, metric). An unknown brand resolves to
// the fallback brand; a metric missing for the resolved brand resolves to the
// fallback brand's compliance series. Either case sets Fallback.
func (c *Catalog) Select(brand, metric string) Selection {
	sel := Selection{Brand: brand, Metric: metric}
	brandData, ok := c.series[brand]
	if !ok {
		brandData = c.series[FallbackBrand]
		sel.Brand = FallbackBrand
		sel.Fallback = true
	}
	s, ok := brandData[metric]
	if !ok {
		s = c.series[FallbackBrand][FallbackMetric]
		sel.Brand, sel.Metric = FallbackBrand, FallbackMetric
		sel.Fallback = true
	}
	sel.Series = s.Clone()
	return sel
}

// Assumptions returns a copy of the brand's assumption rows, the brand they
// came from and whether the fallback brand was used.
func (c *Catalog) Assumptions(brand string) ([]domain.AssumptionRow, string, bool) {
	rows, ok := c.assumptions[brand]
	resolved := brand
	if !ok {
		rows = c.assumptions[FallbackBrand]
		resolved = FallbackBrand
	}
	out := make([]domain.AssumptionRow, len(rows))
	for i, r := range rows {
		out[i] = r.Clone()
	}
	return out, resolved, !ok
}

// BridgeLookup is the result of a bridge or drilldown lookup.
type BridgeLookup struct {
	Steps    []domain.BridgeStep
	Brand    string
	Metric   string
	Pair     string // pair key the steps belong to
	Fallback bool
}

// Bridge returns the steps of (brand, metric) for pairKey. Unknown brands
// fall back to brand-a, unknown metrics to total demand. A pair stored only
// in the opposite direction is derived by reversal.
func (c *Catalog) Bridge(brand, metric, pairKey string) BridgeLookup {
	res := BridgeLookup{Brand: brand, Metric: metric}
	brandData, ok := c.bridges[brand]
	if !ok {
		brandData = c.bridges[FallbackBrand]
		res.Brand = FallbackBrand
		res.Fallback = true
	}
	metricData, ok := brandData[metric]
	if !ok {
		metricData = brandData[FallbackBridgeMetric]
		res.Metric = FallbackBridgeMetric
		res.Fallback = true
	}
	res.Steps, res.Pair = pairSteps(metricData, pairKey)
	if res.Pair != pairKey {
		res.Fallback = true
	}
	return res
}

// Drilldown returns the total demand breakdown of a brand for pairKey.
func (c *Catalog) Drilldown(brand, pairKey string) BridgeLookup {
	res := BridgeLookup{Brand: brand, Metric: domain.MetricTotalDemand}
	brandData, ok := c.drilldowns[brand]
	if !ok {
		brandData = c.drilldowns[FallbackBrand]
		res.Brand = FallbackBrand
		res.Fallback = true
	}
	res.Steps, res.Pair = pairSteps(brandData, pairKey)
	if res.Pair != pairKey {
		res.Fallback = true
	}
	return res
}

// pairSteps finds the steps for key, deriving them from the reversed key when
// needed, and returns the key the steps belong to. A key with no data in
// either direction resolves to DefaultPairKey.
func pairSteps(byPair map[string][]domain.BridgeStep, key string) ([]domain.BridgeStep, string) {
	if steps, ok := byPair[key]; ok {
		return append([]domain.BridgeStep(nil), steps...), key
	}
	if steps, ok := byPair[reverseKey(key)]; ok {
		return domain.ReverseBridge(steps), key
	}
	return append([]domain.BridgeStep(nil), byPair[DefaultPairKey]...), DefaultPairKey
}

func reverseKey(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == '-' {
			return key[i+1:] + "-" + key[:i]
		}
	}
	return key
}

// Validate checks the structural invariants of the catalog. The fallback
// series must exist. Every series covers the whole monthly catalog with the
// same declared scenarios in each month, and the series of a brand share one
// month alignment. Assumption rows cover the catalog and bridges open and
// close with base bars.
func (c *Catalog) Validate() error {
	if _, ok := c.series[FallbackBrand][FallbackMetric]; !ok {
		return fmt.Errorf("fallback series %s/%s is missing", FallbackBrand, FallbackMetric)
	}
	for _, brand := range c.Brands() {
		var reference []string
		var refMetric string
		for _, metric := range c.Metrics(brand) {
			s := c.series[brand][metric]
			if len(s.Points) != horizon.Monthly.Len() {
				return fmt.Errorf("series %s/%s: expected %d months, got %d",
					brand, metric, horizon.Monthly.Len(), len(s.Points))
			}
			tokens := make([]string, len(s.Points))
			for i, p := range s.Points {
				if !horizon.Monthly.Contains(p.Token) {
					return fmt.Errorf("series %s/%s: month %d has unknown token %q", brand, metric, i, p.Token)
				}
				if len(p.Values) == 0 {
					return fmt.Errorf("series %s/%s: month %s has no values", brand, metric, p.Token)
				}
				for id := range p.Values {
					if !scenario.Known(id) {
						return fmt.Errorf("series %s/%s: unknown scenario %q", brand, metric, id)
					}
					if _, ok := s.Points[0].Values[id]; !ok {
						return fmt.Errorf("series %s/%s: scenario %s first appears in %s", brand, metric, id, p.Token)
					}
				}
				if len(p.Values) != len(s.Points[0].Values) {
					return fmt.Errorf("series %s/%s: month %s has %d scenarios, expected %d",
						brand, metric, p.Token, len(p.Values), len(s.Points[0].Values))
				}
				tokens[i] = p.Token
			}
			if reference == nil {
				reference, refMetric = tokens, metric
				continue
			}
			if !equalStrings(reference, tokens) {
				return fmt.Errorf("series %s/%s is not aligned with %s/%s", brand, metric, brand, refMetric)
			}
		}
	}
	for brand, rows := range c.assumptions {
		for i, r := range rows {
			if len(r.Values) != horizon.Monthly.Len() {
				return fmt.Errorf("assumptions %s row %d (%s): expected %d values, got %d",
					brand, i, r.Metric, horizon.Monthly.Len(), len(r.Values))
			}
		}
	}
	for brand, metrics := range c.bridges {
		for metric, pairs := range metrics {
			for key, steps := range pairs {
				if err := validateBridge(steps); err != nil {
					return fmt.Errorf("bridge %s/%s/%s: %w", brand, metric, key, err)
				}
			}
		}
	}
	for brand, pairs := range c.drilldowns {
		for key, steps := range pairs {
			if err := validateBridge(steps); err != nil {
				return fmt.Errorf("drilldown %s/%s: %w", brand, key, err)
			}
		}
	}
	return nil
}

func validateBridge(steps []domain.BridgeStep) error {
	if len(steps) < 2 {
		return fmt.Errorf("expected at least 2 steps, got %d", len(steps))
	}
	if steps[0].Kind != domain.StepBase || steps[len(steps)-1].Kind != domain.StepBase {
		return fmt.Errorf("first and last steps must be base bars")
	}
	for _, s := range steps[1 : len(steps)-1] {
		switch s.Kind {
		case domain.StepIncrease, domain.StepDecrease:
		default:
			return fmt.Errorf("step %q has invalid kind %q", s.Name, s.Kind)
		}
	}
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func ensure(m map[string]domain.MetricSeries) map[string]domain.MetricSeries {
	if m == nil {
		return make(map[string]domain.MetricSeries)
	}
	return m
}
