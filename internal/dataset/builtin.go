package dataset

import (
	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/shopspring/decimal"
)

const actualsTill = "Actuals till Sep'25"

// Default returns the built-in forecast catalog.
func Default() *Catalog {
	c := NewCatalog()
	addSeries(c)
	addAssumptions(c)
	addBridges(c)
	addDrilldowns(c)
	return c
}

func addSeries(c *Catalog) {
	monthly := func(brand, metric string, jun, nov []float64) {
		c.AddMonthly(brand, metric, map[domain.ScenarioID][]decimal.Decimal{
			domain.ScenarioJun25: decimals(jun),
			domain.ScenarioNov25: decimals(nov),
		})
	}

	monthly(domain.BrandA, domain.MetricNetRevenue,
		[]float64{26, 24, 27, 29, 30, 30, 34, 33, 35, 36, 31, 36, 37, 38, 39, 39, 40, 41, 42, 43},
		[]float64{26, 24, 27, 29, 28, 28, 32, 31, 33, 36, 32, 37, 38, 38, 39, 40, 41, 42, 42, 43})
	monthly(domain.BrandA, domain.MetricMarketShare, ramp(5, 20), cat([]float64{5, 6}, ramp(6, 18)))
	monthly(domain.BrandA, domain.MetricCompliance, rep(85, 20), rep(85, 20))
	monthly(domain.BrandA, domain.MetricDoseMonth, rep(4.1, 20), rep(4.1, 20))
	monthly(domain.BrandA, domain.MetricAccessPercent, rep(100, 20), rep(100, 20))
	wacA := cat(rep(2513, 6), rep(2564, 6), rep(2615, 6), rep(2667, 2))
	monthly(domain.BrandA, domain.MetricWACPrice, wacA, wacA)
	monthly(domain.BrandA, domain.MetricDiscount,
		cat(rep(20, 6), rep(19, 6), rep(20, 6), rep(21, 2)),
		cat(rep(20, 12), rep(21, 8)))

	monthly(domain.BrandB, domain.MetricNetRevenue, ramp(18, 20), ramp(17, 20))
	monthly(domain.BrandB, domain.MetricMarketShare, ramp(8, 20), ramp(7, 20))

	monthly(domain.BrandC, domain.MetricNetRevenue, ramp(45, 20), ramp(44, 20))
	monthly(domain.BrandC, domain.MetricMarketShare, ramp(12, 20), ramp(11, 20))
}

// assumptionSet is one scenario's block of assumption rows.
type assumptionSet struct {
	share, compliance, wac, discount, revenue []float64
}

func (a assumptionSet) rows(id domain.ScenarioID) []domain.AssumptionRow {
	row := func(metric string, values []float64) domain.AssumptionRow {
		return domain.AssumptionRow{Scenario: id, Metric: metric, ActualsTill: actualsTill, Values: decimals(values)}
	}
	share := row(domain.MetricMarketShare, a.share)
	share.LoT, share.Regime = "1L", "Mono"
	return []domain.AssumptionRow{
		share,
		row(domain.MetricCompliance, a.compliance),
		row(domain.MetricWACPrice, a.wac),
		row(domain.MetricDiscount, a.discount),
		row(domain.MetricNetRevenue, a.revenue),
	}
}

func addAssumptions(c *Catalog) {
	set := func(brand string, jun, nov assumptionSet) {
		c.SetAssumptions(brand, append(jun.rows(domain.ScenarioJun25), nov.rows(domain.ScenarioNov25)...))
	}

	wacA := cat(rep(2513, 6), rep(2564, 5), rep(2615, 6), rep(2667, 3))
	set(domain.BrandA,
		assumptionSet{
			share:      cat([]float64{2, 3, 3, 3, 4, 4, 6, 7, 7, 7, 8, 9}, rep(5, 8)),
			compliance: rep(85, 20),
			wac:        wacA,
			discount:   cat(rep(20, 6), rep(19, 5), rep(20, 5), rep(21, 4)),
			revenue:    []float64{73, 65, 70, 71, 71, 72, 77, 74, 77, 82, 75, 91, 84, 73, 77, 75, 73, 72, 74, 70},
		},
		assumptionSet{
			share:      cat([]float64{2, 2, 2, 3, 4, 5, 7, 7, 7, 8, 8, 10}, rep(5, 8)),
			compliance: rep(85, 20),
			wac:        wacA,
			discount:   cat(rep(20, 12), rep(21, 8)),
			revenue:    []float64{73, 65, 70, 71, 71, 72, 77, 74, 79, 83, 73, 90, 82, 79, 80, 77, 74, 72, 76, 79},
		})

	complianceB := cat(rep(80, 6), rep(82, 6), rep(84, 8))
	wacB := cat(rep(1800, 6), rep(1850, 5), rep(1900, 6), rep(1950, 3))
	set(domain.BrandB,
		assumptionSet{
			share:      cat([]float64{3, 4, 4, 4, 5, 5, 7, 8, 8, 8, 9, 10}, rep(6, 8)),
			compliance: complianceB,
			wac:        wacB,
			discount:   cat(rep(18, 6), rep(17, 5), rep(18, 5), rep(19, 4)),
			revenue:    []float64{55, 50, 52, 53, 54, 55, 58, 56, 59, 62, 57, 70, 65, 58, 61, 59, 58, 57, 59, 56},
		},
		assumptionSet{
			share:      cat([]float64{3, 3, 3, 4, 5, 6, 8, 8, 8, 9, 9, 11}, rep(6, 8)),
			compliance: complianceB,
			wac:        wacB,
			discount:   cat(rep(18, 12), rep(19, 8)),
			revenue:    []float64{55, 50, 52, 53, 54, 55, 58, 56, 60, 63, 55, 69, 62, 60, 61, 59, 57, 55, 58, 60},
		})

	wacC := cat(rep(3200, 6), rep(3280, 5), rep(3360, 6), rep(3440, 3))
	set(domain.BrandC,
		assumptionSet{
			share:      cat([]float64{5, 6, 6, 6, 7, 7, 9, 10, 10, 10, 11, 12}, rep(8, 8)),
			compliance: rep(90, 20),
			wac:        wacC,
			discount:   cat(rep(15, 6), rep(14, 5), rep(15, 5), rep(16, 4)),
			revenue:    []float64{95, 88, 92, 94, 95, 96, 102, 98, 101, 107, 99, 118, 110, 96, 101, 99, 96, 94, 97, 92},
		},
		assumptionSet{
			share:      cat([]float64{5, 5, 5, 6, 7, 8, 10, 10, 10, 11, 11, 13}, rep(8, 8)),
			compliance: rep(90, 20),
			wac:        wacC,
			discount:   cat(rep(15, 12), rep(16, 8)),
			revenue:    []float64{95, 88, 92, 94, 95, 96, 102, 98, 103, 108, 95, 117, 107, 103, 104, 101, 97, 94, 99, 103},
		})
}

// bridge builds a forward bridge from a start base, named deltas and an end base.
func bridge(from string, start float64, names []string, deltas []float64, to string, end float64) []domain.BridgeStep {
	steps := []domain.BridgeStep{{Name: from, Value: decimal.NewFromFloat(start), Kind: domain.StepBase}}
	for i, name := range names {
		kind := domain.StepIncrease
		if deltas[i] < 0 {
			kind = domain.StepDecrease
		}
		steps = append(steps, domain.BridgeStep{Name: name, Value: decimal.NewFromFloat(deltas[i]), Kind: kind})
	}
	return append(steps, domain.BridgeStep{Name: to, Value: decimal.NewFromFloat(end), Kind: domain.StepBase})
}

func addBridges(c *Catalog) {
	demand := []string{"Demand", "Inventory & Pricing"}
	revenue := []string{"Volume Growth", "Price Impact"}
	forward := func(brand string, td, nr [4]float64) {
		c.SetBridge(brand, domain.MetricTotalDemand, DefaultPairKey,
			bridge("Jun'25", td[0], demand, td[1:3], "Nov'25", td[3]))
		c.SetBridge(brand, domain.MetricNetRevenue, DefaultPairKey,
			bridge("Jun'25", nr[0], revenue, nr[1:3], "Nov'25", nr[3]))
	}

	forward(domain.BrandA, [4]float64{215.8, 37.4, -5.2, 248.0}, [4]float64{180.5, 25.3, -8.1, 197.7})
	forward(domain.BrandB, [4]float64{145.2, 22.8, -3.5, 164.5}, [4]float64{120.3, 18.5, -5.2, 133.6})
	forward(domain.BrandC, [4]float64{320.5, 48.2, -12.3, 356.4}, [4]float64{275.8, 42.1, -15.5, 302.4})
}

func addDrilldowns(c *Catalog) {
	factors := []string{
		"1L Market Pt", "1L Share", "1L Persistency",
		"2L Market Pt", "2L Share",
		"3L+ Market Pt", "3L+ Share",
	}
	set := func(brand string, start float64, deltas []float64, end float64) {
		c.SetDrilldown(brand, DefaultPairKey, bridge("Jun'25", start, factors, deltas, "Nov'25", end))
	}

	set(domain.BrandA, 89.0, []float64{-0.9, 0.8, 0.9, -0.1, 4.1, 3.3, 5.1}, 102.9)
	set(domain.BrandB, 65.2, []float64{-0.5, 1.2, 0.6, -0.2, 2.8, 2.1, 3.4}, 74.6)
	set(domain.BrandC, 145.5, []float64{-1.2, 2.1, 1.5, -0.3, 6.2, 4.8, 7.2}, 165.8)
}

func decimals(values []float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

func rep(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// ramp returns n consecutive whole values starting at from.
func ramp(from float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = from + float64(i)
	}
	return out
}

func cat(parts ...[]float64) []float64 {
	var out []float64
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
