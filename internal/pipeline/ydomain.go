package pipeline

import (
	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/rgehrsitz/rxdash/internal/unit"
	"github.com/shopspring/decimal"
)

var (
	ten     = decimal.NewFromInt(10)
	hundred = decimal.NewFromInt(100)
	five    = decimal.NewFromInt(5)
)

// emptyDomain is used when a view has no values.
var emptyDomain = Domain{Min: decimal.Zero, Max: ten}

// floorTo rounds v down to a multiple of step.
func floorTo(v, step decimal.Decimal) decimal.Decimal {
	return v.Div(step).Floor().Mul(step)
}

// ceilTo rounds v up to a multiple of step.
func ceilTo(v, step decimal.Decimal) decimal.Decimal {
	return v.Div(step).Ceil().Mul(step)
}

// SummaryDomain returns the y-axis range of a summary chart for the metric.
func SummaryDomain(metric string, values []decimal.Decimal) Domain {
	if len(values) == 0 {
		return emptyDomain
	}
	lo, hi := decimal.Min(values[0], values[1:]...), decimal.Max(values[0], values[1:]...)
	switch {
	case unit.KindOf(metric) == unit.Percent:
		return Domain{Min: decimal.Zero, Max: decimal.Min(hundred, ceilTo(hi, ten).Add(ten))}
	case metric == domain.MetricWACPrice:
		return Domain{Min: floorTo(lo, hundred).Sub(hundred), Max: ceilTo(hi, hundred).Add(hundred)}
	case metric == domain.MetricDoseMonth:
		return Domain{Min: decimal.Zero, Max: hi.Ceil().Add(decimal.NewFromInt(1))}
	}
	return Domain{Min: decimal.Zero, Max: ceilTo(hi, ten).Add(ten)}
}

// BridgeDomain returns the y-axis range of a scenario bridge.
func BridgeDomain(values []decimal.Decimal) Domain {
	if len(values) == 0 {
		return emptyDomain
	}
	lo := decimal.Min(values[0], values[1:]...)
	minDomain := floorTo(lo.Sub(decimal.NewFromInt(20)), ten)
	maxDomain := ceilTo(maxAbs(values).Add(decimal.NewFromInt(30)), ten)
	return Domain{Min: decimal.Max(decimal.Zero, minDomain), Max: maxDomain}
}

// DrilldownDomain returns the y-axis range of a demand drilldown. The lower
// bound follows the starting bar; both bounds have floors of 75 and 110.
func DrilldownDomain(values []decimal.Decimal) Domain {
	if len(values) == 0 {
		return emptyDomain
	}
	minDomain := floorTo(values[0].Sub(ten), five)
	maxDomain := ceilTo(maxAbs(values).Add(ten), five)
	return Domain{
		Min: decimal.Max(decimal.NewFromInt(75), minDomain),
		Max: decimal.Max(decimal.NewFromInt(110), maxDomain),
	}
}

func maxAbs(values []decimal.Decimal) decimal.Decimal {
	m := decimal.Zero
	for _, v := range values {
		if a := v.Abs(); a.GreaterThan(m) {
			m = a
		}
	}
	return m
}
