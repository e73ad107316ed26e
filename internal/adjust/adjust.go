// Package adjust scales metric series by treatment line and indication.
package adjust

import (
	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/rgehrsitz/rxdash/internal/unit"
	"github.com/shopspring/decimal"
)

var (
	one = decimal.NewFromInt(1)

	lineMultipliers = map[string]decimal.Decimal{
		domain.LineAll:   one,
		domain.Line1L:    one,
		domain.Line2L:    decimal.RequireFromString("0.75"),
		domain.Line3L:    decimal.RequireFromString("0.55"),
		domain.Line4L:    decimal.RequireFromString("0.35"),
		domain.Line4Plus: decimal.RequireFromString("0.35"),
	}

	indicationMultipliers = map[string]decimal.Decimal{
		domain.IndicationA:   one,
		domain.IndicationB:   decimal.RequireFromString("0.85"),
		domain.IndicationC:   decimal.RequireFromString("0.65"),
		domain.IndicationAll: one,
	}
)

// LineMultiplier returns the scale for a treatment line; unknown lines scale by 1.
func LineMultiplier(line string) decimal.Decimal {
	if m, ok := lineMultipliers[line]; ok {
		return m
	}
	return one
}

// IndicationMultiplier returns the scale for an indication; unknown indications scale by 1.
func IndicationMultiplier(indication string) decimal.Decimal {
	if m, ok := indicationMultipliers[indication]; ok {
		return m
	}
	return one
}

// Multiplier is the combined line and indication scale.
func Multiplier(line, indication string) decimal.Decimal {
	return LineMultiplier(line).Mul(IndicationMultiplier(indication))
}

// Adjust returns a copy of series with every value scaled by the combined
// multiplier and rounded at the metric precision. The input is not modified.
func Adjust(series domain.MetricSeries, line, indication string) domain.MetricSeries {
	out := Scale(series, Multiplier(line, indication))
	for i := range out.Points {
		for id, v := range out.Points[i].Values {
			out.Points[i].Values[id] = unit.Round(series.Metric, v)
		}
	}
	return out
}

// Scale returns a copy of series multiplied by m without rounding. Annual
// reduction scales first and rounds once after averaging.
func Scale(series domain.MetricSeries, m decimal.Decimal) domain.MetricSeries {
	out := series.Clone()
	for i := range out.Points {
		for id, v := range out.Points[i].Values {
			out.Points[i].Values[id] = v.Mul(m)
		}
	}
	return out
}
