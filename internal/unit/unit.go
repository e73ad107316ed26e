// Package unit maps metrics to their display unit and formats values.
package unit

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/shopspring/decimal"
)

// Kind is the display unit of a metric.
type Kind string

const (
	Currency Kind = "currency"
	Percent  Kind = "percent"
	Unitless Kind = "unitless"
)

// NoData is rendered for a missing value.
const NoData = "-"

// KindOf returns the unit kind for a metric. Unknown metrics are unitless.
func KindOf(metric string) Kind {
	switch metric {
	case domain.MetricNetRevenue, domain.MetricWACPrice, domain.MetricTotalDemand:
		return Currency
	case domain.MetricMarketShare, domain.MetricCompliance, domain.MetricAccessPercent, domain.MetricDiscount:
		return Percent
	default:
		return Unitless
	}
}

// Precision returns the number of decimal places a metric is rounded to.
func Precision(metric string) int32 {
	if metric == domain.MetricWACPrice || KindOf(metric) == Percent {
		return 0
	}
	return 1
}

// Symbol returns the unit symbol shown in titles: "$", "%" or "".
func Symbol(metric string) string {
	switch KindOf(metric) {
	case Currency:
		return "$"
	case Percent:
		return "%"
	}
	return ""
}

// Round rounds half away from zero at the metric precision.
func Round(metric string, v decimal.Decimal) decimal.Decimal {
	return v.Round(Precision(metric))
}

// Format renders a value with its unit, e.g. "$26", "$2,513", "85%", "4.1".
func Format(metric string, v decimal.Decimal) string {
	r := Round(metric, v)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Abs()
	}
	num := groupThousands(r.String())
	switch KindOf(metric) {
	case Currency:
		return sign + "$" + num
	case Percent:
		return sign + num + "%"
	}
	return sign + num
}

// FormatFixed renders a value with its unit and exactly places decimals,
// e.g. "$248.0" or "-$5.2".
func FormatFixed(metric string, v decimal.Decimal, places int32) string {
	r := v.Round(places)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Abs()
	}
	num := groupThousands(r.StringFixed(places))
	switch KindOf(metric) {
	case Currency:
		return sign + "$" + num
	case Percent:
		return sign + num + "%"
	}
	return sign + num
}

// FormatNull renders a nullable value, using NoData for an invalid one.
func FormatNull(metric string, v decimal.NullDecimal) string {
	if !v.Valid {
		return NoData
	}
	return Format(metric, v.Decimal)
}

// Parse recovers the value from a string produced by Format.
func Parse(metric string, s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	if raw == NoData || raw == "" {
		return decimal.Zero, fmt.Errorf("no value in %q", s)
	}
	neg := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")
	switch KindOf(metric) {
	case Currency:
		if !strings.HasPrefix(raw, "$") {
			return decimal.Zero, fmt.Errorf("missing currency prefix in %q", s)
		}
		raw = strings.TrimPrefix(raw, "$")
	case Percent:
		if !strings.HasSuffix(raw, "%") {
			return decimal.Zero, fmt.Errorf("missing percent suffix in %q", s)
		}
		raw = strings.TrimSuffix(raw, "%")
	}
	raw = strings.ReplaceAll(raw, ",", "")
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse %s value %q: %w", metric, s, err)
	}
	if neg {
		v = v.Neg()
	}
	return v, nil
}

// groupThousands inserts commas into the integer part of an unsigned number.
func groupThousands(s string) string {
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if len(intPart) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	return b.String() + frac
}
