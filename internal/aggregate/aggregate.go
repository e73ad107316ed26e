// Package aggregate slices a monthly series to a horizon window or reduces it
// to annual values.
package aggregate

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/rgehrsitz/rxdash/internal/horizon"
	"github.com/rgehrsitz/rxdash/internal/unit"
	"github.com/shopspring/decimal"
)

// Policy is the annual reduction applied to a year's months.
type Policy string

const (
	// PolicyMean averages the months of the year.
	PolicyMean Policy = "mean"
	// PolicyFirst takes the first month of the year as representative.
	PolicyFirst Policy = "first"
)

// ParsePolicy parses a policy name. The empty string selects PolicyMean.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyMean:
		return PolicyMean, nil
	case PolicyFirst:
		return PolicyFirst, nil
	}
	return "", fmt.Errorf("unknown aggregation policy: %s", s)
}

// Point is one period of an aggregated series. A missing value is an invalid
// NullDecimal.
type Point struct {
	Token  string                                    `json:"token"`
	Label  string                                    `json:"label"`
	Values map[domain.ScenarioID]decimal.NullDecimal `json:"values"`
}

// Value returns the value for a scenario, invalid when absent.
func (p Point) Value(id domain.ScenarioID) decimal.NullDecimal {
	return p.Values[id]
}

// Result is an aggregated series in period order.
type Result struct {
	Granularity domain.Granularity `json:"granularity"`
	Points      []Point            `json:"points"`
}

// Labels returns the period labels in order.
func (r Result) Labels() []string {
	labels := make([]string, len(r.Points))
	for i, p := range r.Points {
		labels[i] = p.Label
	}
	return labels
}

// Len returns the number of periods.
func (r Result) Len() int {
	return len(r.Points)
}

// Reduce applies the policy to a year's values. An empty input is "no data".
func Reduce(values []decimal.Decimal, policy Policy) decimal.NullDecimal {
	if len(values) == 0 {
		return decimal.NullDecimal{}
	}
	if policy == PolicyFirst {
		return decimal.NewNullDecimal(values[0])
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return decimal.NewNullDecimal(sum.Div(decimal.NewFromInt(int64(len(values)))))
}

// Aggregate turns a monthly series into the periods of [start, end] at the
// given granularity. Unknown tokens or start after end give an empty result.
func Aggregate(series domain.MetricSeries, g domain.Granularity, start, end string, policy Policy) Result {
	if g == domain.GranularityAnnually {
		return annual(series, start, end, policy)
	}
	return monthly(series, start, end)
}

func monthly(series domain.MetricSeries, start, end string) Result {
	res := Result{Granularity: domain.GranularityMonthly}
	byToken := indexByToken(series)
	ids := scenarioIDs(series)
	for _, opt := range horizon.Window(horizon.Monthly, start, end) {
		p := Point{Token: opt.Token, Label: opt.Label, Values: make(map[domain.ScenarioID]decimal.NullDecimal, len(ids))}
		for _, id := range ids {
			p.Values[id] = decimal.NullDecimal{}
		}
		if mp, ok := byToken[opt.Token]; ok {
			for id, v := range mp.Values {
				p.Values[id] = decimal.NewNullDecimal(v)
			}
		}
		res.Points = append(res.Points, p)
	}
	return res
}

func annual(series domain.MetricSeries, start, end string, policy Policy) Result {
	res := Result{Granularity: domain.GranularityAnnually}
	for _, year := range horizon.Window(horizon.Annual, start, end) {
		grouped := make(map[domain.ScenarioID][]decimal.Decimal)
		for _, mp := range series.Points {
			opt, ok := horizon.Monthly.Lookup(mp.Token)
			if !ok || opt.Year != year.Year {
				continue
			}
			for id, v := range mp.Values {
				grouped[id] = append(grouped[id], v)
			}
		}

		p := Point{Token: year.Token, Label: year.Label, Values: make(map[domain.ScenarioID]decimal.NullDecimal)}
		for _, s := range scenarioIDs(series) {
			r := Reduce(grouped[s], policy)
			if r.Valid {
				r.Decimal = unit.Round(series.Metric, r.Decimal)
			}
			p.Values[s] = r
		}
		res.Points = append(res.Points, p)
	}
	return res
}

// ReduceValues reduces positional monthly values (aligned with the monthly
// catalog) to one value per year of [start, end].
func ReduceValues(metric string, values []decimal.Decimal, start, end string, policy Policy) []decimal.NullDecimal {
	months := horizon.Monthly.Options()
	var out []decimal.NullDecimal
	for _, year := range horizon.Window(horizon.Annual, start, end) {
		var in []decimal.Decimal
		for i, v := range values {
			if i < len(months) && months[i].Year == year.Year {
				in = append(in, v)
			}
		}
		r := Reduce(in, policy)
		if r.Valid {
			r.Decimal = unit.Round(metric, r.Decimal)
		}
		out = append(out, r)
	}
	return out
}

// SliceValues returns the positional monthly values inside [start, end].
// Positions beyond the input are "no data".
func SliceValues(values []decimal.Decimal, start, end string) []decimal.NullDecimal {
	var out []decimal.NullDecimal
	for _, opt := range horizon.Window(horizon.Monthly, start, end) {
		if opt.Ordinal < len(values) {
			out = append(out, decimal.NewNullDecimal(values[opt.Ordinal]))
		} else {
			out = append(out, decimal.NullDecimal{})
		}
	}
	return out
}

func indexByToken(series domain.MetricSeries) map[string]domain.MonthPoint {
	idx := make(map[string]domain.MonthPoint, len(series.Points))
	for _, p := range series.Points {
		idx[p.Token] = p
	}
	return idx
}

// scenarioIDs returns the scenarios present in the series in declared order.
func scenarioIDs(series domain.MetricSeries) []domain.ScenarioID {
	seen := make(map[domain.ScenarioID]bool)
	for _, p := range series.Points {
		for id := range p.Values {
			seen[id] = true
		}
	}
	var ids []domain.ScenarioID
	for _, o := range domain.Scenarios {
		if seen[domain.ScenarioID(o.Value)] {
			ids = append(ids, domain.ScenarioID(o.Value))
		}
	}
	return ids
}
