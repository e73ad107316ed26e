// Package pipeline turns a filter state and the forecast catalog into the
// view models the dashboard renders.
package pipeline

import (
	"github.com/rgehrsitz/rxdash/internal/aggregate"
	"github.com/rgehrsitz/rxdash/internal/dataset"
	"github.com/rgehrsitz/rxdash/internal/filter"
)

// Engine computes view models. Results are memoized per state; a hit and a
// miss return equal values.
type Engine struct {
	Catalog *dataset.Catalog
	Logger  Logger

	policy      aggregate.Policy
	summaries   *memo[ViewModel]
	assumptions *memo[AssumptionsView]
	bridges     *memo[BridgeView]
	drilldowns  *memo[BridgeView]
}

// NewEngine creates an engine over catalog. A nil catalog uses the built-in
// dataset; an empty policy means mean.
func NewEngine(catalog *dataset.Catalog, policy aggregate.Policy) *Engine {
	if catalog == nil {
		catalog = dataset.Default()
	}
	if policy == "" {
		policy = aggregate.PolicyMean
	}
	e := &Engine{
		Catalog: catalog,
		Logger:  NopLogger{},
		policy:  policy,
	}
	e.SetCacheSize(DefaultCacheSize)
	return e
}

// SetLogger sets the logger; nil installs a no-op logger.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// SetCacheSize replaces the memo caches with empty ones of size n per view
// kind. n <= 0 means DefaultCacheSize.
func (e *Engine) SetCacheSize(n int) {
	e.summaries = newMemo[ViewModel](n)
	e.assumptions = newMemo[AssumptionsView](n)
	e.bridges = newMemo[BridgeView](n)
	e.drilldowns = newMemo[BridgeView](n)
}

// Policy returns the annual aggregation policy.
func (e *Engine) Policy() aggregate.Policy {
	return e.policy
}

// CacheStats returns hit and miss counters over all view kinds.
func (e *Engine) CacheStats() CacheStats {
	return e.summaries.stats().
		add(e.assumptions.stats()).
		add(e.bridges.stats()).
		add(e.drilldowns.stats())
}

// Summary returns the summary view for s.
func (e *Engine) Summary(s filter.State) ViewModel {
	key := s.Key()
	if v, ok := e.summaries.get(key); ok {
		e.Logger.Debugf("summary cache hit for %s/%s", s.Brand, s.Metric)
		return v.Clone()
	}
	v := e.buildSummary(s)
	e.summaries.put(key, v)
	return v.Clone()
}

// Assumptions returns the assumptions table for s.
func (e *Engine) Assumptions(s filter.State) AssumptionsView {
	key := s.Key()
	if v, ok := e.assumptions.get(key); ok {
		e.Logger.Debugf("assumptions cache hit for %s", s.Brand)
		return v.Clone()
	}
	v := e.buildAssumptions(s)
	e.assumptions.put(key, v)
	return v.Clone()
}

// Bridge returns the scenario bridge for s.
func (e *Engine) Bridge(s filter.State) BridgeView {
	key := s.Key()
	if v, ok := e.bridges.get(key); ok {
		e.Logger.Debugf("bridge cache hit for %s/%s", s.Brand, s.Metric)
		return v.Clone()
	}
	v := e.buildBridge(s)
	e.bridges.put(key, v)
	return v.Clone()
}

// Drilldown returns the total demand drilldown for s.
func (e *Engine) Drilldown(s filter.State) BridgeView {
	key := s.Key()
	if v, ok := e.drilldowns.get(key); ok {
		e.Logger.Debugf("drilldown cache hit for %s", s.Brand)
		return v.Clone()
	}
	v := e.buildDrilldown(s)
	e.drilldowns.put(key, v)
	return v.Clone()
}
