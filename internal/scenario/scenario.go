// Package scenario projects per-scenario values onto a selection and picks
// the ordered pair compared by a bridge.
package scenario

import (
	"github.com/rgehrsitz/rxdash/internal/domain"
)

// Order returns the scenario ids in declared order.
func Order() []domain.ScenarioID {
	ids := make([]domain.ScenarioID, len(domain.Scenarios))
	for i, o := range domain.Scenarios {
		ids[i] = domain.ScenarioID(o.Value)
	}
	return ids
}

// Known reports whether id names a declared scenario.
func Known(id domain.ScenarioID) bool {
	return domain.HasOption(domain.Scenarios, string(id))
}

// Select returns the known ids of selected in declared order, without
// duplicates. Unknown ids are dropped.
func Select(selected []domain.ScenarioID) []domain.ScenarioID {
	want := make(map[domain.ScenarioID]bool, len(selected))
	for _, id := range selected {
		want[id] = true
	}
	var out []domain.ScenarioID
	for _, id := range Order() {
		if want[id] {
			out = append(out, id)
		}
	}
	return out
}

// Projection is the value sequence of one selected scenario.
type Projection[T any] struct {
	Scenario domain.ScenarioID
	Label    string
	Values   []T
}

// Filter picks one projection per selected scenario, in declared order.
// values maps each scenario to its sequence; scenarios absent from values
// are skipped. An empty selection gives no projections.
func Filter[T any](values map[domain.ScenarioID][]T, selected []domain.ScenarioID) []Projection[T] {
	var out []Projection[T]
	for _, id := range Select(selected) {
		seq, ok := values[id]
		if !ok {
			continue
		}
		out = append(out, Projection[T]{
			Scenario: id,
			Label:    domain.ScenarioLabel(id),
			Values:   append([]T(nil), seq...),
		})
	}
	return out
}

// Pair is an ordered (from, to) scenario comparison.
type Pair struct {
	From domain.ScenarioID `json:"from"`
	To   domain.ScenarioID `json:"to"`
}

// DefaultPair is the bridge comparison used when the requested pair is invalid.
var DefaultPair = Pair{From: domain.ScenarioJun25, To: domain.ScenarioNov25}

// Key returns the "from-to" key of the pair.
func (p Pair) Key() string {
	return string(p.From) + "-" + string(p.To)
}

// BridgePair validates a requested comparison. Both ids must be known and
// distinct; otherwise DefaultPair is returned with ok false.
func BridgePair(from, to domain.ScenarioID) (Pair, bool) {
	if !Known(from) || !Known(to) || from == to {
		return DefaultPair, false
	}
	return Pair{From: from, To: to}, true
}
