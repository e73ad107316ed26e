package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rgehrsitz/rxdash/internal/domain"
	"github.com/rgehrsitz/rxdash/internal/horizon"
	"github.com/rgehrsitz/rxdash/internal/scenario"
)

var (
	// ErrUnknownKey is returned when Set names a key the state does not have.
	ErrUnknownKey = errors.New("unknown filter key")
	// ErrInvalidValue is returned when a value is not valid for its key.
	ErrInvalidValue = errors.New("invalid filter value")
)

// Action is one user mutation of a filter state. Actions are pure: Apply
// returns a new state and never modifies its input.
type Action interface {
	// Apply returns the state after the action.
	Apply(s State) (State, error)

	// Name returns a short identifier for the action (e.g. "set").
	Name() string

	// Description returns a human-readable summary of the action.
	Description() string

	// Validate checks the action against s without applying it.
	Validate(s State) error
}

// Reduce applies one action. On failure the original state is returned
// unchanged together with the error.
func Reduce(s State, a Action) (State, error) {
	if a == nil {
		return s, fmt.Errorf("action cannot be nil")
	}
	if err := a.Validate(s); err != nil {
		return s, err
	}
	next, err := a.Apply(s.Clone())
	if err != nil {
		return s, err
	}
	return next, nil
}

// ApplyActions applies actions in order, each receiving the output of the
// previous one. The first failure stops the sequence and returns the input
// state with the error.
func ApplyActions(s State, actions []Action) (State, error) {
	current := s
	for i, a := range actions {
		if a == nil {
			return s, fmt.Errorf("action at index %d is nil", i)
		}
		next, err := Reduce(current, a)
		if err != nil {
			return s, fmt.Errorf("action %s failed: %w", a.Name(), err)
		}
		current = next
	}
	return current, nil
}

// ActionError describes why an action was rejected.
type ActionError struct {
	Action string
	Key    string
	Reason string
	Err    error
}

func (e *ActionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("action %s (%s): %s: %v", e.Action, e.Key, e.Reason, e.Err)
	}
	return fmt.Sprintf("action %s (%s): %s", e.Action, e.Key, e.Reason)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// NewActionError creates a new ActionError.
func NewActionError(action, key, reason string, err error) error {
	return &ActionError{Action: action, Key: key, Reason: reason, Err: err}
}

// Set assigns one filter key.
type Set struct {
	Key   string
	Value string
}

func (a Set) Name() string { return "set" }

func (a Set) Description() string {
	return fmt.Sprintf("Set %s to %s", a.Key, a.Value)
}

func (a Set) Validate(s State) error {
	value := strings.TrimSpace(a.Value)
	switch a.Key {
	case KeyBrand, KeyIndication, KeyMetric, KeyLine:
		if value == "" {
			return a.invalid("value cannot be empty")
		}
	case KeyScenario:
		switch value {
		case domain.ScenarioSelectBoth, domain.ScenarioSelectJun25, domain.ScenarioSelectNov25:
		default:
			return a.invalid("expected jun-nov, jun25 or nov25")
		}
	case KeyScenarios:
		for _, id := range splitList(value) {
			if !scenario.Known(domain.ScenarioID(id)) {
				return a.invalid(fmt.Sprintf("unknown scenario %q", id))
			}
		}
	case KeyScenarioFrom, KeyScenarioTo:
		if !scenario.Known(domain.ScenarioID(value)) {
			return a.invalid("unknown scenario")
		}
	case KeyGranularity:
		switch domain.Granularity(value) {
		case domain.GranularityMonthly, domain.GranularityAnnually:
		default:
			return a.invalid("expected monthly or annually")
		}
	case KeyHorizonStart, KeyHorizonEnd:
		if !s.Catalog().Contains(value) {
			return a.invalid(fmt.Sprintf("not in the %s horizon", s.Catalog().Granularity()))
		}
	default:
		return NewActionError(a.Name(), a.Key, "no such key", ErrUnknownKey)
	}
	return nil
}

func (a Set) invalid(reason string) error {
	return NewActionError(a.Name(), a.Key, fmt.Sprintf("%q: %s", a.Value, reason), ErrInvalidValue)
}

func (a Set) Apply(s State) (State, error) {
	if err := a.Validate(s); err != nil {
		return s, err
	}
	value := strings.TrimSpace(a.Value)
	switch a.Key {
	case KeyBrand:
		s.Brand = value
	case KeyIndication:
		s.Indication = value
	case KeyMetric:
		s.Metric = value
	case KeyLine:
		s.Line = value
	case KeyScenario:
		s.Scenario = value
	case KeyScenarios:
		ids := make([]domain.ScenarioID, 0)
		for _, id := range splitList(value) {
			ids = append(ids, domain.ScenarioID(id))
		}
		return SetScenarios{IDs: ids}.Apply(s)
	case KeyScenarioFrom:
		s.ScenarioFrom = domain.ScenarioID(value)
	case KeyScenarioTo:
		s.ScenarioTo = domain.ScenarioID(value)
	case KeyGranularity:
		s.Granularity = domain.Granularity(value)
		s.HorizonStart, s.HorizonEnd = horizon.DefaultWindow(s.Granularity, s.Variant)
	case KeyHorizonStart:
		s.HorizonStart = value
		if ordinal(s, s.HorizonStart) > ordinal(s, s.HorizonEnd) {
			s.HorizonEnd = s.HorizonStart
		}
	case KeyHorizonEnd:
		s.HorizonEnd = value
		if ordinal(s, s.HorizonEnd) < ordinal(s, s.HorizonStart) {
			s.HorizonStart = s.HorizonEnd
		}
	}
	return s, nil
}

// SetScenarios replaces the multi-select scenario set. Unknown and repeated
// ids are dropped and the result is kept in declared order.
type SetScenarios struct {
	IDs []domain.ScenarioID
}

func (a SetScenarios) Name() string { return "set_scenarios" }

func (a SetScenarios) Description() string {
	return fmt.Sprintf("Select scenarios %v", a.IDs)
}

func (a SetScenarios) Validate(State) error { return nil }

func (a SetScenarios) Apply(s State) (State, error) {
	ids := scenario.Select(a.IDs)
	if ids == nil {
		ids = []domain.ScenarioID{}
	}
	s.Scenarios = ids
	return s, nil
}

// ToggleScenario adds the scenario to the set if absent, removes it otherwise.
type ToggleScenario struct {
	ID domain.ScenarioID
}

func (a ToggleScenario) Name() string { return "toggle_scenario" }

func (a ToggleScenario) Description() string {
	return fmt.Sprintf("Toggle scenario %s", a.ID)
}

func (a ToggleScenario) Validate(State) error {
	if !scenario.Known(a.ID) {
		return NewActionError(a.Name(), KeyScenarios, fmt.Sprintf("unknown scenario %q", a.ID), ErrInvalidValue)
	}
	return nil
}

func (a ToggleScenario) Apply(s State) (State, error) {
	if err := a.Validate(s); err != nil {
		return s, err
	}
	ids := make([]domain.ScenarioID, 0, len(s.Scenarios)+1)
	found := false
	for _, id := range s.Scenarios {
		if id == a.ID {
			found = true
			continue
		}
		ids = append(ids, id)
	}
	if !found {
		ids = append(ids, a.ID)
	}
	return SetScenarios{IDs: ids}.Apply(s)
}

// Reset restores the defaults of the state's variant.
type Reset struct{}

func (Reset) Name() string         { return "reset" }
func (Reset) Description() string  { return "Reset all filters to their defaults" }
func (Reset) Validate(State) error { return nil }

func (Reset) Apply(s State) (State, error) {
	return Default(s.Variant), nil
}

// ordinal returns the position of token in the state's catalog, -1 if absent.
func ordinal(s State, token string) int {
	i, ok := horizon.ResolveIndex(s.Catalog(), token)
	if !ok {
		return -1
	}
	return i
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
