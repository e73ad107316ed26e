package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/rxdash/internal/domain"
)

// Spec keys that map to actions other than Set.
const (
	SpecToggle = "toggle"
	SpecReset  = "reset"
)

// ActionFactory creates an action from the value half of a "key=value" spec.
type ActionFactory func(value string) (Action, error)

// Registry maps spec keys to action factories. It lets the CLI turn
// "--set brand=brand-b" style flags into actions.
type Registry struct {
	factories map[string]ActionFactory
}

// NewRegistry creates a registry with every filter key plus toggle and reset.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]ActionFactory)}

	for _, key := range Keys {
		key := key
		r.Register(key, func(value string) (Action, error) {
			return Set{Key: key, Value: value}, nil
		})
	}
	r.Register(SpecToggle, func(value string) (Action, error) {
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("toggle requires a scenario id")
		}
		return ToggleScenario{ID: domain.ScenarioID(strings.TrimSpace(value))}, nil
	})
	r.Register(SpecReset, func(string) (Action, error) {
		return Reset{}, nil
	})

	// Accept the camelCase spellings used by the filter bar.
	r.Alias("scenarioFrom", KeyScenarioFrom)
	r.Alias("scenarioTo", KeyScenarioTo)
	r.Alias("horizonStart", KeyHorizonStart)
	r.Alias("horizonEnd", KeyHorizonEnd)

	return r
}

// Register adds a factory.
func (r *Registry) Register(key string, factory ActionFactory) {
	r.factories[key] = factory
}

// Alias makes alias create the same action as key.
func (r *Registry) Alias(alias, key string) {
	if f, ok := r.factories[key]; ok {
		r.factories[alias] = f
	}
}

// Create creates the action for key.
func (r *Registry) Create(key, value string) (Action, error) {
	factory, exists := r.factories[key]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return factory(value)
}

// List returns the registered keys, sorted.
func (r *Registry) List() []string {
	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseSpec parses a "key=value" spec.
// Example: "brand=brand-b", "scenarios=jun25,nov25", "toggle=nov25"
func (r *Registry) ParseSpec(spec string) (Action, error) {
	parts := strings.SplitN(spec, "=", 2)
	if len(parts) != 2 {
		if strings.TrimSpace(spec) == SpecReset {
			return Reset{}, nil
		}
		return nil, fmt.Errorf("invalid filter spec format, expected 'key=value', got: %s", spec)
	}
	return r.Create(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
}

// ParseSpecs parses every spec in order.
func (r *Registry) ParseSpecs(specs []string) ([]Action, error) {
	actions := make([]Action, 0, len(specs))
	for _, spec := range specs {
		a, err := r.ParseSpec(spec)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, nil
}
