// Package behavior provides named actor behaviors that stage files can
// attach to actors, plus the registry they are looked up in.
package behavior

import (
	"errors"
	"fmt"
	"sort"

	"sectorcollide/internal/actor"
)

// ErrUnknownBehavior is returned by Create for unregistered names.
var ErrUnknownBehavior = errors.New("unknown behavior")

// Factory builds a behavior from stage-file props.
type Factory func(props map[string]any) (actor.Behavior, error)

var registry = map[string]Factory{}

// Register adds a named behavior. Registering a name twice panics.
func Register(name string, factory Factory) {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("behavior %q already registered", name))
	}
	registry[name] = factory
}

// Create looks up a registered behavior by name and builds it with props.
func Create(name string, props map[string]any) (actor.Behavior, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownBehavior, name)
	}
	b, err := factory(props)
	if err != nil {
		return nil, fmt.Errorf("behavior %q: %w", name, err)
	}
	return b, nil
}

// Names returns the registered behavior names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Props come from TOML, so numbers arrive as int64 or float64 and arrays
// as []any.

func propFloat(props map[string]any, key string, def float32) (float32, error) {
	v, ok := props[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return float32(n), nil
	case int64:
		return float32(n), nil
	case float32:
		return n, nil
	case int:
		return float32(n), nil
	}
	return 0, fmt.Errorf("prop %q: want a number, got %T", key, v)
}

func propVec(props map[string]any, key string) ([3]float32, error) {
	var out [3]float32
	v, ok := props[key]
	if !ok {
		return out, nil
	}
	arr, ok := v.([]any)
	if !ok || len(arr) != 3 {
		return out, fmt.Errorf("prop %q: want three numbers", key)
	}
	for i, e := range arr {
		f, err := propFloat(map[string]any{key: e}, key, 0)
		if err != nil {
			return out, err
		}
		out[i] = f
	}
	return out, nil
}

func propString(props map[string]any, key, def string) (string, error) {
	v, ok := props[key]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("prop %q: want a string, got %T", key, v)
	}
	return s, nil
}
