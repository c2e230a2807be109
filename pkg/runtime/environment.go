package runtime

import "sort"

// Environment maps variable names to signed 64-bit integer values for the
// duration of one program evaluation. Mini has no lexical scoping, so the
// mapping is flat: one environment per program run.
type Environment struct {
	values map[string]int64
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]int64)}
}

// Define inserts or overwrites a binding.
func (e *Environment) Define(name string, value int64) {
	e.values[name] = value
}

// Update adds delta to an existing binding and reports whether it applied.
// An unbound name leaves the environment untouched.
func (e *Environment) Update(name string, delta int64) bool {
	if _, ok := e.values[name]; !ok {
		return false
	}
	e.values[name] += delta
	return true
}

// Lookup retrieves a binding.
func (e *Environment) Lookup(name string) (int64, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Snapshot returns a copy of the current bindings.
func (e *Environment) Snapshot() map[string]int64 {
	out := make(map[string]int64, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Keys returns the bound names in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
