package ugen

import (
	"errors"
	"fmt"
	"sort"
)

var (
	errDuplicateUnit = errors.New("duplicate unit type")
	errIncompleteDef = errors.New("incomplete unit definition")
)

// Registry maps unit type names to their definitions.
type Registry struct {
	defs map[string]Def
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Def)}
}

// Register adds def under def.Name.
func (r *Registry) Register(def Def) error {
	if def.Name == "" {
		return fmt.Errorf("ugen: %w: empty name", errIncompleteDef)
	}

	if def.Port == nil || def.Construct == nil {
		return fmt.Errorf("ugen: %w: %s needs Port and Construct", errIncompleteDef, def.Name)
	}

	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("ugen: %w: %s", errDuplicateUnit, def.Name)
	}

	r.defs[def.Name] = def

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(def Def) {
	if err := r.Register(def); err != nil {
		panic(err.Error())
	}
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (Def, bool) {
	def, ok := r.defs[name]

	return def, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
