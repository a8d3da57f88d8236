package effectchain

import (
	"errors"
	"fmt"
	"slices"
)

// Factory builds one Runtime instance for a node.
type Factory func(ctx Context) (Runtime, error)

// Registry maps effect type names to their factories.
type Registry struct {
	factories map[string]Factory
}

var errDuplicateEffect = errors.New("duplicate effect type")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given effect type.
func (r *Registry) Register(effectType string, factory Factory) error {
	if effectType == "" {
		return errors.New("empty effect type")
	}

	if factory == nil {
		return errors.New("nil factory")
	}

	if isStructuralNodeType(effectType) {
		return fmt.Errorf("reserved node type: %s", effectType)
	}

	if _, exists := r.factories[effectType]; exists {
		return fmt.Errorf("%w: %s", errDuplicateEffect, effectType)
	}

	r.factories[effectType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(effectType string, factory Factory) {
	err := r.Register(effectType, factory)
	if err != nil {
		panic("effectchain registry: " + err.Error())
	}
}

// Lookup returns the factory for the given effect type, or nil.
func (r *Registry) Lookup(effectType string) Factory {
	return r.factories[effectType]
}

// Types returns the registered effect types in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}

	slices.Sort(types)

	return types
}

// Instantiate builds and configures the runtime for one node.
func (r *Registry) Instantiate(ctx Context, params Params) (Runtime, error) {
	factory := r.Lookup(params.Type)
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, params.Type)
	}

	rt, err := factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("effectchain: create node %q (%s): %w", params.ID, params.Type, err)
	}

	err = rt.Configure(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("effectchain: configure node %q (%s): %w", params.ID, params.Type, err)
	}

	return rt, nil
}
