package effectchain

// DefaultRegistry returns a Registry pre-populated with all built-in effect runtimes.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(TypeGain, func(_ Context) (Runtime, error) {
		return &gainRuntime{}, nil
	})
	r.MustRegister(TypeLowShelf, func(_ Context) (Runtime, error) {
		return &filterRuntime{typ: TypeLowShelf}, nil
	})
	r.MustRegister(TypeHighShelf, func(_ Context) (Runtime, error) {
		return &filterRuntime{typ: TypeHighShelf}, nil
	})
	r.MustRegister(TypePeaking, func(_ Context) (Runtime, error) {
		return &filterRuntime{typ: TypePeaking}, nil
	})
	r.MustRegister(TypeHighpass, func(_ Context) (Runtime, error) {
		return &filterRuntime{typ: TypeHighpass}, nil
	})
	r.MustRegister(TypeCompressor, newCompressorRuntime)
	r.MustRegister(TypeGate, newGateRuntime)
	r.MustRegister(TypeSaturator, func(_ Context) (Runtime, error) {
		return &saturatorRuntime{}, nil
	})
	r.MustRegister(TypeWidener, func(_ Context) (Runtime, error) {
		return &widenerRuntime{}, nil
	})
	r.MustRegister(TypePlateReverb, func(_ Context) (Runtime, error) {
		return &plateReverbRuntime{}, nil
	})

	return r
}
