package effectchain

// stubRuntime is a minimal Runtime implementation for testing.
type stubRuntime struct {
	configureErr   error
	configureCalls int
	processCalls   int
	lastCtx        Context
	lastParams     Params
}

func (s *stubRuntime) Configure(ctx Context, params Params) error {
	s.configureCalls++
	s.lastCtx = ctx
	s.lastParams = params

	return s.configureErr
}

func (s *stubRuntime) Process(_ [][]float64) error {
	s.processCalls++
	return nil
}

// scaleRuntime multiplies every sample by a fixed gain.
type scaleRuntime struct {
	gain float64
}

func (g *scaleRuntime) Configure(_ Context, params Params) error {
	g.gain = params.GetNum("gain", 1.0)

	return nil
}

func (g *scaleRuntime) Process(block [][]float64) error {
	for _, ch := range block {
		for i := range ch {
			ch[i] *= g.gain
		}
	}

	return nil
}

// addRuntime adds a constant to every sample (for testing multi-parent mixing).
type addRuntime struct {
	value float64
}

func (a *addRuntime) Configure(_ Context, params Params) error {
	a.value = params.GetNum("value", 0)

	return nil
}

func (a *addRuntime) Process(block [][]float64) error {
	for _, ch := range block {
		for i := range ch {
			ch[i] += a.value
		}
	}

	return nil
}

// delayRuntime reports a fixed latency without changing the signal.
type delayRuntime struct{ samples int }

func (d *delayRuntime) Configure(_ Context, params Params) error {
	d.samples = int(params.GetNum("samples", 0))
	return nil
}

func (d *delayRuntime) Process(_ [][]float64) error { return nil }

func (d *delayRuntime) Latency() int { return d.samples }

// testRegistry creates a registry with simple test effects.
func testRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister("stub", func(_ Context) (Runtime, error) {
		return &stubRuntime{}, nil
	})
	r.MustRegister("scale", func(_ Context) (Runtime, error) {
		return &scaleRuntime{gain: 1.0}, nil
	})
	r.MustRegister("add", func(_ Context) (Runtime, error) {
		return &addRuntime{}, nil
	})
	r.MustRegister("delay", func(_ Context) (Runtime, error) {
		return &delayRuntime{}, nil
	})

	return r
}

func scaleNode(id string, gain float64) Params {
	return Params{ID: id, Type: "scale", Num: map[string]float64{"gain": gain}}
}

func addNode(id string, value float64) Params {
	return Params{ID: id, Type: "add", Num: map[string]float64{"value": value}}
}
