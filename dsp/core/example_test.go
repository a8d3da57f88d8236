package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-mastering/dsp/core"
)

func ExampleWithBlockSize() {
	cfg := core.DefaultProcessorConfig()
	core.WithSampleRate(48000)(&cfg)
	core.WithBlockSize(256)(&cfg)

	fmt.Printf("sampleRate=%.0f blockSize=%d\n", cfg.SampleRate, cfg.BlockSize)

	// Output:
	// sampleRate=48000 blockSize=256
}

func ExampleClamp() {
	ratio := core.SafeDiv(0.3, 0.1, 1e-3)
	fmt.Printf("%.1f\n", core.Clamp(ratio, 0, 2))

	// Output:
	// 2.0
}
