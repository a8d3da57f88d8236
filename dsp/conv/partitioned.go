package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Partitioned is a streaming uniformly partitioned overlap-save convolver.
//
// Input is consumed in arbitrary chunk sizes. Each time a full partition of
// blockSize samples has been collected, one FFT of size 2*blockSize is run,
// the spectrum is pushed into the delay line and the accumulated product
// with all kernel partitions is transformed back. Output lags input by
// [Partitioned.Latency] samples.
//
// A Partitioned holds streaming state and is not safe for concurrent use.
type Partitioned struct {
	blockSize int
	fftSize   int
	kernelLen int

	plan *algofft.Plan[complex128]

	kernelSpectra [][]complex128
	fdl           [][]complex128
	fdlPos        int

	window []float64
	inBlk  []float64
	outBlk []float64
	pos    int

	scratch []complex128
	accum   []complex128
}

// NewPartitioned creates a convolver for kernel using partitions of
// blockSize samples. blockSize must be a power of two.
func NewPartitioned(kernel []float64, blockSize int) (*Partitioned, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	if !isPowerOf2(blockSize) {
		return nil, fmt.Errorf("%w: %d is not a power of two", ErrInvalidBlockSize, blockSize)
	}

	fftSize := 2 * blockSize

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	parts := (len(kernel) + blockSize - 1) / blockSize

	p := &Partitioned{
		blockSize:     blockSize,
		fftSize:       fftSize,
		kernelLen:     len(kernel),
		plan:          plan,
		kernelSpectra: make([][]complex128, parts),
		fdl:           make([][]complex128, parts),
		window:        make([]float64, fftSize),
		inBlk:         make([]float64, blockSize),
		outBlk:        make([]float64, blockSize),
		scratch:       make([]complex128, fftSize),
		accum:         make([]complex128, fftSize),
	}

	for i := range parts {
		start := i * blockSize
		end := min(start+blockSize, len(kernel))

		spec := make([]complex128, fftSize)
		for j, v := range kernel[start:end] {
			spec[j] = complex(v, 0)
		}

		if err := plan.Forward(spec, spec); err != nil {
			return nil, fmt.Errorf("conv: kernel partition %d FFT: %w", i, err)
		}

		p.kernelSpectra[i] = spec
		p.fdl[i] = make([]complex128, fftSize)
	}

	return p, nil
}

// Latency returns the delay between input and output in samples.
func (p *Partitioned) Latency() int { return p.blockSize }

// KernelLen returns the original kernel length.
func (p *Partitioned) KernelLen() int { return p.kernelLen }

// Partitions returns the number of kernel partitions.
func (p *Partitioned) Partitions() int { return len(p.kernelSpectra) }

// ProcessBlock convolves input into output. Both slices must have the same
// length; any length is accepted.
func (p *Partitioned) ProcessBlock(input, output []float64) error {
	if len(input) != len(output) {
		return fmt.Errorf("%w: input length %d != output length %d",
			ErrLengthMismatch, len(input), len(output))
	}

	for i, x := range input {
		p.inBlk[p.pos] = x
		output[i] = p.outBlk[p.pos]

		p.pos++
		if p.pos == p.blockSize {
			if err := p.step(); err != nil {
				return err
			}

			p.pos = 0
		}
	}

	return nil
}

// Reset clears the delay line and pending samples.
func (p *Partitioned) Reset() {
	clear(p.window)
	clear(p.inBlk)
	clear(p.outBlk)

	for _, spec := range p.fdl {
		clear(spec)
	}

	p.fdlPos = 0
	p.pos = 0
}

func (p *Partitioned) step() error {
	b := p.blockSize

	copy(p.window[:b], p.window[b:])
	copy(p.window[b:], p.inBlk)

	parts := len(p.fdl)
	p.fdlPos = (p.fdlPos - 1 + parts) % parts

	head := p.fdl[p.fdlPos]
	for i, v := range p.window {
		head[i] = complex(v, 0)
	}

	if err := p.plan.Forward(head, head); err != nil {
		return fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	clear(p.accum)

	for k, h := range p.kernelSpectra {
		x := p.fdl[(p.fdlPos+k)%parts]
		for i := range p.accum {
			p.accum[i] += x[i] * h[i]
		}
	}

	if err := p.plan.Inverse(p.scratch, p.accum); err != nil {
		return fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	for i := range b {
		p.outBlk[i] = real(p.scratch[b+i])
	}

	return nil
}
