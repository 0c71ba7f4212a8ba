package chain

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

const (
	// DefaultIRLength is the tap count of the synthetic impulse response.
	DefaultIRLength = 512

	irDecayRate      = 8.0
	irResonanceHz    = 20.0 // cycles over the normalized IR span
	irResonanceDepth = 0.3
	irBaseLevel      = 0.7

	minConvolveBlock = 256
)

// ErrEmptyIR indicates convolution with an empty impulse response.
var ErrEmptyIR = errors.New("chain: impulse response must not be empty")

// SyntheticIR builds a cabinet-like impulse response: a unit spike for
// the direct sound followed by an exponential decay with a slow
// sinusoidal resonance ripple.
func SyntheticIR(length int) ([]float64, error) {
	if length < 2 {
		return nil, fmt.Errorf("chain: IR length must be >= 2: %d", length)
	}

	ir := make([]float64, length)
	ir[0] = 1.0

	for i := 1; i < length; i++ {
		t := float64(i) / float64(length)
		decay := math.Exp(-t * irDecayRate)
		resonance := math.Sin(2*math.Pi*irResonanceHz*t) * irResonanceDepth
		ir[i] = decay * (irBaseLevel + resonance)
	}

	return ir, nil
}

// IRCabinet convolves the signal with an impulse response using
// FFT-based overlap-add: the input is split into blocks, each block is
// multiplied with the kernel spectrum, and the tails are summed back
// into the output.
type IRCabinet struct {
	kernelFFT []complex128
	kernelLen int
	blockSize int
	fftSize   int

	plan *algofft.Plan[complex128]

	inputPadded  []complex128
	outputPadded []complex128
}

// NewIRCabinet creates a convolution cabinet for the given impulse
// response.
func NewIRCabinet(ir []float64) (*IRCabinet, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}

	blockSize := nextPowerOf2(len(ir))
	if blockSize < minConvolveBlock {
		blockSize = minConvolveBlock
	}

	fftSize := nextPowerOf2(blockSize + len(ir) - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("chain: failed to create FFT plan: %w", err)
	}

	c := &IRCabinet{
		kernelFFT:    make([]complex128, fftSize),
		kernelLen:    len(ir),
		blockSize:    blockSize,
		fftSize:      fftSize,
		plan:         plan,
		inputPadded:  make([]complex128, fftSize),
		outputPadded: make([]complex128, fftSize),
	}

	kernelPadded := make([]complex128, fftSize)
	for i, v := range ir {
		kernelPadded[i] = complex(v, 0)
	}

	if err := plan.Forward(c.kernelFFT, kernelPadded); err != nil {
		return nil, fmt.Errorf("chain: failed to compute kernel FFT: %w", err)
	}

	return c, nil
}

// KernelLen returns the impulse response length.
func (c *IRCabinet) KernelLen() int { return c.kernelLen }

// Process convolves input with the impulse response, truncates to the
// input length, and renormalizes whenever the convolution peaks above
// unity.
func (c *IRCabinet) Process(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, errors.New("chain: convolution input must not be empty")
	}

	full, err := c.convolve(input)
	if err != nil {
		return nil, err
	}

	out := full[:len(input)]

	peak := 0.0
	for _, s := range out {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}

	if peak > 1 {
		for i := range out {
			out[i] /= peak
		}
	}

	return out, nil
}

func (c *IRCabinet) convolve(input []float64) ([]float64, error) {
	outputLen := len(input) + c.kernelLen - 1
	output := make([]float64, outputLen)

	numBlocks := (len(input) + c.blockSize - 1) / c.blockSize

	for blockIdx := 0; blockIdx < numBlocks; blockIdx++ {
		start := blockIdx * c.blockSize

		end := start + c.blockSize
		if end > len(input) {
			end = len(input)
		}

		blockLen := end - start

		for i := range c.inputPadded {
			c.inputPadded[i] = 0
		}

		for i := 0; i < blockLen; i++ {
			c.inputPadded[i] = complex(input[start+i], 0)
		}

		if err := c.plan.Forward(c.inputPadded, c.inputPadded); err != nil {
			return nil, fmt.Errorf("chain: forward FFT failed: %w", err)
		}

		for i := range c.outputPadded {
			c.outputPadded[i] = c.inputPadded[i] * c.kernelFFT[i]
		}

		if err := c.plan.Inverse(c.outputPadded, c.outputPadded); err != nil {
			return nil, fmt.Errorf("chain: inverse FFT failed: %w", err)
		}

		resultLen := blockLen + c.kernelLen - 1
		for i := 0; i < resultLen && start+i < outputLen; i++ {
			output[start+i] += real(c.outputPadded[i])
		}
	}

	return output, nil
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
