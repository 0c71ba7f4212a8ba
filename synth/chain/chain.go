package chain

import (
	"fmt"
	"math"
)

// Chain is the full amp path: gate, distortion, cabinet. The cabinet
// stage is either the filter-cascade simulator, the convolution
// cabinet, or both in series.
type Chain struct {
	gate       *NoiseGate
	distortion *TubeDistortion
	cabinet    *CabinetSim
	convolver  *IRCabinet
}

// ChainOption configures a Chain.
type ChainOption func(*Chain) error

// WithChainGate replaces the default gate.
func WithChainGate(g *NoiseGate) ChainOption {
	return func(c *Chain) error {
		if g == nil {
			return fmt.Errorf("chain gate must not be nil")
		}

		c.gate = g

		return nil
	}
}

// WithChainDistortion replaces the default distortion stage.
func WithChainDistortion(d *TubeDistortion) ChainOption {
	return func(c *Chain) error {
		if d == nil {
			return fmt.Errorf("chain distortion must not be nil")
		}

		c.distortion = d

		return nil
	}
}

// WithChainCabinet replaces the default cabinet simulator.
func WithChainCabinet(cab *CabinetSim) ChainOption {
	return func(c *Chain) error {
		if cab == nil {
			return fmt.Errorf("chain cabinet must not be nil")
		}

		c.cabinet = cab

		return nil
	}
}

// WithConvolutionCabinet adds an impulse-response convolution stage
// after the cabinet simulator.
func WithConvolutionCabinet(ir []float64) ChainOption {
	return func(c *Chain) error {
		conv, err := NewIRCabinet(ir)
		if err != nil {
			return err
		}

		c.convolver = conv

		return nil
	}
}

// NewMetalChain builds the default rhythm chain: metal gate, rhythm
// distortion, 4x12 cabinet.
func NewMetalChain(sampleRate float64, opts ...ChainOption) (*Chain, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("chain sample rate must be positive and finite: %f", sampleRate)
	}

	gate, err := NewNoiseGate(sampleRate)
	if err != nil {
		return nil, err
	}

	distortion, err := NewTubeDistortion()
	if err != nil {
		return nil, err
	}

	cabinet, err := NewCabinetSim(sampleRate, Metal4x12())
	if err != nil {
		return nil, err
	}

	c := &Chain{
		gate:       gate,
		distortion: distortion,
		cabinet:    cabinet,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// NewHighGainChain builds a lead chain: metal gate, high-gain
// distortion, 4x12 cabinet.
func NewHighGainChain(sampleRate float64, opts ...ChainOption) (*Chain, error) {
	distortion, err := NewHighGainDistortion()
	if err != nil {
		return nil, err
	}

	base := []ChainOption{WithChainDistortion(distortion)}

	return NewMetalChain(sampleRate, append(base, opts...)...)
}

// Gate returns the chain's gate stage.
func (c *Chain) Gate() *NoiseGate { return c.gate }

// Distortion returns the chain's distortion stage.
func (c *Chain) Distortion() *TubeDistortion { return c.distortion }

// Cabinet returns the chain's cabinet simulator.
func (c *Chain) Cabinet() *CabinetSim { return c.cabinet }

// Convolver returns the chain's impulse-response cabinet, or nil when
// the chain runs the biquad cabinet alone.
func (c *Chain) Convolver() *IRCabinet { return c.convolver }

// Process runs block through the full chain and returns a new slice of
// the same length. The input is not modified.
func (c *Chain) Process(block []float64) ([]float64, error) {
	if len(block) == 0 {
		return nil, nil
	}

	buf := make([]float64, len(block))
	copy(buf, block)

	c.gate.ProcessInPlace(buf)
	c.distortion.ProcessInPlace(buf)
	c.cabinet.ProcessInPlace(buf)

	if c.convolver != nil {
		out, err := c.convolver.Process(buf)
		if err != nil {
			return nil, err
		}

		return out, nil
	}

	return buf, nil
}

// Reset clears all stateful stages.
func (c *Chain) Reset() {
	c.gate.Reset()
	c.cabinet.Reset()
}
