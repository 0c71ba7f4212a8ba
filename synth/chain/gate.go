package chain

import (
	"fmt"
	"math"
)

const (
	// Defaults are tuned for chugging guitar: the gate must open within
	// a fraction of a millisecond and close fast enough to kill string
	// noise between palm mutes.
	defaultGateThreshold = 0.02
	defaultGateAttackMs  = 0.5
	defaultGateReleaseMs = 30.0
	defaultGateFloor     = 0.0

	minGateThreshold = 0.0
	maxGateThreshold = 1.0
	minGateAttackMs  = 0.01
	maxGateAttackMs  = 1000.0
	minGateReleaseMs = 0.1
	maxGateReleaseMs = 5000.0
	minGateFloor     = 0.0
	maxGateFloor     = 1.0
)

// NoiseGate is a hard gate driven by a peak envelope follower. While
// the followed level sits below the threshold the signal is attenuated
// to the floor (fully cut by default).
//
// The attack coefficient controls how fast the follower tracks rising
// levels (gate opening); the release coefficient controls the fall
// (gate closing).
type NoiseGate struct {
	threshold float64
	attackMs  float64
	releaseMs float64
	floor     float64

	sampleRate float64

	peakLevel    float64
	attackCoeff  float64
	releaseCoeff float64
}

// GateOption configures a NoiseGate.
type GateOption func(*NoiseGate) error

// WithGateThreshold sets the linear level below which the gate closes.
func WithGateThreshold(threshold float64) GateOption {
	return func(g *NoiseGate) error {
		if threshold < minGateThreshold || threshold > maxGateThreshold ||
			math.IsNaN(threshold) {
			return fmt.Errorf("gate threshold must be in [%g, %g]: %f",
				minGateThreshold, maxGateThreshold, threshold)
		}

		g.threshold = threshold

		return nil
	}
}

// WithGateAttack sets the opening time in milliseconds.
func WithGateAttack(ms float64) GateOption {
	return func(g *NoiseGate) error {
		if ms < minGateAttackMs || ms > maxGateAttackMs ||
			math.IsNaN(ms) || math.IsInf(ms, 0) {
			return fmt.Errorf("gate attack must be in [%g, %g]: %f",
				minGateAttackMs, maxGateAttackMs, ms)
		}

		g.attackMs = ms

		return nil
	}
}

// WithGateRelease sets the closing time in milliseconds.
func WithGateRelease(ms float64) GateOption {
	return func(g *NoiseGate) error {
		if ms < minGateReleaseMs || ms > maxGateReleaseMs ||
			math.IsNaN(ms) || math.IsInf(ms, 0) {
			return fmt.Errorf("gate release must be in [%g, %g]: %f",
				minGateReleaseMs, maxGateReleaseMs, ms)
		}

		g.releaseMs = ms

		return nil
	}
}

// WithGateFloor sets the residual gain while the gate is closed.
// 0 cuts the signal entirely.
func WithGateFloor(floor float64) GateOption {
	return func(g *NoiseGate) error {
		if floor < minGateFloor || floor > maxGateFloor || math.IsNaN(floor) {
			return fmt.Errorf("gate floor must be in [%g, %g]: %f",
				minGateFloor, maxGateFloor, floor)
		}

		g.floor = floor

		return nil
	}
}

// NewNoiseGate creates a gate with high-gain-friendly defaults:
// threshold 0.02, attack 0.5 ms, release 30 ms, full cut.
func NewNoiseGate(sampleRate float64, opts ...GateOption) (*NoiseGate, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("gate sample rate must be positive and finite: %f", sampleRate)
	}

	g := &NoiseGate{
		threshold:  defaultGateThreshold,
		attackMs:   defaultGateAttackMs,
		releaseMs:  defaultGateReleaseMs,
		floor:      defaultGateFloor,
		sampleRate: sampleRate,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(g); err != nil {
			return nil, err
		}
	}

	g.updateTimeConstants()

	return g, nil
}

// Threshold returns the linear gate threshold.
func (g *NoiseGate) Threshold() float64 { return g.threshold }

// Attack returns the attack time in milliseconds.
func (g *NoiseGate) Attack() float64 { return g.attackMs }

// Release returns the release time in milliseconds.
func (g *NoiseGate) Release() float64 { return g.releaseMs }

// Floor returns the closed-gate gain.
func (g *NoiseGate) Floor() float64 { return g.floor }

// ProcessSample gates one sample.
func (g *NoiseGate) ProcessSample(input float64) float64 {
	inputLevel := math.Abs(input)

	if inputLevel > g.peakLevel {
		g.peakLevel += (inputLevel - g.peakLevel) * g.attackCoeff
	} else {
		g.peakLevel = inputLevel + (g.peakLevel-inputLevel)*g.releaseCoeff
	}

	if g.peakLevel >= g.threshold {
		return input
	}

	return input * g.floor
}

// ProcessInPlace gates buf in place.
func (g *NoiseGate) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = g.ProcessSample(buf[i])
	}
}

// Reset clears the envelope follower.
func (g *NoiseGate) Reset() {
	g.peakLevel = 0
}

func (g *NoiseGate) updateTimeConstants() {
	g.attackCoeff = 1.0 - math.Exp(-math.Ln2/(g.attackMs*0.001*g.sampleRate))
	g.releaseCoeff = math.Exp(-math.Ln2 / (g.releaseMs * 0.001 * g.sampleRate))
}
