package drums

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/algo-metal/compose/rhythm"
)

const (
	minVelocity = 0
	maxVelocity = 127

	// Fixed boost for the first hit of every measure.
	accentBoost = 15

	defaultTimingVariance   = 10
	defaultVelocityVariance = 5
)

// Humanizer jitters hit timing and velocity inside bounded uniform
// distributions. Timing draws from bias ± variance ticks; velocity draws
// from base ± variance, clamped to the preset's ceiling.
type Humanizer struct {
	name             string
	timingVariance   int
	timingBias       int
	velocityVariance int
	velocityCeiling  int
}

// NewHumanizer returns a neutral humanizer: moderate jitter, no bias.
func NewHumanizer() Humanizer {
	return Humanizer{
		name:             "standard",
		timingVariance:   defaultTimingVariance,
		velocityVariance: defaultVelocityVariance,
		velocityCeiling:  maxVelocity,
	}
}

// BlastHumanizer returns the blast-beat preset: tight, slightly rushed
// timing and a velocity ceiling of 110 reflecting the reduced range of
// motion at blast speed.
func BlastHumanizer() Humanizer {
	return Humanizer{
		name:             "blast",
		timingVariance:   5,
		timingBias:       -5,
		velocityVariance: 3,
		velocityCeiling:  110,
	}
}

// BreakdownHumanizer returns the breakdown preset: loose timing dragged
// behind the beat for weight.
func BreakdownHumanizer() Humanizer {
	return Humanizer{
		name:             "breakdown",
		timingVariance:   15,
		timingBias:       10,
		velocityVariance: 8,
		velocityCeiling:  maxVelocity,
	}
}

// ThrashHumanizer returns the thrash preset: rushed and frantic.
func ThrashHumanizer() Humanizer {
	return Humanizer{
		name:             "thrash",
		timingVariance:   12,
		timingBias:       -8,
		velocityVariance: 6,
		velocityCeiling:  maxVelocity,
	}
}

// Name returns the preset name.
func (h Humanizer) Name() string {
	return h.name
}

// TimingBias returns the preset's timing bias in ticks.
func (h Humanizer) TimingBias() int {
	return h.timingBias
}

// TimingVariance returns the preset's timing variance in ticks.
func (h Humanizer) TimingVariance() int {
	return h.timingVariance
}

// Humanize converts a grid's hits into events for one instrument. Each
// hit gets a timing offset drawn from bias ± variance and a velocity from
// base ± variance clamped to the ceiling; the first hit of each measure
// of measureSteps gets a fixed accent boost, re-clamped to 127.
func (h Humanizer) Humanize(
	grid rhythm.Grid,
	inst Instrument,
	baseVelocity, measureSteps int,
	rng *rand.Rand,
) ([]HitEvent, error) {
	if baseVelocity < minVelocity || baseVelocity > maxVelocity {
		return nil, fmt.Errorf("drums: base velocity must be in [%d, %d], got %d",
			minVelocity, maxVelocity, baseVelocity)
	}

	if measureSteps <= 0 {
		return nil, fmt.Errorf("drums: measure steps must be positive, got %d", measureSteps)
	}

	if rng == nil {
		return nil, fmt.Errorf("drums: random source must not be nil")
	}

	events := make([]HitEvent, 0, grid.Pulses())
	accented := -1

	for _, step := range grid.HitSteps() {
		velocity := baseVelocity + drawOffset(h.velocityVariance, rng)
		velocity = clampVelocity(velocity, h.velocityCeiling)

		if measure := step / measureSteps; measure != accented {
			accented = measure
			velocity = clampVelocity(velocity+accentBoost, maxVelocity)
		}

		events = append(events, HitEvent{
			Instrument: inst,
			Step:       step,
			TickOffset: h.timingBias + drawOffset(h.timingVariance, rng),
			Velocity:   velocity,
		})
	}

	return events, nil
}

// drawOffset samples uniformly from [-variance, variance].
func drawOffset(variance int, rng *rand.Rand) int {
	if variance <= 0 {
		return 0
	}

	return rng.Intn(2*variance+1) - variance
}

func clampVelocity(v, ceiling int) int {
	if v < minVelocity {
		return minVelocity
	}

	if v > ceiling {
		return ceiling
	}

	return v
}
