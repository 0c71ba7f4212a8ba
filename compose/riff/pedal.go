package riff

import (
	"fmt"
	"math/rand"
)

const (
	defaultReturnProbability = 0.65
	minReturnProbability     = 0.0
	maxReturnProbability     = 1.0

	// Probability of staying on the pedal for another step.
	pedalStayProbability = 0.3
)

// Step is one slot of a pedal-point degree walk. Pedal steps sit on the
// root and are played palm-muted by convention; melodic steps carry the
// Markov-drawn scale degree.
type Step struct {
	Degree int
	Pedal  bool
}

// PedalGenerator alternates between a pedal anchor (the root degree) and
// melodic excursions drawn from a Markov model. The alternation is what
// gives metal riffs their pedal/melodic push-pull.
type PedalGenerator struct {
	model             Model
	returnProbability float64
}

// PedalOption configures a PedalGenerator.
type PedalOption func(*PedalGenerator) error

// WithReturnProbability sets the probability of returning to the pedal
// after a melodic step. Must be in [0, 1].
func WithReturnProbability(p float64) PedalOption {
	return func(g *PedalGenerator) error {
		if p < minReturnProbability || p > maxReturnProbability {
			return fmt.Errorf("riff: return probability must be in [%v, %v], got %v",
				minReturnProbability, maxReturnProbability, p)
		}

		g.returnProbability = p

		return nil
	}
}

// NewPedalGenerator creates a pedal-point generator over the given model.
func NewPedalGenerator(model Model, opts ...PedalOption) (*PedalGenerator, error) {
	if model.Degrees() == 0 {
		return nil, fmt.Errorf("riff: pedal generator needs a non-empty model")
	}

	g := &PedalGenerator{
		model:             model,
		returnProbability: defaultReturnProbability,
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// ReturnProbability returns the configured pedal-return probability.
func (g *PedalGenerator) ReturnProbability() float64 {
	return g.returnProbability
}

// Generate produces a degree walk of the given length. The walk starts on
// the pedal; each pedal step stays put with a fixed probability, and each
// melodic step falls back to the pedal with the return probability.
func (g *PedalGenerator) Generate(length int, rng *rand.Rand) ([]Step, error) {
	if length <= 0 {
		return nil, fmt.Errorf("riff: walk length must be positive, got %d", length)
	}

	if rng == nil {
		return nil, fmt.Errorf("riff: random source must not be nil")
	}

	steps := make([]Step, 0, length)
	onPedal := true
	state := 0

	for range length {
		if onPedal {
			steps = append(steps, Step{Degree: 0, Pedal: true})
			state = 0
			onPedal = rng.Float64() > 1.0-pedalStayProbability

			continue
		}

		degree, err := g.model.NextDegree(state, rng)
		if err != nil {
			return nil, err
		}

		steps = append(steps, Step{Degree: degree})
		state = degree
		onPedal = rng.Float64() < g.returnProbability
	}

	return steps, nil
}
