package riff

import (
	"fmt"
	"math/rand"
)

const (
	// Destruction turns the pedal loose: low return probability and a
	// denser walk push the phase away from the motif.
	destructionReturnProbability = 0.35
	destructionDensityFactor     = 2
)

// Phase labels one of the four motif phases.
type Phase int

const (
	PhaseIntroduction Phase = iota
	PhaseRepetition
	PhaseVariation
	PhaseDestruction
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIntroduction:
		return "introduction"
	case PhaseRepetition:
		return "repetition"
	case PhaseVariation:
		return "variation"
	case PhaseDestruction:
		return "destruction"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Structure is a four-phase motif: the introduction establishes it, the
// repetition restates it literally, the variation perturbs one melodic
// degree, and the destruction departs from it rhythmically and
// harmonically.
type Structure struct {
	Introduction []Step
	Repetition   []Step
	Variation    []Step
	Destruction  []Step
}

// GenerateStructure produces a motif structure of the given phase length
// over the model. Each phase is a pedal-point walk with phase-specific
// parameters.
func GenerateStructure(model Model, phaseLength int, rng *rand.Rand) (Structure, error) {
	if phaseLength <= 0 {
		return Structure{}, fmt.Errorf("riff: phase length must be positive, got %d", phaseLength)
	}

	if rng == nil {
		return Structure{}, fmt.Errorf("riff: random source must not be nil")
	}

	gen, err := NewPedalGenerator(model)
	if err != nil {
		return Structure{}, err
	}

	motif, err := gen.Generate(phaseLength, rng)
	if err != nil {
		return Structure{}, err
	}

	repetition := make([]Step, len(motif))
	copy(repetition, motif)

	variation, err := varyMotif(motif, model, rng)
	if err != nil {
		return Structure{}, err
	}

	loose, err := NewPedalGenerator(model, WithReturnProbability(destructionReturnProbability))
	if err != nil {
		return Structure{}, err
	}

	destruction, err := loose.Generate(phaseLength*destructionDensityFactor, rng)
	if err != nil {
		return Structure{}, err
	}

	return Structure{
		Introduction: motif,
		Repetition:   repetition,
		Variation:    variation,
		Destruction:  destruction,
	}, nil
}

// Phases returns the structure's walks in playing order.
func (s Structure) Phases() [][]Step {
	return [][]Step{s.Introduction, s.Repetition, s.Variation, s.Destruction}
}

// varyMotif copies the motif and nudges one melodic step up a scale
// degree. A motif with no melodic step (all pedal) is returned unchanged.
func varyMotif(motif []Step, model Model, rng *rand.Rand) ([]Step, error) {
	out := make([]Step, len(motif))
	copy(out, motif)

	melodic := make([]int, 0, len(out))

	for i, st := range out {
		if !st.Pedal {
			melodic = append(melodic, i)
		}
	}

	if len(melodic) == 0 {
		return out, nil
	}

	pick := melodic[rng.Intn(len(melodic))]
	out[pick].Degree = (out[pick].Degree + 1) % model.Degrees()

	return out, nil
}
