// Package song assembles complete metal songs: subgenre presets pick the
// tuning, scale, tempo range and feel, and the assembler sequences
// sections through the rhythm, riff, fretboard and drum generators.
package song

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-metal/compose/drums"
	"github.com/cwbudde/algo-metal/compose/riff"
	"github.com/cwbudde/algo-metal/compose/theory"
)

// Subgenre tags one of the supported metal styles. The set is closed;
// each variant maps to a fixed parameter record.
type Subgenre int

const (
	Heavy Subgenre = iota
	Thrash
	Death
	Doom
	Progressive
)

// String returns the subgenre name.
func (s Subgenre) String() string {
	switch s {
	case Heavy:
		return "heavy"
	case Thrash:
		return "thrash"
	case Death:
		return "death"
	case Doom:
		return "doom"
	case Progressive:
		return "progressive"
	default:
		return fmt.Sprintf("subgenre(%d)", int(s))
	}
}

// ParseSubgenre resolves a subgenre by name, case-insensitively.
func ParseSubgenre(name string) (Subgenre, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "heavy":
		return Heavy, nil
	case "thrash":
		return Thrash, nil
	case "death":
		return Death, nil
	case "doom":
		return Doom, nil
	case "progressive":
		return Progressive, nil
	default:
		return 0, fmt.Errorf("song: unknown subgenre %q", name)
	}
}

// Params is the fixed configuration record of a subgenre.
type Params struct {
	Tuning       theory.Tuning
	Scale        theory.Scale
	MinTempoBPM  int
	MaxTempoBPM  int
	Humanizer    drums.Humanizer
	BurstDensity float64
	// Gallop enables the eighth-plus-two-sixteenths verse figure.
	Gallop bool
	// Polymeter lets verse and chorus riffs tile a short phrase across
	// the barline instead of restarting it every measure.
	Polymeter bool
}

// Params returns the subgenre's configuration record.
func (s Subgenre) Params() Params {
	switch s {
	case Thrash:
		return Params{
			Tuning:       theory.EStandard,
			Scale:        theory.Phrygian,
			MinTempoBPM:  160,
			MaxTempoBPM:  220,
			Humanizer:    drums.ThrashHumanizer(),
			BurstDensity: 0.5,
			Gallop:       true,
		}
	case Death:
		return Params{
			Tuning:       theory.DStandard,
			Scale:        theory.Phrygian,
			MinTempoBPM:  140,
			MaxTempoBPM:  200,
			Humanizer:    drums.BlastHumanizer(),
			BurstDensity: 0.6,
		}
	case Doom:
		return Params{
			Tuning:       theory.CStandard,
			Scale:        theory.Dorian,
			MinTempoBPM:  60,
			MaxTempoBPM:  100,
			Humanizer:    drums.BreakdownHumanizer(),
			BurstDensity: 0.3,
		}
	case Progressive:
		return Params{
			Tuning:       theory.DropC,
			Scale:        theory.HarmonicMinor,
			MinTempoBPM:  100,
			MaxTempoBPM:  180,
			Humanizer:    drums.NewHumanizer(),
			BurstDensity: 0.5,
			Polymeter:    true,
		}
	default:
		return Params{
			Tuning:       theory.EStandard,
			Scale:        theory.MinorPentatonic,
			MinTempoBPM:  120,
			MaxTempoBPM:  160,
			Humanizer:    drums.NewHumanizer(),
			BurstDensity: 0.4,
		}
	}
}

// Model returns the subgenre's Markov transition model for the given
// number of scale degrees.
func (s Subgenre) Model(degrees int) (riff.Model, error) {
	switch s {
	case Death:
		return riff.DeathModel(degrees)
	case Progressive:
		return riff.ProgressiveModel(degrees)
	default:
		return riff.HeavyModel(degrees)
	}
}
