package drums

import (
	"fmt"

	"github.com/cwbudde/algo-metal/compose/rhythm"
)

// BlastStyle selects how kick and snare divide the subdivisions of a
// blast beat.
type BlastStyle int

const (
	// BlastTraditional plays kick and snare together on every subdivision.
	BlastTraditional BlastStyle = iota
	// BlastHammer is the traditional unison blast played with both hands.
	BlastHammer
	// BlastEuro alternates kick and snare.
	BlastEuro
	// BlastGravity is a unison blast with rimshot articulation on the
	// snare hand.
	BlastGravity
)

// String returns the style name.
func (s BlastStyle) String() string {
	switch s {
	case BlastTraditional:
		return "traditional"
	case BlastHammer:
		return "hammer"
	case BlastEuro:
		return "euro"
	case BlastGravity:
		return "gravity"
	default:
		return fmt.Sprintf("blast(%d)", int(s))
	}
}

// BlastPattern holds the kick and snare grids of a blast beat plus the
// voice the snare hand plays (rimshot for gravity blasts).
type BlastPattern struct {
	Kick       rhythm.Grid
	Snare      rhythm.Grid
	SnareVoice Instrument
}

// NewBlastPattern generates a blast beat over the given subdivisions.
func NewBlastPattern(style BlastStyle, subdivisions int) (BlastPattern, error) {
	if subdivisions <= 0 {
		return BlastPattern{}, fmt.Errorf("drums: blast subdivisions must be positive, got %d", subdivisions)
	}

	kick := make(rhythm.Grid, subdivisions)
	snare := make(rhythm.Grid, subdivisions)
	voice := Snare

	switch style {
	case BlastTraditional, BlastHammer, BlastGravity:
		for i := range kick {
			kick[i] = true
			snare[i] = true
		}

		if style == BlastGravity {
			voice = Rimshot
		}
	case BlastEuro:
		for i := range kick {
			if i%2 == 0 {
				kick[i] = true
			} else {
				snare[i] = true
			}
		}
	default:
		return BlastPattern{}, fmt.Errorf("drums: unknown blast style %d", int(style))
	}

	return BlastPattern{Kick: kick, Snare: snare, SnareVoice: voice}, nil
}
