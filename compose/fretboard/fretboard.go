// Package fretboard maps pitches to guitar fretboard positions and finds
// biomechanically plausible fingerings for riffs. Pathfinding is greedy
// nearest-cost, trading fingering optimality for generation speed.
package fretboard

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-metal/compose/theory"
)

const (
	defaultMaxFret = 24
	minMaxFret     = 1

	// Worst-case cost per transition, the normalization baseline for
	// playability scoring.
	worstTransitionCost = 15.0

	// Transitions above this cost trigger position substitution during
	// riff optimization.
	defaultCostCeiling = 10.0

	// Paths scoring below this are flagged as unplayable.
	defaultPlayableThreshold = 0.5
)

// Position is one spot on the fretboard: a 0-indexed string (0 = lowest)
// and a fret (0 = open).
type Position struct {
	String int
	Fret   int
}

// MovementCost rates the difficulty of moving from a to b. Same-string
// moves grow super-linearly with fret distance, same-fret moves price
// string crossings, and diagonal moves combine both with a penalty on
// large leaps.
func MovementCost(a, b Position) float64 {
	stringDiff := abs(a.String - b.String)
	fretDiff := abs(a.Fret - b.Fret)

	switch {
	case stringDiff == 0:
		switch fretDiff {
		case 0:
			return 0.0
		case 1:
			return 1.0
		case 2:
			return 2.0
		case 3:
			return 3.5
		case 4:
			return 5.0
		default:
			return 10.0 + float64(fretDiff)
		}
	case fretDiff == 0:
		switch stringDiff {
		case 1:
			return 1.5
		case 2:
			return 3.0
		default:
			return 5.0 + float64(stringDiff)
		}
	default:
		cost := float64(fretDiff)*1.5 + float64(stringDiff)*2.0
		if fretDiff > 3 || stringDiff > 2 {
			cost *= 1.5
		}

		return cost
	}
}

// Board resolves pitches against a tuning. The pitch-to-positions lookup
// is built once at construction since the relationship only depends on
// the tuning and fret range.
type Board struct {
	tuning  theory.Tuning
	maxFret int
	byPitch map[theory.Note][]Position
}

// Option configures a Board.
type Option func(*Board) error

// WithMaxFret sets the highest playable fret.
func WithMaxFret(maxFret int) Option {
	return func(b *Board) error {
		if maxFret < minMaxFret {
			return fmt.Errorf("fretboard: max fret must be >= %d, got %d", minMaxFret, maxFret)
		}

		b.maxFret = maxFret

		return nil
	}
}

// NewBoard builds a board for the given tuning.
func NewBoard(tuning theory.Tuning, opts ...Option) (*Board, error) {
	if tuning.Strings() == 0 {
		return nil, fmt.Errorf("fretboard: tuning must have strings")
	}

	b := &Board{
		tuning:  tuning,
		maxFret: defaultMaxFret,
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	b.byPitch = make(map[theory.Note][]Position)

	for stringIdx, open := range tuning.OpenNotes() {
		for fret := 0; fret <= b.maxFret; fret++ {
			pitch := open.Transpose(theory.Interval(fret))
			if !pitch.Valid() {
				break
			}

			b.byPitch[pitch] = append(b.byPitch[pitch], Position{String: stringIdx, Fret: fret})
		}
	}

	return b, nil
}

// MaxFret returns the highest playable fret.
func (b *Board) MaxFret() int {
	return b.maxFret
}

// Tuning returns the board's tuning.
func (b *Board) Tuning() theory.Tuning {
	return b.tuning
}

// Positions returns all fretboard positions sounding the given pitch,
// ordered by string then fret.
func (b *Board) Positions(pitch theory.Note) []Position {
	src := b.byPitch[pitch]
	out := make([]Position, len(src))
	copy(out, src)

	return out
}

// PitchAt returns the pitch sounding at the given position.
func (b *Board) PitchAt(pos Position) (theory.Note, error) {
	if pos.String < 0 || pos.String >= b.tuning.Strings() {
		return 0, fmt.Errorf("fretboard: string %d out of range [0, %d)", pos.String, b.tuning.Strings())
	}

	if pos.Fret < 0 || pos.Fret > b.maxFret {
		return 0, fmt.Errorf("fretboard: fret %d out of range [0, %d]", pos.Fret, b.maxFret)
	}

	return b.tuning.OpenNote(pos.String).Transpose(theory.Interval(pos.Fret)), nil
}

// PlayabilityScore normalizes a path's total movement cost against the
// worst case into [0, 1]: 1 is effortless, 0 is implausible. Paths with
// fewer than two positions score 1.
func PlayabilityScore(path []Position) float64 {
	if len(path) < 2 {
		return 1.0
	}

	total := 0.0
	for i := 1; i < len(path); i++ {
		total += MovementCost(path[i-1], path[i])
	}

	baseline := float64(len(path)-1) * worstTransitionCost

	return math.Max(0.0, 1.0-total/baseline)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
