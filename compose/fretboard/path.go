package fretboard

import (
	"fmt"

	"github.com/cwbudde/algo-metal/compose/riff"
	"github.com/cwbudde/algo-metal/compose/theory"
)

// FindPath chooses a fretboard position for each pitch in order: the
// first pitch takes its lowest position, then each subsequent pitch takes
// the candidate with the smallest movement cost from the previous choice,
// ties going to the lowest fret. A pitch with no position on the board is
// a contract error.
func (b *Board) FindPath(pitches []theory.Note) ([]Position, error) {
	if len(pitches) == 0 {
		return nil, nil
	}

	path := make([]Position, 0, len(pitches))

	first := b.byPitch[pitches[0]]
	if len(first) == 0 {
		return nil, fmt.Errorf("fretboard: pitch %d unreachable in tuning %s", pitches[0], b.tuning.Name())
	}

	current := first[0]
	for _, cand := range first[1:] {
		if cand.Fret < current.Fret || (cand.Fret == current.Fret && cand.String < current.String) {
			current = cand
		}
	}

	path = append(path, current)

	for _, pitch := range pitches[1:] {
		candidates := b.byPitch[pitch]
		if len(candidates) == 0 {
			return nil, fmt.Errorf("fretboard: pitch %d unreachable in tuning %s", pitch, b.tuning.Name())
		}

		next := candidates[0]
		nextCost := MovementCost(current, next)

		for _, cand := range candidates[1:] {
			cost := MovementCost(current, cand)
			if cost < nextCost || (cost == nextCost && cand.Fret < next.Fret) {
				next, nextCost = cand, cost
			}
		}

		path = append(path, next)
		current = next
	}

	return path, nil
}

// RiffPath finds the fingering for a riff's sounding pitches.
func (b *Board) RiffPath(r riff.Riff) ([]Position, error) {
	return b.FindPath(r.Pitches())
}

// IsPlayable reports whether the riff's fingering scores at or above the
// playability threshold.
func (b *Board) IsPlayable(r riff.Riff) (bool, error) {
	path, err := b.RiffPath(r)
	if err != nil {
		return false, err
	}

	return PlayabilityScore(path) >= defaultPlayableThreshold, nil
}

// OptimizePath substitutes positional alternatives for transitions whose
// cost exceeds the ceiling: for each such position the alternative with
// the cheapest combined in/out cost replaces it, exploiting the pitch's
// fretboard redundancy. Transitions that stay expensive under every
// alternative are left in place.
func (b *Board) OptimizePath(path []Position) ([]Position, error) {
	if len(path) < 2 {
		out := make([]Position, len(path))
		copy(out, path)

		return out, nil
	}

	out := make([]Position, len(path))
	copy(out, path)

	for i := 1; i < len(out); i++ {
		if MovementCost(out[i-1], out[i]) <= defaultCostCeiling {
			continue
		}

		pitch, err := b.PitchAt(out[i])
		if err != nil {
			return nil, err
		}

		best := out[i]
		bestCost := transitionCost(out, i, best)

		for _, cand := range b.byPitch[pitch] {
			if cost := transitionCost(out, i, cand); cost < bestCost {
				best, bestCost = cand, cost
			}
		}

		out[i] = best
	}

	return out, nil
}

// OptimizeRiff finds the riff's fingering, relaxes over-ceiling
// transitions, and returns the fingering with its playability score. The
// riff's pitches are preserved; only positions move.
func (b *Board) OptimizeRiff(r riff.Riff) ([]Position, float64, error) {
	path, err := b.RiffPath(r)
	if err != nil {
		return nil, 0, err
	}

	optimized, err := b.OptimizePath(path)
	if err != nil {
		return nil, 0, err
	}

	return optimized, PlayabilityScore(optimized), nil
}

// transitionCost sums the movement cost into and out of slot i if cand
// were placed there.
func transitionCost(path []Position, i int, cand Position) float64 {
	cost := MovementCost(path[i-1], cand)
	if i+1 < len(path) {
		cost += MovementCost(cand, path[i+1])
	}

	return cost
}
