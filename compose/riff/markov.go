// Package riff generates metal riffs: Markov-chain degree walks, pedal
// point alternation, and the four-phase motif structure (introduction,
// repetition, variation, destruction).
package riff

import (
	"fmt"
	"math/rand"
)

// Model is a first-order Markov chain over scale degrees. It is a flat
// indexed table, one probability row per degree, each row normalized to
// sum to one.
type Model struct {
	name string
	rows [][]float64
}

// transitionWeight describes one preset transition: a jump of offset scale
// degrees (0 targets the root, acting as the pedal return) with a raw
// weight. Rows are normalized after all weights are applied.
type transitionWeight struct {
	offset int
	weight float64
}

// HeavyModel returns the heavy/thrash transition table: strong pedal
// return, minor-second movement, and power-chord fourths and fifths.
func HeavyModel(degrees int) (Model, error) {
	return newModel("heavy", degrees, []transitionWeight{
		{offset: 0, weight: 0.4},
		{offset: 1, weight: 0.25},
		{offset: 3, weight: 0.2},
		{offset: 4, weight: 0.15},
	})
}

// DeathModel returns the death metal transition table: heavy pedal return
// for chugging, half-step movement, and the tritone.
func DeathModel(degrees int) (Model, error) {
	return newModel("death", degrees, []transitionWeight{
		{offset: 0, weight: 0.5},
		{offset: 1, weight: 0.3},
		{offset: 6, weight: 0.2},
	})
}

// ProgressiveModel returns the progressive metal transition table: wider
// intervals, thirds, fifths, and octave jumps.
func ProgressiveModel(degrees int) (Model, error) {
	return newModel("progressive", degrees, []transitionWeight{
		{offset: 0, weight: 0.3},
		{offset: 2, weight: 0.25},
		{offset: 4, weight: 0.25},
		{offset: 7, weight: 0.2},
	})
}

func newModel(name string, degrees int, weights []transitionWeight) (Model, error) {
	if degrees <= 0 {
		return Model{}, fmt.Errorf("riff: model needs at least one degree, got %d", degrees)
	}

	rows := make([][]float64, degrees)

	for state := range rows {
		row := make([]float64, degrees)

		for _, tw := range weights {
			target := tw.offset
			if target != 0 {
				target = state + tw.offset
			}

			// Jumps past the top of the scale are dropped, never wrapped;
			// the remaining weights are renormalized below.
			if target >= degrees {
				continue
			}

			row[target] += tw.weight
		}

		total := 0.0
		for _, w := range row {
			total += w
		}

		if total == 0 {
			row[0] = 1.0
		} else {
			for i := range row {
				row[i] /= total
			}
		}

		rows[state] = row
	}

	return Model{name: name, rows: rows}, nil
}

// Name returns the preset name of the model.
func (m Model) Name() string {
	return m.name
}

// Degrees returns the number of scale degrees the model walks over.
func (m Model) Degrees() int {
	return len(m.rows)
}

// Row returns a copy of the probability row for the given state.
func (m Model) Row(state int) ([]float64, error) {
	if state < 0 || state >= len(m.rows) {
		return nil, fmt.Errorf("riff: model state must be in [0, %d), got %d", len(m.rows), state)
	}

	row := make([]float64, len(m.rows[state]))
	copy(row, m.rows[state])

	return row, nil
}

// NextDegree draws the next scale degree from the row for state: the first
// transition whose cumulative probability exceeds the draw wins.
func (m Model) NextDegree(state int, rng *rand.Rand) (int, error) {
	if state < 0 || state >= len(m.rows) {
		return 0, fmt.Errorf("riff: model state must be in [0, %d), got %d", len(m.rows), state)
	}

	if rng == nil {
		return 0, fmt.Errorf("riff: random source must not be nil")
	}

	draw := rng.Float64()
	cum := 0.0
	last := state

	for degree, p := range m.rows[state] {
		if p == 0 {
			continue
		}

		cum += p
		last = degree

		if cum > draw {
			return degree, nil
		}
	}

	// Rounding can leave the cumulative sum a hair under the draw;
	// the final reachable degree absorbs it.
	return last, nil
}
