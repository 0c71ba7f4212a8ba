// Package rhythm provides step-grid generation for metal composition:
// Euclidean pulse distribution, grid rotation, polymetric phrase
// arithmetic, and breakdown patterns with halftime feel.
package rhythm

import "fmt"

// Grid is a fixed-length sequence of hit/rest slots.
type Grid []bool

// Euclidean distributes pulses hits over steps slots with maximally
// even spacing (Bjorklund's algorithm in its bucket formulation).
// pulses must satisfy 0 <= pulses <= steps.
func Euclidean(steps, pulses int) (Grid, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("rhythm: euclidean steps must be > 0, got %d", steps)
	}

	if pulses < 0 || pulses > steps {
		return nil, fmt.Errorf("rhythm: euclidean pulses must be in [0, %d], got %d", steps, pulses)
	}

	g := make(Grid, steps)
	if pulses == 0 {
		return g, nil
	}

	// Slot i is a hit iff the bucket floor(i*pulses/steps) advances
	// over the previous slot's. Slot 0 always carries the downbeat.
	g[0] = true

	for i := 1; i < steps; i++ {
		if i*pulses/steps != (i-1)*pulses/steps {
			g[i] = true
		}
	}

	return g, nil
}

// Rotate returns g cyclically shifted left by offset steps. Negative
// offsets rotate right.
func (g Grid) Rotate(offset int) Grid {
	n := len(g)
	if n == 0 {
		return Grid{}
	}

	offset %= n
	if offset < 0 {
		offset += n
	}

	out := make(Grid, n)
	copy(out, g[offset:])
	copy(out[n-offset:], g[:offset])

	return out
}

// Pulses returns the number of hit slots in g.
func (g Grid) Pulses() int {
	count := 0

	for _, hit := range g {
		if hit {
			count++
		}
	}

	return count
}

// HitSteps returns the slot indices of all hits in order.
func (g Grid) HitSteps() []int {
	steps := make([]int, 0, len(g))

	for i, hit := range g {
		if hit {
			steps = append(steps, i)
		}
	}

	return steps
}

// Clone returns an independent copy of g.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	copy(out, g)

	return out
}
