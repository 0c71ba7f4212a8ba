package rhythm

import (
	"fmt"
	"math/rand"
)

const (
	defaultBurstDensity = 0.4
	minBurstDensity     = 0.0
	maxBurstDensity     = 1.0

	// Extra rest steps drawn on top of the matching rest floor.
	maxRestSlack = 3
)

// Breakdown generates a clustered burst pattern: short runs of hits separated
// by rests, where every rest run is at least as long as the burst that
// preceded it. The spacing is what gives a breakdown its weight; density in
// (0,1] scales the maximum burst length.
func Breakdown(steps int, burstDensity float64, rng *rand.Rand) (Grid, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("rhythm: breakdown steps must be positive, got %d", steps)
	}

	if burstDensity <= minBurstDensity || burstDensity > maxBurstDensity {
		return nil, fmt.Errorf("rhythm: burst density must be in (%v, %v], got %v",
			minBurstDensity, maxBurstDensity, burstDensity)
	}

	if rng == nil {
		return nil, fmt.Errorf("rhythm: random source must not be nil")
	}

	maxBurst := 1 + int(burstDensity*3.0)
	g := make(Grid, steps)

	i := 0
	for i < steps {
		burst := 1 + rng.Intn(maxBurst)
		rest := burst + rng.Intn(maxRestSlack)

		// A burst only lands when its full matching rest still fits;
		// otherwise the tail of the bar stays silent.
		if i+burst+rest > steps {
			break
		}

		for j := range burst {
			g[i+j] = true
		}

		i += burst + rest
	}

	// Never hand back an empty bar: anchor a single downbeat hit.
	if g.Pulses() == 0 {
		g[0] = true
	}

	return g, nil
}

// BackbeatSnare returns the straight-time snare grid: accents on beats two
// and four of the bar (steps steps/4 and 3*steps/4).
func BackbeatSnare(steps int) (Grid, error) {
	if steps < 4 || steps%4 != 0 {
		return nil, fmt.Errorf("rhythm: snare grid steps must be a positive multiple of 4, got %d", steps)
	}

	g := make(Grid, steps)
	g[steps/4] = true
	g[3*steps/4] = true

	return g, nil
}

// HalftimeSnare returns the halftime snare grid used under breakdowns: the
// backbeat accents collapse onto a single hit at beat three (step steps/2),
// halving the perceived tempo without touching the pulse grid.
func HalftimeSnare(steps int) (Grid, error) {
	if steps < 2 || steps%2 != 0 {
		return nil, fmt.Errorf("rhythm: snare grid steps must be a positive multiple of 2, got %d", steps)
	}

	g := make(Grid, steps)
	g[steps/2] = true

	return g, nil
}
