package rhythm

import "fmt"

// Phrase is a rhythmic cell whose length need not match the measure it is
// laid over. Repeating a phrase of length L across measures of M steps
// shifts its accents each bar until both cycles realign.
type Phrase struct {
	grid Grid
}

// NewPhrase wraps a grid as a polymetric phrase. The grid must be non-empty.
func NewPhrase(g Grid) (Phrase, error) {
	if len(g) == 0 {
		return Phrase{}, fmt.Errorf("rhythm: phrase must have at least one step, got %d", len(g))
	}

	return Phrase{grid: g.Clone()}, nil
}

// Len returns the phrase length in steps.
func (p Phrase) Len() int {
	return len(p.grid)
}

// Grid returns a copy of the underlying cell.
func (p Phrase) Grid() Grid {
	return p.grid.Clone()
}

// ResolutionMeasures returns the number of measures of measureSteps after
// which a phrase of phraseSteps realigns with the downbeat: lcm/measureSteps.
func ResolutionMeasures(phraseSteps, measureSteps int) (int, error) {
	if phraseSteps <= 0 {
		return 0, fmt.Errorf("rhythm: phrase steps must be positive, got %d", phraseSteps)
	}

	if measureSteps <= 0 {
		return 0, fmt.Errorf("rhythm: measure steps must be positive, got %d", measureSteps)
	}

	return lcm(phraseSteps, measureSteps) / measureSteps, nil
}

// FillMeasures tiles the phrase across the given number of measures of
// measureSteps each. When truncate is set the tiling restarts at each
// barline, pinning the phrase head to every downbeat instead of letting
// it drift across bars.
func (p Phrase) FillMeasures(measures, measureSteps int, truncate bool) (Grid, error) {
	if measures <= 0 {
		return nil, fmt.Errorf("rhythm: measure count must be positive, got %d", measures)
	}

	if measureSteps <= 0 {
		return nil, fmt.Errorf("rhythm: measure steps must be positive, got %d", measureSteps)
	}

	out := make(Grid, measures*measureSteps)

	if truncate {
		for m := range measures {
			base := m * measureSteps
			for i := 0; i < measureSteps; i++ {
				out[base+i] = p.grid[i%len(p.grid)]
			}
		}

		return out, nil
	}

	for i := range out {
		out[i] = p.grid[i%len(p.grid)]
	}

	return out, nil
}

// ResolutionGrid tiles the phrase over exactly as many measures as it takes
// to realign with the downbeat.
func (p Phrase) ResolutionGrid(measureSteps int) (Grid, error) {
	measures, err := ResolutionMeasures(len(p.grid), measureSteps)
	if err != nil {
		return nil, err
	}

	return p.FillMeasures(measures, measureSteps, false)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

func lcm(a, b int) int {
	return a / gcd(a, b) * b
}
