package rhythm

import "fmt"

// Gallop returns the thrash gallop figure over the given number of
// beats: an eighth note followed by two sixteenths, i.e. hits on steps
// 0, 2 and 3 of every 4-step beat.
func Gallop(beats int) (Grid, error) {
	if beats <= 0 {
		return nil, fmt.Errorf("rhythm: gallop beats must be positive, got %d", beats)
	}

	g := make(Grid, beats*4)

	for beat := range beats {
		base := beat * 4
		g[base] = true
		g[base+2] = true
		g[base+3] = true
	}

	return g, nil
}
