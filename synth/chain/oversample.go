package chain

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

const (
	oversampleTapsPerPhase = 32
	oversampleCutoffScale  = 0.92
	oversampleKaiserBeta   = 7.5
	maxOversampleFactor    = 8
)

// oversampler performs integer-factor up/down conversion around a
// nonlinear stage. Both directions filter with the same windowed-sinc
// (Kaiser) lowpass at half the base bandwidth so the waveshaper's
// harmonics fold back below audibility instead of aliasing.
type oversampler struct {
	factor   int
	upTaps   []float64 // passband gain = factor (compensates zero-stuffing)
	downTaps []float64 // passband gain = 1
}

func newOversampler(factor int) (*oversampler, error) {
	if factor < 1 || factor > maxOversampleFactor || factor&(factor-1) != 0 {
		return nil, fmt.Errorf("oversampling factor must be a power of two in [1, %d]: %d",
			maxOversampleFactor, factor)
	}

	o := &oversampler{factor: factor}
	if factor == 1 {
		return o, nil
	}

	taps := designSincLowpass(factor)

	o.upTaps = make([]float64, len(taps))
	o.downTaps = make([]float64, len(taps))

	for i, h := range taps {
		o.upTaps[i] = h * float64(factor)
		o.downTaps[i] = h
	}

	return o, nil
}

// designSincLowpass designs a unity-gain windowed-sinc lowpass with
// cutoff just below Nyquist/factor.
func designSincLowpass(factor int) []float64 {
	nTaps := oversampleTapsPerPhase * factor
	fc := (0.5 / float64(factor)) * oversampleCutoffScale

	taps := make([]float64, nTaps)
	window := make([]float64, nTaps)
	center := 0.5 * float64(nTaps-1)

	for n := range taps {
		t := float64(n) - center
		taps[n] = 2 * fc * sinc(2*fc*t)
		window[n] = kaiserWindow(n, nTaps, oversampleKaiserBeta)
	}

	vecmath.MulBlockInPlace(taps, window)

	var sum float64
	for _, h := range taps {
		sum += h
	}

	for i := range taps {
		taps[i] /= sum
	}

	return taps
}

// process runs block through shape at the oversampled rate. The output
// has the same length as the input; filter group delay is compensated
// by center-aligned convolution.
func (o *oversampler) process(block []float64, shape func(float64) float64) []float64 {
	if o.factor == 1 {
		out := make([]float64, len(block))
		for i, x := range block {
			out[i] = shape(x)
		}

		return out
	}

	// Zero-stuff to the oversampled rate, then interpolate.
	stuffed := make([]float64, len(block)*o.factor)
	for i, x := range block {
		stuffed[i*o.factor] = x
	}

	up := convolveCentered(stuffed, o.upTaps)

	for i, x := range up {
		up[i] = shape(x)
	}

	down := convolveCentered(up, o.downTaps)

	out := make([]float64, len(block))
	for i := range out {
		out[i] = down[i*o.factor]
	}

	return out
}

// convolveCentered computes a same-length convolution with the kernel
// center aligned to each output sample, treating samples outside the
// input as zero.
func convolveCentered(input, taps []float64) []float64 {
	out := make([]float64, len(input))
	center := (len(taps) - 1) / 2

	for i := range out {
		var acc float64

		for k, h := range taps {
			idx := i + center - k
			if idx < 0 || idx >= len(input) {
				continue
			}

			acc += h * input[idx]
		}

		out[i] = acc
	}

	return out
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	return math.Sin(math.Pi*x) / (math.Pi * x)
}

func kaiserWindow(i, n int, beta float64) float64 {
	if n <= 1 || beta == 0 {
		return 1
	}

	t := 2*float64(i)/float64(n-1) - 1
	a := math.Sqrt(math.Max(0, 1-t*t))

	return besselI0(beta*a) / besselI0(beta)
}

func besselI0(x float64) float64 {
	// Power series approximation.
	sum := 1.0
	term := 1.0

	x2 := (x * x) / 4
	for k := 1; k < 64; k++ {
		term *= x2 / float64(k*k)

		sum += term
		if term < 1e-18*sum {
			break
		}
	}

	return sum
}
