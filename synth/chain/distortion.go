package chain

import (
	"fmt"
	"math"
)

const (
	defaultDistDrive        = 8.0
	defaultDistAsymmetry    = 0.3
	defaultDistOutputLevel  = 0.6
	defaultDistMix          = 1.0
	defaultDistOversampling = 4

	highGainDrive        = 15.0
	highGainAsymmetry    = 0.4
	highGainOutputLevel  = 0.5
	highGainOversampling = 8

	minDistDrive       = 1.0
	maxDistDrive       = 100.0
	minDistAsymmetry   = 0.0
	maxDistAsymmetry   = 1.0
	minDistOutputLevel = 0.0
	maxDistOutputLevel = 2.0
	minDistMix         = 0.0
	maxDistMix         = 1.0

	// Output compensation per unit of drive, so cranking the drive does
	// not also crank the level.
	driveCompensation = 0.1
)

type distortionConfig struct {
	drive        float64
	asymmetry    float64
	outputLevel  float64
	mix          float64
	oversampling int
}

func defaultDistortionConfig() distortionConfig {
	return distortionConfig{
		drive:        defaultDistDrive,
		asymmetry:    defaultDistAsymmetry,
		outputLevel:  defaultDistOutputLevel,
		mix:          defaultDistMix,
		oversampling: defaultDistOversampling,
	}
}

// DistortionOption configures a TubeDistortion.
type DistortionOption func(*distortionConfig) error

// WithDrive sets the input gain before the waveshaper.
func WithDrive(drive float64) DistortionOption {
	return func(cfg *distortionConfig) error {
		if drive < minDistDrive || drive > maxDistDrive ||
			math.IsNaN(drive) || math.IsInf(drive, 0) {
			return fmt.Errorf("distortion drive must be in [%g, %g]: %f",
				minDistDrive, maxDistDrive, drive)
		}

		cfg.drive = drive

		return nil
	}
}

// WithAsymmetry sets how unevenly positive and negative half-waves are
// driven. 0 is symmetric; higher values add even harmonics.
func WithAsymmetry(asymmetry float64) DistortionOption {
	return func(cfg *distortionConfig) error {
		if asymmetry < minDistAsymmetry || asymmetry > maxDistAsymmetry ||
			math.IsNaN(asymmetry) {
			return fmt.Errorf("distortion asymmetry must be in [%g, %g]: %f",
				minDistAsymmetry, maxDistAsymmetry, asymmetry)
		}

		cfg.asymmetry = asymmetry

		return nil
	}
}

// WithOutputLevel sets the post-compensation output gain.
func WithOutputLevel(level float64) DistortionOption {
	return func(cfg *distortionConfig) error {
		if level < minDistOutputLevel || level > maxDistOutputLevel ||
			math.IsNaN(level) || math.IsInf(level, 0) {
			return fmt.Errorf("distortion output level must be in [%g, %g]: %f",
				minDistOutputLevel, maxDistOutputLevel, level)
		}

		cfg.outputLevel = level

		return nil
	}
}

// WithMix sets the dry/wet balance (1 = fully wet).
func WithMix(mix float64) DistortionOption {
	return func(cfg *distortionConfig) error {
		if mix < minDistMix || mix > maxDistMix || math.IsNaN(mix) {
			return fmt.Errorf("distortion mix must be in [%g, %g]: %f",
				minDistMix, maxDistMix, mix)
		}

		cfg.mix = mix

		return nil
	}
}

// WithOversampling sets the oversampling factor (a power of two in
// [1, 8]; 1 disables oversampling).
func WithOversampling(factor int) DistortionOption {
	return func(cfg *distortionConfig) error {
		if factor < 1 || factor > maxOversampleFactor || factor&(factor-1) != 0 {
			return fmt.Errorf("distortion oversampling must be a power of two in [1, %d]: %d",
				maxOversampleFactor, factor)
		}

		cfg.oversampling = factor

		return nil
	}
}

// TubeDistortion is an asymmetric tanh waveshaper. The positive
// half-wave is driven harder than the negative one, which adds the
// even harmonics characteristic of tube stages. Shaping happens at an
// oversampled rate with windowed-sinc filtering on both conversions to
// suppress aliasing.
//
// Output is always bounded in [-1, 1].
type TubeDistortion struct {
	drive       float64
	asymmetry   float64
	outputLevel float64
	mix         float64

	os *oversampler
}

// NewTubeDistortion creates a distortion stage. Defaults are a rhythm
// tone: drive 8, asymmetry 0.3, output 0.6, fully wet, 4x oversampling.
func NewTubeDistortion(opts ...DistortionOption) (*TubeDistortion, error) {
	cfg := defaultDistortionConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	os, err := newOversampler(cfg.oversampling)
	if err != nil {
		return nil, err
	}

	return &TubeDistortion{
		drive:       cfg.drive,
		asymmetry:   cfg.asymmetry,
		outputLevel: cfg.outputLevel,
		mix:         cfg.mix,
		os:          os,
	}, nil
}

// NewHighGainDistortion creates a lead/modern-metal voicing: drive 15,
// asymmetry 0.4, output 0.5, 8x oversampling.
func NewHighGainDistortion(opts ...DistortionOption) (*TubeDistortion, error) {
	base := []DistortionOption{
		WithDrive(highGainDrive),
		WithAsymmetry(highGainAsymmetry),
		WithOutputLevel(highGainOutputLevel),
		WithOversampling(highGainOversampling),
	}

	return NewTubeDistortion(append(base, opts...)...)
}

// Drive returns the input gain.
func (d *TubeDistortion) Drive() float64 { return d.drive }

// Asymmetry returns the half-wave asymmetry.
func (d *TubeDistortion) Asymmetry() float64 { return d.asymmetry }

// OutputLevel returns the output gain.
func (d *TubeDistortion) OutputLevel() float64 { return d.outputLevel }

// Mix returns the dry/wet balance.
func (d *TubeDistortion) Mix() float64 { return d.mix }

// Oversampling returns the oversampling factor.
func (d *TubeDistortion) Oversampling() int { return d.os.factor }

// Process shapes a block and returns a new slice of the same length.
// The input is not modified.
func (d *TubeDistortion) Process(block []float64) []float64 {
	compensation := 1.0 / (1.0 + d.drive*driveCompensation)
	level := compensation * d.outputLevel

	wet := d.os.process(block, func(x float64) float64 {
		return d.shapeSample(x) * level
	})

	out := make([]float64, len(block))
	for i, dry := range block {
		w := wet[i]
		if !isFinite(w) {
			w = 0
		}

		out[i] = clamp(w*d.mix+dry*(1-d.mix), -1, 1)
	}

	return out
}

// ProcessInPlace shapes buf in place.
func (d *TubeDistortion) ProcessInPlace(buf []float64) {
	copy(buf, d.Process(buf))
}

func (d *TubeDistortion) shapeSample(x float64) float64 {
	driven := x * d.drive
	if driven >= 0 {
		return math.Tanh(driven * (1 + d.asymmetry))
	}

	return math.Tanh(driven * (1 - d.asymmetry*0.5))
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}

	if x > hi {
		return hi
	}

	return x
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
