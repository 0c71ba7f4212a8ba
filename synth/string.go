package synth

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-vecmath"
)

const (
	// Per-technique loop decay factors
	openDecay        = 0.996
	palmMuteDecay    = 0.90
	harmonicDecay    = 0.999
	tremoloPickDecay = 0.95

	// Per-technique damping filter cutoffs (Hz)
	openCutoffHz        = 8000.0
	palmMuteCutoffHz    = 1000.0
	harmonicCutoffHz    = 12000.0
	tremoloPickCutoffHz = 6000.0

	// Bass variant: longer sustain, darker damping
	bassDecay    = 0.998
	bassCutoffHz = 2000.0

	// Low-register emphasis for bass weight
	bassSubBoostHz  = 100.0
	bassSubBoost    = 1.3
	bassLowBoostHz  = 200.0
	bassLowBoost    = 1.15
	minVoiceSamples = 2
)

// Technique selects the excitation and damping character of a plucked
// string.
type Technique int

const (
	// TechniqueOpen is a normally picked, ringing string.
	TechniqueOpen Technique = iota
	// TechniquePalmMute damps the string at the bridge for a short,
	// percussive chug.
	TechniquePalmMute
	// TechniqueHarmonic is a lightly touched natural harmonic with long
	// sustain and a bright spectrum.
	TechniqueHarmonic
	// TechniqueTremoloPick is fast alternate picking with a slightly
	// shortened sustain.
	TechniqueTremoloPick
)

// String returns the technique name.
func (t Technique) String() string {
	switch t {
	case TechniqueOpen:
		return "open"
	case TechniquePalmMute:
		return "palm mute"
	case TechniqueHarmonic:
		return "harmonic"
	case TechniqueTremoloPick:
		return "tremolo pick"
	default:
		return "unknown"
	}
}

func (t Technique) parameters() (decay, cutoffHz float64, err error) {
	switch t {
	case TechniqueOpen:
		return openDecay, openCutoffHz, nil
	case TechniquePalmMute:
		return palmMuteDecay, palmMuteCutoffHz, nil
	case TechniqueHarmonic:
		return harmonicDecay, harmonicCutoffHz, nil
	case TechniqueTremoloPick:
		return tremoloPickDecay, tremoloPickCutoffHz, nil
	default:
		return 0, 0, fmt.Errorf("synth: unknown technique %d", int(t))
	}
}

// onePole is a single-pole lowpass used for loop damping and bass tone
// shaping.
type onePole struct {
	alpha float64
	prev  float64
}

func newOnePole(cutoffHz, sampleRate float64) *onePole {
	return &onePole{
		alpha: 1 - math.Exp(-2*math.Pi*cutoffHz/sampleRate),
	}
}

func (f *onePole) process(x float64) float64 {
	f.prev += (x - f.prev) * f.alpha
	return f.prev
}

func (f *onePole) reset() {
	f.prev = 0
}

// StringVoice is a Karplus-Strong plucked string. The delay line is
// seeded with white noise on construction (the pluck); each output
// sample feeds the averaged, decayed and damped loop.
type StringVoice struct {
	buffer    []float64
	index     int
	decay     float64
	damping   *onePole
	technique Technique
}

// NewStringVoice creates a plucked-string voice at the given pitch.
//
// The delay-line length is sampleRate/frequency rounded to the nearest
// sample, so very high frequencies (loop shorter than two samples) are
// rejected. The rng seeds the excitation noise and must not be nil.
func NewStringVoice(sampleRate, frequency float64, technique Technique, rng *rand.Rand) (*StringVoice, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("synth: sample rate must be positive and finite: %f", sampleRate)
	}

	if frequency <= 0 || math.IsNaN(frequency) || math.IsInf(frequency, 0) {
		return nil, fmt.Errorf("synth: frequency must be positive and finite: %f", frequency)
	}

	if rng == nil {
		return nil, fmt.Errorf("synth: rng must not be nil")
	}

	decay, cutoffHz, err := technique.parameters()
	if err != nil {
		return nil, err
	}

	length := int(math.Round(sampleRate / frequency))
	if length < minVoiceSamples {
		return nil, fmt.Errorf("synth: frequency %f too high for sample rate %f", frequency, sampleRate)
	}

	v := &StringVoice{
		buffer:    make([]float64, length),
		decay:     decay,
		damping:   newOnePole(cutoffHz, sampleRate),
		technique: technique,
	}
	v.Pluck(rng)

	return v, nil
}

// Technique returns the voice's playing technique.
func (v *StringVoice) Technique() Technique { return v.technique }

// Pluck re-excites the string by refilling the delay line with white
// noise and clearing the damping filter.
func (v *StringVoice) Pluck(rng *rand.Rand) {
	for i := range v.buffer {
		v.buffer[i] = rng.Float64()*2 - 1
	}

	v.index = 0
	v.damping.reset()
}

// NextSample advances the string model by one sample and returns the
// current delay-line output.
func (v *StringVoice) NextSample() float64 {
	current := v.buffer[v.index]

	next := v.index + 1
	if next == len(v.buffer) {
		next = 0
	}

	// Average of adjacent samples acts as the loop lowpass; decay and
	// the damping filter shape the sustain.
	fed := (current + v.buffer[next]) * 0.5 * v.decay
	fed = v.damping.process(fed)

	v.buffer[v.index] = fed
	v.index = next

	return current
}

// RenderGuitarNote synthesizes a complete guitar note of the given
// duration in seconds, shaped by a technique-dependent amplitude
// envelope and scaled by velocity in [0, 1].
func RenderGuitarNote(sampleRate, frequency, duration, velocity float64, technique Technique, rng *rand.Rand) ([]float64, error) {
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("synth: duration must be positive and finite: %f", duration)
	}

	if velocity < 0 || velocity > 1 || math.IsNaN(velocity) {
		return nil, fmt.Errorf("synth: velocity must be in [0, 1]: %f", velocity)
	}

	voice, err := NewStringVoice(sampleRate, frequency, technique, rng)
	if err != nil {
		return nil, err
	}

	n := int(duration * sampleRate)
	out := make([]float64, n)
	env := make([]float64, n)

	for i := range out {
		out[i] = voice.NextSample()
		env[i] = noteEnvelope(technique, float64(i)/float64(n)) * velocity
	}

	vecmath.MulBlockInPlace(out, env)

	return out, nil
}

// noteEnvelope shapes a note's amplitude over normalized time t in
// [0, 1).
func noteEnvelope(technique Technique, t float64) float64 {
	switch technique {
	case TechniquePalmMute:
		// Percussive: quick attack, squared falloff
		if t < 0.005 {
			return t / 0.005
		}

		rem := 1 - t

		return rem * rem
	case TechniqueHarmonic:
		if t < 0.02 {
			return t / 0.02
		}

		return 1 - (t-0.02)*0.2
	case TechniqueTremoloPick:
		if t < 0.005 {
			return t / 0.005
		}

		return 1 - (t-0.005)*0.5
	default:
		// Open and anything ringing: quick attack, slow linear decay
		if t < 0.01 {
			return t / 0.01
		}

		return 1 - (t-0.01)*0.3
	}
}

// RenderBassNote synthesizes a bass note: an open-string voice with
// longer sustain, darker damping, and emphasis of the low register for
// weight under a detuned guitar.
func RenderBassNote(sampleRate, frequency, duration, velocity float64, rng *rand.Rand) ([]float64, error) {
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("synth: duration must be positive and finite: %f", duration)
	}

	if velocity < 0 || velocity > 1 || math.IsNaN(velocity) {
		return nil, fmt.Errorf("synth: velocity must be in [0, 1]: %f", velocity)
	}

	voice, err := NewStringVoice(sampleRate, frequency, TechniqueOpen, rng)
	if err != nil {
		return nil, err
	}

	voice.decay = bassDecay
	tone := newOnePole(bassCutoffHz, sampleRate)

	boost := 1.0

	switch {
	case frequency < bassSubBoostHz:
		boost = bassSubBoost
	case frequency < bassLowBoostHz:
		boost = bassLowBoost
	}

	n := int(duration * sampleRate)
	out := make([]float64, n)

	for i := range out {
		t := float64(i) / float64(n)
		sample := voice.NextSample() * bassEnvelope(t) * velocity
		out[i] = tone.process(sample) * boost
	}

	return out, nil
}

// bassEnvelope: punchy attack, near-flat sustain, short tail.
func bassEnvelope(t float64) float64 {
	switch {
	case t < 0.005:
		return t / 0.005
	case t < 0.8:
		return 0.9 + 0.1*(1-(t-0.005)/0.795)
	default:
		return 0.9 * (1 - (t-0.8)/0.2)
	}
}
