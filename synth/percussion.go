package synth

import (
	"fmt"
	"math"
	"math/rand"
)

const (
	kickDuration     = 0.4
	kickBasePitchHz  = 45.0
	kickPitchSweepHz = 175.0
	kickPitchDecay   = 50.0
	kickAmpDecay     = 8.0
	kickClickDecay   = 180.0
	kickClickAmount  = 1.2
	kickClickMix     = 0.4
	kickSaturation   = 4.5

	snareDuration   = 0.3
	snareBodyHz     = 190.0
	snareAmpDecay   = 12.0
	snarePitchDecay = 25.0
	snareBodyLevel  = 0.35
	snareNoiseLevel = 0.9
	snareNoiseDrive = 1.2
	snareClipDrive  = 3.0
	snareClipLimit  = 0.95

	hiHatClosedDuration = 0.05
	hiHatOpenDuration   = 0.5
	hiHatClosedDecay    = 50.0
	hiHatOpenDecay      = 8.0
	hiHatLevel          = 0.7

	crashDuration = 1.2
	crashDecay    = 5.0
	crashRingAHz  = 400.0
	crashRingBHz  = 340.0
	crashRingMix  = 0.5
)

// RenderKick synthesizes a kick drum hit: a sine body whose pitch
// sweeps from the beater attack down to the sub fundamental, a sharp
// noise click, then hard tanh saturation for punch.
func RenderKick(sampleRate, amplitude float64, rng *rand.Rand) ([]float64, error) {
	if err := validatePercussion(sampleRate, amplitude, rng); err != nil {
		return nil, err
	}

	n := int(kickDuration * sampleRate)
	out := make([]float64, n)

	for i := range out {
		t := float64(i) / sampleRate

		pitch := kickBasePitchHz + kickPitchSweepHz*math.Exp(-t*kickPitchDecay)
		ampEnv := math.Exp(-t * kickAmpDecay)

		// Sine plus a square component for weight
		phase := 2 * math.Pi * pitch * t
		body := (math.Sin(phase)*0.7 + sign(math.Sin(phase*0.5))*0.3) * ampEnv

		click := (rng.Float64()*2 - 1) * kickClickAmount * math.Exp(-t*kickClickDecay)

		sample := math.Tanh((body + click*kickClickMix) * kickSaturation)
		out[i] = sample * amplitude
	}

	return out, nil
}

// RenderSnare synthesizes a snare hit: a short tonal body with a small
// downward pitch dive buried under bright noise, clipped hard.
func RenderSnare(sampleRate, amplitude float64, rng *rand.Rand) ([]float64, error) {
	if err := validatePercussion(sampleRate, amplitude, rng); err != nil {
		return nil, err
	}

	n := int(snareDuration * sampleRate)
	out := make([]float64, n)

	for i := range out {
		t := float64(i) / sampleRate
		ampEnv := math.Exp(-t * snareAmpDecay)

		pitchMod := 1 - math.Exp(-t*snarePitchDecay)*0.3
		body := math.Sin(2*math.Pi*snareBodyHz*pitchMod*t) * ampEnv * snareBodyLevel

		noise := (rng.Float64()*2 - 1) * ampEnv * snareNoiseLevel * snareNoiseDrive

		sample := clampSample((body+noise)*snareClipDrive, snareClipLimit)
		out[i] = sample * amplitude
	}

	return out, nil
}

// RenderHiHat synthesizes a hi-hat hit from decaying white noise. Open
// hats sustain roughly ten times longer than closed ones.
func RenderHiHat(sampleRate, amplitude float64, open bool, rng *rand.Rand) ([]float64, error) {
	if err := validatePercussion(sampleRate, amplitude, rng); err != nil {
		return nil, err
	}

	duration := hiHatClosedDuration
	decay := hiHatClosedDecay

	if open {
		duration = hiHatOpenDuration
		decay = hiHatOpenDecay
	}

	n := int(duration * sampleRate)
	out := make([]float64, n)

	for i := range out {
		t := float64(i) / sampleRate
		noise := rng.Float64()*2 - 1
		out[i] = noise * math.Exp(-t*decay) * amplitude * hiHatLevel
	}

	return out, nil
}

// RenderCrash synthesizes a trashy crash: white noise plus a
// ring-modulated metallic component under a slow exponential decay.
func RenderCrash(sampleRate, amplitude float64, rng *rand.Rand) ([]float64, error) {
	if err := validatePercussion(sampleRate, amplitude, rng); err != nil {
		return nil, err
	}

	n := int(crashDuration * sampleRate)
	out := make([]float64, n)

	for i := range out {
		t := float64(i) / sampleRate
		env := math.Exp(-t * crashDecay)
		noise := rng.Float64()*2 - 1
		metallic := math.Sin(2*math.Pi*crashRingAHz*t) * math.Sin(2*math.Pi*crashRingBHz*t)
		out[i] = (noise + metallic*crashRingMix) * env * amplitude
	}

	return out, nil
}

func validatePercussion(sampleRate, amplitude float64, rng *rand.Rand) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("synth: sample rate must be positive and finite: %f", sampleRate)
	}

	if amplitude < 0 || amplitude > 1 || math.IsNaN(amplitude) {
		return fmt.Errorf("synth: amplitude must be in [0, 1]: %f", amplitude)
	}

	if rng == nil {
		return fmt.Errorf("synth: rng must not be nil")
	}

	return nil
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}

	if x > 0 {
		return 1
	}

	return 0
}

func clampSample(x, limit float64) float64 {
	if x > limit {
		return limit
	}

	if x < -limit {
		return -limit
	}

	return x
}
