// Package render turns a composed song into a mono sample buffer. Each
// section's riff is played through Karplus-Strong voices and the amp
// chain, doubled an octave down (or in unison, for extended-range
// tunings) by a bass stem, and layered with synthesized drums. Sections
// are concatenated and the final mix is peak-normalized.
package render

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-metal/compose/drums"
	"github.com/cwbudde/algo-metal/compose/song"
	"github.com/cwbudde/algo-metal/synth"
	"github.com/cwbudde/algo-metal/synth/chain"
)

const (
	// Fixed mix weights: guitars carry the arrangement, drums sit under.
	guitarMixWeight = 0.6
	drumMixWeight   = 0.4

	// Bass level inside the guitar stem.
	bassMixLevel = 0.5

	// Final peak target.
	peakCeiling = 0.95

	// Humanizer tick offsets are 96-PPQ; one sixteenth step is 24 ticks.
	ticksPerStep = 24

	stepsPerBeat = 4

	guitarNoteVelocity = 0.9

	// Bass runs its own, milder distortion without a cabinet.
	bassDrive        = 5.0
	bassOversampling = 2

	rimshotLevel = 0.8

	midiVelocityMax = 127.0
)

// RenderSong renders the whole song to mono samples at the song's
// sample rate. Rendering is deterministic for a given song: excitation
// noise reuses the song's seed.
func RenderSong(s *song.Song) ([]float64, error) {
	r, err := newRenderer(s)
	if err != nil {
		return nil, err
	}

	return r.render()
}

type renderer struct {
	song *song.Song
	rng  *rand.Rand

	guitarChain *chain.Chain
	bassDist    *chain.TubeDistortion

	sampleRate     float64
	samplesPerStep int
}

func newRenderer(s *song.Song) (*renderer, error) {
	if s == nil {
		return nil, fmt.Errorf("render: song must not be nil")
	}

	if s.TempoBPM <= 0 {
		return nil, fmt.Errorf("render: tempo must be positive, got %d", s.TempoBPM)
	}

	if s.SampleRate <= 0 {
		return nil, fmt.Errorf("render: sample rate must be positive, got %d", s.SampleRate)
	}

	if len(s.Sections) == 0 {
		return nil, fmt.Errorf("render: song has no sections")
	}

	sampleRate := float64(s.SampleRate)

	secondsPerStep := 60.0 / (float64(s.TempoBPM) * stepsPerBeat)

	samplesPerStep := int(math.Round(secondsPerStep * sampleRate))
	if samplesPerStep < 1 {
		return nil, fmt.Errorf("render: tempo %d too fast for sample rate %d", s.TempoBPM, s.SampleRate)
	}

	guitarChain, err := newGuitarChain(s.Subgenre, sampleRate)
	if err != nil {
		return nil, err
	}

	bassDist, err := chain.NewTubeDistortion(
		chain.WithDrive(bassDrive),
		chain.WithOversampling(bassOversampling),
	)
	if err != nil {
		return nil, err
	}

	return &renderer{
		song:           s,
		rng:            rand.New(rand.NewSource(s.Seed)),
		guitarChain:    guitarChain,
		bassDist:       bassDist,
		sampleRate:     sampleRate,
		samplesPerStep: samplesPerStep,
	}, nil
}

// newGuitarChain picks the amp voicing for the subgenre: modern
// high-gain for death metal, with a convolved speaker response on top
// of the biquad cabinet; the rhythm voicing for everything else.
func newGuitarChain(subgenre song.Subgenre, sampleRate float64) (*chain.Chain, error) {
	if subgenre == song.Death {
		ir, err := chain.SyntheticIR(chain.DefaultIRLength)
		if err != nil {
			return nil, err
		}

		return chain.NewHighGainChain(sampleRate, chain.WithConvolutionCabinet(ir))
	}

	return chain.NewMetalChain(sampleRate)
}

func (r *renderer) render() ([]float64, error) {
	var out []float64

	for _, sec := range r.song.Sections {
		mixed, err := r.renderSection(sec)
		if err != nil {
			return nil, err
		}

		out = append(out, mixed...)
	}

	normalize(out, peakCeiling)

	return out, nil
}

func (r *renderer) renderSection(sec song.Section) ([]float64, error) {
	sectionSamples := sec.Measures * song.StepsPerMeasure * r.samplesPerStep

	guitar := make([]float64, sectionSamples)
	bass := make([]float64, sectionSamples)

	if err := r.renderStrings(sec, guitar, bass); err != nil {
		return nil, err
	}

	drumsBuf, err := r.renderDrums(sec, sectionSamples)
	if err != nil {
		return nil, err
	}

	r.guitarChain.Reset()

	guitarOut, err := r.guitarChain.Process(guitar)
	if err != nil {
		return nil, err
	}

	r.bassDist.ProcessInPlace(bass)

	trim := sec.Kind.Intensity().Trim()

	mixed := make([]float64, sectionSamples)
	for i := range mixed {
		stem := guitarOut[i] + bass[i]*bassMixLevel
		mixed[i] = (stem*guitarMixWeight + drumsBuf[i]*drumMixWeight) * trim
	}

	return mixed, nil
}

func (r *renderer) renderStrings(sec song.Section, guitar, bass []float64) error {
	step := 0

	for _, ev := range sec.Riff.Events() {
		offset := step * r.samplesPerStep
		step += ev.Steps

		if ev.Rest() {
			continue
		}

		duration := float64(ev.Steps*r.samplesPerStep) / r.sampleRate

		technique := synth.TechniqueOpen
		if ev.PalmMuted {
			technique = synth.TechniquePalmMute
		}

		note, err := synth.RenderGuitarNote(
			r.sampleRate, ev.Pitch.Frequency(), duration, guitarNoteVelocity, technique, r.rng)
		if err != nil {
			return err
		}

		addInto(guitar, note, offset)

		bassPitch := ev.Pitch.Transpose(r.song.BassOffset)

		bassNote, err := synth.RenderBassNote(
			r.sampleRate, bassPitch.Frequency(), duration, guitarNoteVelocity, r.rng)
		if err != nil {
			return err
		}

		addInto(bass, bassNote, offset)
	}

	return nil
}

func (r *renderer) renderDrums(sec song.Section, sectionSamples int) ([]float64, error) {
	buf := make([]float64, sectionSamples)

	for _, hit := range sec.Drums {
		voice, err := r.renderHit(hit)
		if err != nil {
			return nil, err
		}

		offset := hit.Step*r.samplesPerStep + hit.TickOffset*r.samplesPerStep/ticksPerStep
		if offset < 0 {
			offset = 0
		}

		addInto(buf, voice, offset)
	}

	return buf, nil
}

func (r *renderer) renderHit(hit drums.HitEvent) ([]float64, error) {
	amplitude := float64(hit.Velocity) / midiVelocityMax

	switch hit.Instrument {
	case drums.Kick:
		return synth.RenderKick(r.sampleRate, amplitude, r.rng)
	case drums.Snare:
		return synth.RenderSnare(r.sampleRate, amplitude, r.rng)
	case drums.Rimshot:
		return synth.RenderSnare(r.sampleRate, amplitude*rimshotLevel, r.rng)
	case drums.HiHatClosed:
		return synth.RenderHiHat(r.sampleRate, amplitude, false, r.rng)
	case drums.Crash:
		return synth.RenderCrash(r.sampleRate, amplitude, r.rng)
	default:
		return nil, fmt.Errorf("render: unknown drum instrument %d", int(hit.Instrument))
	}
}

// addInto sums src into dst starting at offset, dropping samples past
// the end of dst (note tails are truncated at section boundaries).
func addInto(dst, src []float64, offset int) {
	for i, s := range src {
		j := offset + i
		if j >= len(dst) {
			return
		}

		if j < 0 {
			continue
		}

		dst[j] += s
	}
}

// normalize scales buf so its peak sits at ceiling.
func normalize(buf []float64, ceiling float64) {
	peak := 0.0

	for _, s := range buf {
		if a := math.Abs(s); a > peak {
			peak = a
		}
	}

	if peak == 0 {
		return
	}

	scale := ceiling / peak
	for i := range buf {
		buf[i] *= scale
	}
}
