package song

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/cwbudde/algo-metal/compose/drums"
	"github.com/cwbudde/algo-metal/compose/fretboard"
	"github.com/cwbudde/algo-metal/compose/rhythm"
	"github.com/cwbudde/algo-metal/compose/riff"
	"github.com/cwbudde/algo-metal/compose/theory"
)

const (
	// StepsPerMeasure is the grid resolution: sixteenth notes in 4/4.
	StepsPerMeasure = 16

	// DefaultSampleRate is used when the config leaves it unset.
	DefaultSampleRate = 44100

	defaultSectionMeasures = 4

	// Guitar cell for polymetric sections: three pulses over five
	// sixteenths, laid against the 16-step measure.
	polymeterPhraseSteps  = 5
	polymeterPhrasePulses = 3

	hiHatStepInterval = 2
)

// Config is the immutable input of a generation run. Zero values fall
// back to subgenre or package defaults.
type Config struct {
	Subgenre Subgenre
	// TempoMinBPM and TempoMaxBPM bound the tempo draw; zero means the
	// subgenre's range. Equal bounds pin the tempo.
	TempoMinBPM int
	TempoMaxBPM int
	SampleRate  int
	Seed        int64
	// SectionCount truncates or cycles the default arrangement; zero
	// means the full arrangement.
	SectionCount int
	// SectionMeasures is the length of every section in measures.
	SectionMeasures int
}

// Section is one assembled song section: its riff, humanized drum
// events, and the fingering playability of the riff.
type Section struct {
	Kind        SectionKind
	Riff        riff.Riff
	Drums       []drums.HitEvent
	Measures    int
	Playability float64
}

// Song is the frozen output of a generation run. Rendering consumes it
// without mutating it.
type Song struct {
	Subgenre   Subgenre
	Key        theory.Key
	Tuning     theory.Tuning
	TempoBPM   int
	SampleRate int
	Seed       int64
	// BassOffset is the semitone offset of the bass doubling.
	BassOffset theory.Interval
	Sections   []Section
}

// TotalMeasures sums the configured section lengths.
func (s *Song) TotalMeasures() int {
	total := 0
	for _, sec := range s.Sections {
		total += sec.Measures
	}

	return total
}

// Generate assembles a song from the config. The run is strictly
// sequential and reproducible: one RNG is seeded from the config and
// threaded through every stochastic stage.
func Generate(cfg Config) (*Song, error) {
	params := cfg.Subgenre.Params()

	minTempo, maxTempo := cfg.TempoMinBPM, cfg.TempoMaxBPM
	if minTempo == 0 {
		minTempo = params.MinTempoBPM
	}

	if maxTempo == 0 {
		maxTempo = params.MaxTempoBPM
	}

	if minTempo <= 0 || maxTempo < minTempo {
		return nil, fmt.Errorf("song: invalid tempo bounds [%d, %d]", minTempo, maxTempo)
	}

	sampleRate := cfg.SampleRate
	if sampleRate == 0 {
		sampleRate = DefaultSampleRate
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("song: sample rate must be positive, got %d", sampleRate)
	}

	measures := cfg.SectionMeasures
	if measures == 0 {
		measures = defaultSectionMeasures
	}

	if measures < 0 {
		return nil, fmt.Errorf("song: section measures must be positive, got %d", cfg.SectionMeasures)
	}

	order := DefaultOrder()

	count := cfg.SectionCount
	if count == 0 {
		count = len(order)
	}

	if count < 0 {
		return nil, fmt.Errorf("song: section count must be positive, got %d", cfg.SectionCount)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	tempo := minTempo + rng.Intn(maxTempo-minTempo+1)

	key, err := theory.NewKey(params.Tuning.Lowest(), params.Scale)
	if err != nil {
		return nil, err
	}

	model, err := cfg.Subgenre.Model(params.Scale.Degrees())
	if err != nil {
		return nil, err
	}

	board, err := fretboard.NewBoard(params.Tuning)
	if err != nil {
		return nil, err
	}

	asm := assembler{
		subgenre: cfg.Subgenre,
		params:   params,
		key:      key,
		model:    model,
		board:    board,
		rng:      rng,
	}

	sections := make([]Section, 0, count)

	for i := range count {
		kind := order[i%len(order)]

		sec, err := asm.buildSection(kind, measures)
		if err != nil {
			return nil, fmt.Errorf("song: section %d (%s): %w", i, kind, err)
		}

		sections = append(sections, sec)
	}

	return &Song{
		Subgenre:   cfg.Subgenre,
		Key:        key,
		Tuning:     params.Tuning,
		TempoBPM:   tempo,
		SampleRate: sampleRate,
		Seed:       cfg.Seed,
		BassOffset: params.Tuning.BassOffset(),
		Sections:   sections,
	}, nil
}

type assembler struct {
	subgenre Subgenre
	params   Params
	key      theory.Key
	model    riff.Model
	board    *fretboard.Board
	rng      *rand.Rand
}

func (a *assembler) buildSection(kind SectionKind, measures int) (Section, error) {
	grid, err := a.sectionGrid(kind, measures)
	if err != nil {
		return Section{}, err
	}

	// Polymetric sections may have grown to the phrase's resolution
	// boundary; the section length follows the grid.
	measures = len(grid) / StepsPerMeasure

	walk, err := a.sectionWalk(kind, grid.Pulses())
	if err != nil {
		return Section{}, err
	}

	r, err := riff.Assemble(grid, walk, a.key)
	if err != nil {
		return Section{}, err
	}

	_, score, err := a.board.OptimizeRiff(r)
	if err != nil {
		return Section{}, err
	}

	hits, err := a.sectionDrums(kind, grid, measures)
	if err != nil {
		return Section{}, err
	}

	return Section{
		Kind:        kind,
		Riff:        r,
		Drums:       hits,
		Measures:    measures,
		Playability: score,
	}, nil
}

// sectionGrid picks the section's guitar rhythm: breakdowns get burst
// patterns, thrash verses gallop, progressive verses and choruses tile
// a polymetric phrase, everything else gets an Euclidean density
// matched to the section's intensity.
func (a *assembler) sectionGrid(kind SectionKind, measures int) (rhythm.Grid, error) {
	steps := measures * StepsPerMeasure

	switch {
	case kind == Breakdown:
		return rhythm.Breakdown(steps, a.params.BurstDensity, a.rng)
	case a.params.Polymeter && (kind == Verse || kind == Chorus):
		return a.polymeterGrid(measures)
	case kind == Verse && a.params.Gallop:
		return rhythm.Gallop(measures * 4)
	default:
		return rhythm.Euclidean(steps, pulsesPerMeasure(kind)*measures)
	}
}

// polymeterGrid tiles a five-step cell across the section without
// restarting at barlines, so its accents drift one step earlier each
// beat. The section is extended to the nearest boundary where the
// phrase realigns with the downbeat, keeping the handoff to the next
// section on a resolved bar.
func (a *assembler) polymeterGrid(measures int) (rhythm.Grid, error) {
	cell, err := rhythm.Euclidean(polymeterPhraseSteps, polymeterPhrasePulses)
	if err != nil {
		return nil, err
	}

	phrase, err := rhythm.NewPhrase(cell)
	if err != nil {
		return nil, err
	}

	resolution, err := rhythm.ResolutionMeasures(phrase.Len(), StepsPerMeasure)
	if err != nil {
		return nil, err
	}

	if rem := measures % resolution; rem != 0 {
		measures += resolution - rem
	}

	return phrase.FillMeasures(measures, StepsPerMeasure, false)
}

func pulsesPerMeasure(kind SectionKind) int {
	switch kind {
	case Intro, Outro:
		return 4
	case Verse:
		return 8
	case Chorus:
		return 10
	case Solo:
		return 12
	default:
		return 8
	}
}

// sectionWalk produces the degree walk for the section's hits. Breakdown
// riffs chug the pedal exclusively; other sections run the pedal-point
// generator with the section's return probability.
func (a *assembler) sectionWalk(kind SectionKind, hits int) ([]riff.Step, error) {
	if hits == 0 {
		return nil, nil
	}

	if kind == Breakdown {
		walk := make([]riff.Step, hits)
		for i := range walk {
			walk[i] = riff.Step{Degree: 0, Pedal: true}
		}

		return walk, nil
	}

	gen, err := riff.NewPedalGenerator(a.model,
		riff.WithReturnProbability(kind.PedalProbability()))
	if err != nil {
		return nil, err
	}

	return gen.Generate(hits, a.rng)
}

func (a *assembler) sectionDrums(kind SectionKind, guitar rhythm.Grid, measures int) ([]drums.HitEvent, error) {
	humanizer := a.params.Humanizer
	if kind == Breakdown {
		humanizer = drums.BreakdownHumanizer()
	}

	velocity := kind.Intensity().DrumVelocity()
	steps := measures * StepsPerMeasure

	kick, snare, snareVoice, err := a.kitGrids(kind, guitar, measures)
	if err != nil {
		return nil, err
	}

	hiHat := make(rhythm.Grid, steps)
	for i := 0; i < steps; i += hiHatStepInterval {
		hiHat[i] = true
	}

	crash := make(rhythm.Grid, steps)
	crash[0] = true

	events := make([]drums.HitEvent, 0, kick.Pulses()+snare.Pulses()+hiHat.Pulses()+1)

	for _, voice := range []struct {
		grid rhythm.Grid
		inst drums.Instrument
	}{
		{kick, drums.Kick},
		{snare, snareVoice},
		{hiHat, drums.HiHatClosed},
		{crash, drums.Crash},
	} {
		hits, err := humanizer.Humanize(voice.grid, voice.inst, velocity, StepsPerMeasure, a.rng)
		if err != nil {
			return nil, err
		}

		events = append(events, hits...)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Step < events[j].Step
	})

	return events, nil
}

// kitGrids lays out kick and snare. Death metal verses and choruses run
// blast beats; elsewhere the kick doubles the guitar rhythm and the
// snare plays the backbeat, collapsing to the halftime accent in
// halftime sections.
func (a *assembler) kitGrids(kind SectionKind, guitar rhythm.Grid, measures int) (rhythm.Grid, rhythm.Grid, drums.Instrument, error) {
	steps := measures * StepsPerMeasure

	if a.subgenre == Death && (kind == Verse || kind == Chorus) {
		style := drums.BlastEuro
		if kind == Chorus {
			style = drums.BlastTraditional
		}

		blast, err := drums.NewBlastPattern(style, steps)
		if err != nil {
			return nil, nil, 0, err
		}

		return blast.Kick, blast.Snare, blast.SnareVoice, nil
	}

	kick := guitar.Clone()

	var unit rhythm.Grid

	var err error
	if kind.Halftime() {
		unit, err = rhythm.HalftimeSnare(StepsPerMeasure)
	} else {
		unit, err = rhythm.BackbeatSnare(StepsPerMeasure)
	}

	if err != nil {
		return nil, nil, 0, err
	}

	phrase, err := rhythm.NewPhrase(unit)
	if err != nil {
		return nil, nil, 0, err
	}

	snare, err := phrase.FillMeasures(measures, StepsPerMeasure, true)
	if err != nil {
		return nil, nil, 0, err
	}

	return kick, snare, drums.Snare, nil
}
