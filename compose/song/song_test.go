package song

import (
	"testing"

	"github.com/cwbudde/algo-metal/compose/drums"
	"github.com/cwbudde/algo-metal/compose/rhythm"
	"github.com/cwbudde/algo-metal/compose/theory"
)

func TestParseSubgenre(t *testing.T) {
	tests := []struct {
		in   string
		want Subgenre
	}{
		{"death", Death},
		{"Death", Death},
		{" THRASH ", Thrash},
		{"doom", Doom},
		{"heavy", Heavy},
		{"progressive", Progressive},
	}

	for _, tt := range tests {
		got, err := ParseSubgenre(tt.in)
		if err != nil {
			t.Fatalf("ParseSubgenre(%q) error: %v", tt.in, err)
		}

		if got != tt.want {
			t.Fatalf("ParseSubgenre(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseSubgenre("nu"); err == nil {
		t.Fatal("expected error for unknown subgenre")
	}
}

func TestSubgenreParams(t *testing.T) {
	tests := []struct {
		subgenre Subgenre
		tuning   string
		scale    string
		minBPM   int
		maxBPM   int
	}{
		{Heavy, "E standard", "minor pentatonic", 120, 160},
		{Thrash, "E standard", "phrygian", 160, 220},
		{Death, "D standard", "phrygian", 140, 200},
		{Doom, "C standard", "dorian", 60, 100},
		{Progressive, "drop C", "harmonic minor", 100, 180},
	}

	for _, tt := range tests {
		t.Run(tt.subgenre.String(), func(t *testing.T) {
			p := tt.subgenre.Params()

			if p.Tuning.Name() != tt.tuning {
				t.Errorf("tuning = %q, want %q", p.Tuning.Name(), tt.tuning)
			}

			if p.Scale.Name() != tt.scale {
				t.Errorf("scale = %q, want %q", p.Scale.Name(), tt.scale)
			}

			if p.MinTempoBPM != tt.minBPM || p.MaxTempoBPM != tt.maxBPM {
				t.Errorf("tempo range = [%d, %d], want [%d, %d]",
					p.MinTempoBPM, p.MaxTempoBPM, tt.minBPM, tt.maxBPM)
			}
		})
	}
}

func TestGenerateDeathMetalSong(t *testing.T) {
	cfg := Config{
		Subgenre:     Death,
		TempoMinBPM:  180,
		TempoMaxBPM:  180,
		Seed:         42,
		SectionCount: 8,
	}

	s, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if s.TempoBPM != 180 {
		t.Fatalf("tempo = %d, want 180", s.TempoBPM)
	}

	if s.Tuning.Name() != "D standard" {
		t.Fatalf("tuning = %q, want D standard", s.Tuning.Name())
	}

	if len(s.Sections) != 8 {
		t.Fatalf("got %d sections, want 8", len(s.Sections))
	}

	// Total duration in measures is the sum of the section lengths.
	total := 0
	for _, sec := range s.Sections {
		total += sec.Measures
	}

	if s.TotalMeasures() != total || total != 8*defaultSectionMeasures {
		t.Fatalf("TotalMeasures() = %d, want %d", s.TotalMeasures(), 8*defaultSectionMeasures)
	}

	// D standard sits above B1, so the bass doubles an octave down.
	if s.BassOffset != -12 {
		t.Fatalf("bass offset = %d, want -12", s.BassOffset)
	}

	for i, sec := range s.Sections {
		if sec.Riff.Steps() != sec.Measures*StepsPerMeasure {
			t.Fatalf("section %d riff covers %d steps, want %d",
				i, sec.Riff.Steps(), sec.Measures*StepsPerMeasure)
		}

		if sec.Playability < 0 || sec.Playability > 1 {
			t.Fatalf("section %d playability %v out of [0, 1]", i, sec.Playability)
		}

		if len(sec.Drums) == 0 {
			t.Fatalf("section %d has no drum events", i)
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	cfg := Config{Subgenre: Thrash, Seed: 7, SectionCount: 4}

	a, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	b, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if a.TempoBPM != b.TempoBPM {
		t.Fatalf("tempi differ: %d vs %d", a.TempoBPM, b.TempoBPM)
	}

	for i := range a.Sections {
		ae, be := a.Sections[i].Riff.Events(), b.Sections[i].Riff.Events()
		if len(ae) != len(be) {
			t.Fatalf("section %d event counts differ", i)
		}

		for j := range ae {
			if ae[j].Steps != be[j].Steps || ae[j].PalmMuted != be[j].PalmMuted {
				t.Fatalf("section %d event %d differs", i, j)
			}
		}

		if len(a.Sections[i].Drums) != len(b.Sections[i].Drums) {
			t.Fatalf("section %d drum counts differ", i)
		}
	}
}

func TestBreakdownSectionHalftimeSnare(t *testing.T) {
	cfg := Config{Subgenre: Death, Seed: 42, SectionCount: 8}

	s, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	found := false

	for _, sec := range s.Sections {
		if sec.Kind != Breakdown {
			continue
		}

		found = true

		for _, hit := range sec.Drums {
			if hit.Instrument != drums.Snare {
				continue
			}

			// Halftime: the snare lands on beat three of each
			// measure, never the straight backbeat.
			if hit.Step%StepsPerMeasure != StepsPerMeasure/2 {
				t.Fatalf("breakdown snare at step %d of measure", hit.Step%StepsPerMeasure)
			}
		}
	}

	if !found {
		t.Fatal("arrangement has no breakdown section")
	}
}

func TestBreakdownRiffChugsPedal(t *testing.T) {
	cfg := Config{Subgenre: Doom, Seed: 3, SectionCount: 7}

	s, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	sec := s.Sections[6]
	if sec.Kind != Breakdown {
		t.Fatalf("section 6 is %v, want breakdown", sec.Kind)
	}

	root := s.Key.Root

	for _, ev := range sec.Riff.Events() {
		if ev.Rest() {
			continue
		}

		if *ev.Pitch != root || !ev.PalmMuted {
			t.Fatalf("breakdown event %+v, want palm-muted root %d", ev, root)
		}
	}
}

func TestGenerateValidation(t *testing.T) {
	if _, err := Generate(Config{Subgenre: Heavy, TempoMinBPM: 200, TempoMaxBPM: 100}); err == nil {
		t.Fatal("expected error for inverted tempo bounds")
	}

	if _, err := Generate(Config{Subgenre: Heavy, SectionCount: -1}); err == nil {
		t.Fatal("expected error for negative section count")
	}

	if _, err := Generate(Config{Subgenre: Heavy, SectionMeasures: -2}); err == nil {
		t.Fatal("expected error for negative section measures")
	}

	if _, err := Generate(Config{Subgenre: Heavy, SampleRate: -1}); err == nil {
		t.Fatal("expected error for negative sample rate")
	}
}

func TestIntensityMapping(t *testing.T) {
	if Breakdown.Intensity() != Extreme {
		t.Fatalf("breakdown intensity = %v, want extreme", Breakdown.Intensity())
	}

	if !Breakdown.Halftime() || !Outro.Halftime() {
		t.Fatal("breakdown and outro must be halftime")
	}

	if Verse.Halftime() {
		t.Fatal("verse must not be halftime")
	}

	if Intro.PedalProbability() <= Chorus.PedalProbability() {
		t.Fatal("intro must gravitate to the pedal more than the chorus")
	}
}

func TestDefaultOrderShape(t *testing.T) {
	order := DefaultOrder()

	if len(order) != 12 {
		t.Fatalf("default order has %d sections, want 12", len(order))
	}

	if order[0] != Intro || order[len(order)-1] != Outro {
		t.Fatal("arrangement must open with intro and close with outro")
	}
}

func TestKeyRootMatchesTuning(t *testing.T) {
	s, err := Generate(Config{Subgenre: Death, Seed: 1, SectionCount: 1})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	if s.Key.Root != theory.Note(38) {
		t.Fatalf("death metal key root = %d, want D2 (38)", s.Key.Root)
	}
}

func TestThrashVerseGallopGrid(t *testing.T) {
	asm := assembler{params: Thrash.Params()}

	grid, err := asm.sectionGrid(Verse, 2)
	if err != nil {
		t.Fatalf("sectionGrid error: %v", err)
	}

	if len(grid) != 2*StepsPerMeasure {
		t.Fatalf("len = %d, want %d", len(grid), 2*StepsPerMeasure)
	}

	// Three pulses per beat: the eighth and the two sixteenths.
	beats := len(grid) / 4
	if got, want := grid.Pulses(), beats*3; got != want {
		t.Errorf("pulses = %d, want %d", got, want)
	}

	for beat := 0; beat < beats; beat++ {
		base := beat * 4
		if !grid[base] || grid[base+1] || !grid[base+2] || !grid[base+3] {
			t.Fatalf("beat %d = %v, want hit-rest-hit-hit", beat, grid[base:base+4])
		}
	}
}

func TestPolymeterGridDriftsAndResolves(t *testing.T) {
	asm := assembler{params: Progressive.Params()}

	grid, err := asm.sectionGrid(Verse, 2)
	if err != nil {
		t.Fatalf("sectionGrid error: %v", err)
	}

	// A 5-step phrase against 16-step measures realigns after five
	// measures, so the two requested measures grow to five.
	if len(grid) != 5*StepsPerMeasure {
		t.Fatalf("len = %d, want %d", len(grid), 5*StepsPerMeasure)
	}

	cell, err := rhythm.Euclidean(5, 3)
	if err != nil {
		t.Fatalf("Euclidean error: %v", err)
	}

	for i, hit := range grid {
		if hit != cell[i%len(cell)] {
			t.Fatalf("step %d = %v, breaks the phrase tiling", i, hit)
		}
	}

	// The accents drift across the barline instead of restarting.
	first := grid[:StepsPerMeasure]
	second := grid[StepsPerMeasure : 2*StepsPerMeasure]

	same := true

	for i := range first {
		if first[i] != second[i] {
			same = false
			break
		}
	}

	if same {
		t.Fatal("consecutive measures identical; phrase is pinned to the barline")
	}
}

func TestGenerateProgressiveSectionsResolvePolymeter(t *testing.T) {
	s, err := Generate(Config{
		Subgenre:        Progressive,
		Seed:            11,
		SectionCount:    3,
		SectionMeasures: 2,
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	checked := false

	for _, sec := range s.Sections {
		if sec.Kind != Verse && sec.Kind != Chorus {
			continue
		}

		checked = true

		if sec.Measures%5 != 0 {
			t.Errorf("%s section is %d measures, want a multiple of 5", sec.Kind, sec.Measures)
		}

		if want := sec.Measures * StepsPerMeasure; sec.Riff.Steps() != want {
			t.Errorf("%s riff covers %d steps, want %d", sec.Kind, sec.Riff.Steps(), want)
		}
	}

	if !checked {
		t.Fatal("no verse or chorus section generated")
	}
}
