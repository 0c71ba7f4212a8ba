package theory

import (
	"math"
	"testing"
)

func TestNoteFrequency(t *testing.T) {
	tests := []struct {
		name string
		note Note
		want float64
	}{
		{"A4 reference", 69, 440.0},
		{"C4 middle C", 60, 261.626},
		{"E2 low E", 40, 82.407},
		{"D2 death metal root", 38, 73.416},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.note.Frequency()
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("Frequency() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestDirectedDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b PitchClass
		want Interval
	}{
		{"unison", 0, 0, 0},
		{"up minor second", 0, 1, 1},
		{"down minor second wraps", 0, 11, -1},
		{"tritone resolves ascending", 0, 6, 6},
		{"fifth wraps down a fourth", 0, 7, -5},
		{"fourth up", 0, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DirectedDistance(tt.a, tt.b); got != tt.want {
				t.Errorf("DirectedDistance(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDissonanceOrdering(t *testing.T) {
	// Tritone and minor second must out-score everything consonant.
	if Dissonance(6) <= Dissonance(7) {
		t.Errorf("tritone (%f) should be more dissonant than fifth (%f)", Dissonance(6), Dissonance(7))
	}

	if Dissonance(1) <= Dissonance(4) {
		t.Errorf("minor second (%f) should be more dissonant than major third (%f)", Dissonance(1), Dissonance(4))
	}

	if Dissonance(0) != 0 {
		t.Errorf("unison dissonance = %f, want 0", Dissonance(0))
	}

	if Dissonance(-1) != Dissonance(1) {
		t.Errorf("dissonance should be undirected: %f != %f", Dissonance(-1), Dissonance(1))
	}

	if Dissonance(13) != Dissonance(1) {
		t.Errorf("dissonance should wrap octaves: %f != %f", Dissonance(13), Dissonance(1))
	}
}

func TestNewScaleValidation(t *testing.T) {
	tests := []struct {
		name    string
		offsets []Interval
		wantErr bool
	}{
		{"valid phrygian", []Interval{0, 1, 3, 5, 7, 8, 10}, false},
		{"valid pentatonic", []Interval{0, 3, 5, 7, 10}, false},
		{"empty", nil, true},
		{"first not zero", []Interval{1, 3, 5}, true},
		{"duplicate", []Interval{0, 3, 3, 7}, true},
		{"decreasing", []Interval{0, 5, 3}, true},
		{"octave overflow", []Interval{0, 5, 12}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScale(tt.name, tt.offsets...)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewScale() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestScaleNotes(t *testing.T) {
	notes := Phrygian.Notes(40) // E phrygian on low E

	want := []Note{40, 41, 43, 45, 47, 48, 50}
	if len(notes) != len(want) {
		t.Fatalf("Notes() length = %d, want %d", len(notes), len(want))
	}

	for i, n := range notes {
		if n != want[i] {
			t.Errorf("Notes()[%d] = %d, want %d", i, n, want[i])
		}
	}
}

func TestScaleOffsetWraps(t *testing.T) {
	if got := MinorPentatonic.Offset(5); got != 12 {
		t.Errorf("Offset(5) = %d, want 12 (octave wrap)", got)
	}

	if got := Phrygian.Offset(7); got != 12 {
		t.Errorf("Offset(7) = %d, want 12", got)
	}
}

func TestScaleContains(t *testing.T) {
	if !Phrygian.Contains(40, 41) {
		t.Error("E phrygian should contain F")
	}

	if Phrygian.Contains(40, 42) {
		t.Error("E phrygian should not contain F#")
	}

	if !Phrygian.Contains(40, 53) { // F an octave up
		t.Error("Contains should be octave-invariant")
	}
}

func TestNewTuningValidation(t *testing.T) {
	tests := []struct {
		name    string
		strings []Note
		wantErr bool
	}{
		{"valid six", []Note{40, 45, 50, 55, 59, 64}, false},
		{"valid eight", []Note{28, 35, 40, 45, 50, 55, 59, 64}, false},
		{"too few", []Note{40, 45, 50}, true},
		{"too many", []Note{28, 30, 35, 40, 45, 50, 55, 59, 64}, true},
		{"decreasing", []Note{45, 40, 50, 55, 59, 64}, true},
		{"out of range", []Note{-2, 45, 50, 55, 59, 64}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTuning(tt.name, tt.strings...)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewTuning() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTuningBassRegister(t *testing.T) {
	tests := []struct {
		name   string
		tuning Tuning
		unison bool
		offset Interval
	}{
		{"drop C octave down", DropC, false, -12},
		{"E standard octave down", EStandard, false, -12},
		{"drop A7 unison", DropA7, true, 0},
		{"drop E8 unison", DropE8, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tuning.BassUnison(); got != tt.unison {
				t.Errorf("BassUnison() = %v, want %v", got, tt.unison)
			}

			if got := tt.tuning.BassOffset(); got != tt.offset {
				t.Errorf("BassOffset() = %d, want %d", got, tt.offset)
			}
		})
	}
}

func TestTuningLowest(t *testing.T) {
	if got := DStandard.Lowest(); got != 38 {
		t.Errorf("DStandard.Lowest() = %d, want 38", got)
	}

	if got := DropE8.Strings(); got != 8 {
		t.Errorf("DropE8.Strings() = %d, want 8", got)
	}
}

func TestTransposeChecked(t *testing.T) {
	tests := []struct {
		name    string
		note    Note
		iv      Interval
		want    Note
		wantErr bool
	}{
		{"octave up", 40, 12, 52, false},
		{"identity", 60, 0, 60, false},
		{"to ceiling", 120, 7, 127, false},
		{"above ceiling", 120, 8, 0, true},
		{"to floor", 5, -5, 0, false},
		{"below floor", 5, -6, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.note.TransposeChecked(tt.iv)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
